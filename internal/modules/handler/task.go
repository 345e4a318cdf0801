package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/serializer"
	"github.com/uniteam-dev/uniteam/internal/modules/service"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	Title          string   `json:"title" binding:"required"`
	Description    *string  `json:"description"`
	Status         string   `json:"status"`
	Deadline       *string  `json:"deadline"` // RFC3339
	StageID        *string  `json:"stage_id"`
	SubmissionLink *string  `json:"submission_link"`
	AssigneeIDs    []string `json:"assignee_ids"`
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Create a task in a group; assignees other than the creator are notified
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			group_id	path	string	true	"Group ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Task}
//	@Router			/group/{group_id}/task [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	var req CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	profile, err := currentProfile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.CreateTaskInput{
		GroupID:        groupID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		SubmissionLink: req.SubmissionLink,
		CreatedBy:      profile.ID,
	}
	if req.StageID != nil {
		sid, err := uuid.Parse(*req.StageID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid stage_id", err))
			return
		}
		in.StageID = &sid
	}
	if req.Deadline != nil {
		d, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid deadline", err))
			return
		}
		in.Deadline = &d
	}
	for _, raw := range req.AssigneeIDs {
		uid, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid assignee id", err))
			return
		}
		in.AssigneeIDs = append(in.AssigneeIDs, uid)
	}

	task, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: task})
}

// ListTasks godoc
//
//	@Summary		List tasks
//	@Description	List all tasks of a group
//	@Tags			task
//	@Produce		json
//	@Param			group_id	path	string	true	"Group ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/group/{group_id}/task [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tasks, err := h.svc.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: tasks})
}
