package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/serializer"
	"github.com/uniteam-dev/uniteam/internal/modules/service"
)

type GroupHandler struct {
	svc service.GroupService
}

func NewGroupHandler(s service.GroupService) *GroupHandler {
	return &GroupHandler{svc: s}
}

// ListGroups godoc
//
//	@Summary		List groups
//	@Description	List all groups ordered by name
//	@Tags			group
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Group}
//	@Router			/group [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: groups})
}

// CreateGroup godoc
//
//	@Summary		Create group
//	@Description	Create a new group owned by the current user
//	@Tags			group
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Group}
//	@Router			/group [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req service.CreateGroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	profile, err := currentProfile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	req.CreatedBy = profile.ID

	group, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: group})
}

// GetGroup godoc
//
//	@Summary		Get group
//	@Description	Get one group by its UUID
//	@Tags			group
//	@Produce		json
//	@Param			group_id	path	string	true	"Group ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Group}
//	@Router			/group/{group_id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	group, err := h.svc.GetByID(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.Err(http.StatusNotFound, "group not found", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: group})
}

// ListGroupMembers godoc
//
//	@Summary		List group members
//	@Description	List members of a group with their profiles
//	@Tags			group
//	@Produce		json
//	@Param			group_id	path	string	true	"Group ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.MemberWithProfile}
//	@Router			/group/{group_id}/members [get]
func (h *GroupHandler) ListGroupMembers(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	members, err := h.svc.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: members})
}
