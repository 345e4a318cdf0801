package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/serializer"
	"github.com/uniteam-dev/uniteam/internal/modules/service"
	"github.com/uniteam-dev/uniteam/internal/pkg/progress"
)

// ProgressStore is the polling surface the backup handler needs;
// progress.Store satisfies it.
type ProgressStore interface {
	Tracker(ctx context.Context, jobID string) progress.Func
	Get(ctx context.Context, jobID string) (int, error)
}

type BackupHandler struct {
	svc      service.BackupService
	progress ProgressStore
}

func NewBackupHandler(s service.BackupService, p ProgressStore) *BackupHandler {
	return &BackupHandler{svc: s, progress: p}
}

// ExportProject godoc
//
//	@Summary		Export project backup
//	@Description	Package a full project snapshot into a downloadable zip archive
//	@Tags			backup
//	@Produce		application/zip
//	@Param			group_id	path	string	true	"Group ID"						Format(uuid)
//	@Param			job_id		query	string	false	"Job id for progress polling"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{file}	binary
//	@Router			/backup/export/{group_id} [post]
func (h *BackupHandler) ExportProject(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	jobID := c.Query("job_id")
	if jobID == "" {
		jobID = uuid.NewString()
	}
	c.Header("X-Job-Id", jobID)

	out, err := h.svc.Export(c.Request.Context(), service.ExportInput{
		GroupID:  groupID,
		Progress: h.progress.Tracker(c.Request.Context(), jobID),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "export failed", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.FileName))
	c.Header("X-File-Count", fmt.Sprintf("%d", out.FileCount))
	c.Header("X-Message-Count", fmt.Sprintf("%d", out.MessageCount))
	c.Data(http.StatusOK, "application/zip", out.Archive)
}

// ExportProgress godoc
//
//	@Summary		Export progress
//	@Description	Poll the percentage of a running export job
//	@Tags			backup
//	@Produce		json
//	@Param			job_id	path	string	true	"Job ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/backup/progress/{job_id} [get]
func (h *BackupHandler) ExportProgress(c *gin.Context) {
	pct, err := h.progress.Get(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "progress lookup failed", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"percent": pct}})
}

type importResult struct {
	GroupID          string `json:"group_id"`
	ProjectName      string `json:"project_name"`
	FilesRestored    int    `json:"files_restored"`
	MessagesRestored int    `json:"messages_restored"`
}

// ImportProject godoc
//
//	@Summary		Import project backup
//	@Description	Reconstruct a new project from an uploaded backup archive
//	@Tags			backup
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Backup archive (zip)"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=handler.importResult}
//	@Router			/backup/import [post]
func (h *BackupHandler) ImportProject(c *gin.Context) {
	profile, err := currentProfile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("missing archive file", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Import(c.Request.Context(), service.ImportInput{
		Archive: bytes.NewReader(data),
		Size:    int64(len(data)),
		UserID:  profile.ID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(http.StatusBadRequest, "import failed", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: importResult{
		GroupID:          out.GroupID.String(),
		ProjectName:      out.ProjectName,
		FilesRestored:    out.FilesRestored,
		MessagesRestored: out.MessagesRestored,
	}})
}
