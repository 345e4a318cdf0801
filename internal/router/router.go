package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/uniteam-dev/uniteam/internal/config"
	"github.com/uniteam-dev/uniteam/internal/middleware"
	"github.com/uniteam-dev/uniteam/internal/modules/handler"
	"github.com/uniteam-dev/uniteam/internal/modules/serializer"
)

type RouterDeps struct {
	Config        *config.Config
	DB            *gorm.DB
	Log           *zap.Logger
	GroupHandler  *handler.GroupHandler
	TaskHandler   *handler.TaskHandler
	BackupHandler *handler.BackupHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.ProfileAuth(d.Config, d.DB))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		group := v1.Group("/group")
		{
			group.GET("", d.GroupHandler.ListGroups)
			group.POST("", d.GroupHandler.CreateGroup)
			group.GET("/:group_id", d.GroupHandler.GetGroup)
			group.GET("/:group_id/members", d.GroupHandler.ListGroupMembers)

			task := group.Group("/:group_id/task")
			{
				task.GET("", d.TaskHandler.ListTasks)
				task.POST("", d.TaskHandler.CreateTask)
			}
		}

		backup := v1.Group("/backup")
		{
			backup.POST("/export/:group_id", d.BackupHandler.ExportProject)
			backup.GET("/progress/:job_id", d.BackupHandler.ExportProgress)
			backup.POST("/import", d.BackupHandler.ImportProject)
		}
	}
	return r
}
