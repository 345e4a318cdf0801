package main

//	@title			Uniteam API
//	@version		1.0
//	@description	Group project management API with project backup/restore.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Profile bearer api key (e.g., "Bearer sk-ut-xxxx")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/uniteam-dev/uniteam/internal/bootstrap"
	"github.com/uniteam-dev/uniteam/internal/config"
	"github.com/uniteam-dev/uniteam/internal/modules/handler"
	"github.com/uniteam-dev/uniteam/internal/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	// build handlers
	groupHandler := do.MustInvoke[*handler.GroupHandler](inj)
	taskHandler := do.MustInvoke[*handler.TaskHandler](inj)
	backupHandler := do.MustInvoke[*handler.BackupHandler](inj)

	engine := router.NewRouter(router.RouterDeps{
		Config:        cfg,
		DB:            db,
		Log:           log,
		GroupHandler:  groupHandler,
		TaskHandler:   taskHandler,
		BackupHandler: backupHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
