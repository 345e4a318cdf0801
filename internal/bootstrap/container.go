package bootstrap

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uniteam-dev/uniteam/internal/config"
	"github.com/uniteam-dev/uniteam/internal/infra/blob"
	"github.com/uniteam-dev/uniteam/internal/infra/cache"
	"github.com/uniteam-dev/uniteam/internal/infra/db"
	"github.com/uniteam-dev/uniteam/internal/infra/logger"
	"github.com/uniteam-dev/uniteam/internal/infra/queue"
	"github.com/uniteam-dev/uniteam/internal/modules/handler"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"github.com/uniteam-dev/uniteam/internal/modules/repo"
	"github.com/uniteam-dev/uniteam/internal/modules/service"
	"github.com/uniteam-dev/uniteam/internal/pkg/progress"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskNotificationQueue receives one payload per notified assignee when a
// normally created task is assigned.
const TaskNotificationQueue = "task_assigned"

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.Profile{},
				&model.Group{},
				&model.GroupMember{},
				&model.Stage{},
				&model.Task{},
				&model.TaskAssignment{},
				&model.TaskScore{},
				&model.Submission{},
				&model.ProjectMessage{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return amqp.Dial(cfg.RabbitMQ.URL)
	})

	// Notification publisher
	do.Provide(inj, func(i *do.Injector) (*queue.Publisher, error) {
		return queue.NewPublisher(
			do.MustInvoke[*amqp.Connection](i),
			TaskNotificationQueue,
			do.MustInvoke[*zap.Logger](i),
		)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// Progress store
	do.Provide(inj, func(i *do.Injector) (*progress.Store, error) {
		return progress.NewStore(do.MustInvoke[*redis.Client](i)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.GroupRepo, error) {
		return repo.NewGroupRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProfileRepo, error) {
		return repo.NewProfileRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.StageRepo, error) {
		return repo.NewStageRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.MessageRepo, error) {
		return repo.NewMessageRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.GroupService, error) {
		return service.NewGroupService(
			do.MustInvoke[repo.GroupRepo](i),
			do.MustInvoke[repo.ProfileRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[*queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.BackupService, error) {
		return service.NewBackupService(
			do.MustInvoke[repo.GroupRepo](i),
			do.MustInvoke[repo.ProfileRepo](i),
			do.MustInvoke[repo.StageRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.MessageRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.GroupHandler, error) {
		return handler.NewGroupHandler(do.MustInvoke[service.GroupService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.BackupHandler, error) {
		return handler.NewBackupHandler(
			do.MustInvoke[service.BackupService](i),
			do.MustInvoke[*progress.Store](i),
		), nil
	})

	return inj
}
