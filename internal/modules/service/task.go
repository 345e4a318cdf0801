package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"github.com/uniteam-dev/uniteam/internal/modules/repo"
	"github.com/uniteam-dev/uniteam/internal/pkg/utils"
	"go.uber.org/zap"
)

// Notifier delivers side-effect notifications. queue.Publisher satisfies it;
// tests substitute a recorder.
type Notifier interface {
	PublishJSON(ctx context.Context, payload any) error
}

// AssignedNotification is published once per non-creator assignee when a
// task is created through the normal path. Restored tasks publish nothing.
type AssignedNotification struct {
	TaskID    uuid.UUID `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	GroupID   uuid.UUID `json:"group_id"`
	UserID    uuid.UUID `json:"user_id"`
}

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Task, error)
}

type taskService struct {
	tasks    repo.TaskRepo
	notifier Notifier
	log      *zap.Logger
}

func NewTaskService(tasks repo.TaskRepo, notifier Notifier, log *zap.Logger) TaskService {
	return &taskService{tasks: tasks, notifier: notifier, log: log}
}

type CreateTaskInput struct {
	GroupID        uuid.UUID
	StageID        *uuid.UUID
	Title          string
	Description    *string
	Status         string
	Deadline       *time.Time
	SubmissionLink *string
	CreatedBy      uuid.UUID
	Origin         string
	AssigneeIDs    []uuid.UUID
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	status := in.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	if !model.IsValidTaskStatus(status) {
		return nil, fmt.Errorf("invalid task status: %s", status)
	}
	origin := in.Origin
	if origin == "" {
		origin = model.TaskOriginNormal
	}

	slug, err := utils.Slugify(in.Title)
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}

	t := &model.Task{
		GroupID:        in.GroupID,
		StageID:        in.StageID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         status,
		Deadline:       in.Deadline,
		SubmissionLink: in.SubmissionLink,
		Slug:           slug,
		CreatedBy:      in.CreatedBy,
		Origin:         origin,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	assignments := make([]model.TaskAssignment, 0, len(in.AssigneeIDs))
	for _, uid := range in.AssigneeIDs {
		assignments = append(assignments, model.TaskAssignment{TaskID: t.ID, UserID: uid})
	}
	if err := s.tasks.CreateAssignments(ctx, assignments); err != nil {
		return nil, fmt.Errorf("create assignments: %w", err)
	}

	// Restored tasks never notify. Delivery failures are logged and do not
	// fail the creation; the notification channel is advisory.
	if origin == model.TaskOriginNormal && s.notifier != nil {
		for _, uid := range in.AssigneeIDs {
			if uid == in.CreatedBy {
				continue
			}
			n := AssignedNotification{
				TaskID:    t.ID,
				TaskTitle: t.Title,
				GroupID:   t.GroupID,
				UserID:    uid,
			}
			if err := s.notifier.PublishJSON(ctx, n); err != nil {
				s.log.Sugar().Warnw("publish assignment notification",
					"task_id", t.ID, "user_id", uid, "err", err)
			}
		}
	}

	return t, nil
}

func (s *taskService) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Task, error) {
	return s.tasks.ListByGroup(ctx, groupID)
}
