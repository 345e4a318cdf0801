package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"gorm.io/gorm"
)

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Task, error)
	ListAssignmentsByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.TaskAssignment, error)
	ListScoresByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.TaskScore, error)
	ListSubmissionsByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.Submission, error)
	CreateAssignments(ctx context.Context, as []model.TaskAssignment) error
	CreateScores(ctx context.Context, ss []model.TaskScore) error
	CreateSubmissions(ctx context.Context, ss []model.Submission) error
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, r.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&tasks).Error
}

func (r *taskRepo) ListAssignmentsByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.TaskAssignment, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var items []model.TaskAssignment
	return items, r.db.WithContext(ctx).Where("task_id IN ?", taskIDs).Find(&items).Error
}

func (r *taskRepo) ListScoresByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.TaskScore, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var items []model.TaskScore
	return items, r.db.WithContext(ctx).Where("task_id IN ?", taskIDs).Find(&items).Error
}

func (r *taskRepo) ListSubmissionsByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.Submission, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var items []model.Submission
	return items, r.db.WithContext(ctx).Where("task_id IN ?", taskIDs).Find(&items).Error
}

func (r *taskRepo) CreateAssignments(ctx context.Context, as []model.TaskAssignment) error {
	if len(as) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&as).Error
}

func (r *taskRepo) CreateScores(ctx context.Context, ss []model.TaskScore) error {
	if len(ss) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ss).Error
}

func (r *taskRepo) CreateSubmissions(ctx context.Context, ss []model.Submission) error {
	if len(ss) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ss).Error
}
