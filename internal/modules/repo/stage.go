package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"gorm.io/gorm"
)

type StageRepo interface {
	Create(ctx context.Context, s *model.Stage) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Stage, error)
}

type stageRepo struct{ db *gorm.DB }

func NewStageRepo(db *gorm.DB) StageRepo {
	return &stageRepo{db: db}
}

func (r *stageRepo) Create(ctx context.Context, s *model.Stage) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *stageRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Stage, error) {
	var stages []model.Stage
	return stages, r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("order_index").
		Find(&stages).Error
}
