package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"gorm.io/gorm"
)

type MessageRepo interface {
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.ProjectMessage, error)
	CreateBatch(ctx context.Context, ms []model.ProjectMessage) error
}

type messageRepo struct{ db *gorm.DB }

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.ProjectMessage, error) {
	var msgs []model.ProjectMessage
	return msgs, r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at").
		Find(&msgs).Error
}

func (r *messageRepo) CreateBatch(ctx context.Context, ms []model.ProjectMessage) error {
	if len(ms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}
