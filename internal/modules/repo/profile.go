package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	ListByUserIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error)
	ListByStudentIDs(ctx context.Context, studentIDs []string) ([]model.Profile, error)
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &profileRepo{db: db}
}

func (r *profileRepo) ListByUserIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []model.Profile
	return profiles, r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error
}

func (r *profileRepo) ListByStudentIDs(ctx context.Context, studentIDs []string) ([]model.Profile, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var profiles []model.Profile
	return profiles, r.db.WithContext(ctx).Where("student_id IN ?", studentIDs).Find(&profiles).Error
}
