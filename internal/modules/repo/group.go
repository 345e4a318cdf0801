package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"gorm.io/gorm"
)

type GroupRepo interface {
	Create(ctx context.Context, g *model.Group) error
	Get(ctx context.Context, id uuid.UUID) (*model.Group, error)
	ListByName(ctx context.Context) ([]model.Group, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error)
	CreateMember(ctx context.Context, m *model.GroupMember) error
	CreateMembers(ctx context.Context, ms []model.GroupMember) error
}

type groupRepo struct{ db *gorm.DB }

func NewGroupRepo(db *gorm.DB) GroupRepo {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, g *model.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *groupRepo) Get(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).Where(&model.Group{ID: id}).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) ListByName(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	return groups, r.db.WithContext(ctx).Order("name").Find(&groups).Error
}

func (r *groupRepo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error) {
	var members []model.GroupMember
	return members, r.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&members).Error
}

func (r *groupRepo) CreateMember(ctx context.Context, m *model.GroupMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *groupRepo) CreateMembers(ctx context.Context, ms []model.GroupMember) error {
	if len(ms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}
