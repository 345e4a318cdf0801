package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"github.com/uniteam-dev/uniteam/internal/modules/repo"
	"github.com/uniteam-dev/uniteam/internal/pkg/utils"
)

type GroupService interface {
	Create(ctx context.Context, in CreateGroupInput) (*model.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]MemberWithProfile, error)
}

type groupService struct {
	groups   repo.GroupRepo
	profiles repo.ProfileRepo
}

func NewGroupService(groups repo.GroupRepo, profiles repo.ProfileRepo) GroupService {
	return &groupService{groups: groups, profiles: profiles}
}

type CreateGroupInput struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	ClassCode       *string `json:"class_code"`
	InstructorName  *string `json:"instructor_name"`
	InstructorEmail *string `json:"instructor_email"`
	AdditionalInfo  *string `json:"additional_info"`
	ChatLink        *string `json:"chat_link"`
	ImageURL        *string `json:"image_url"`

	CreatedBy uuid.UUID `json:"-"`
}

func (s *groupService) Create(ctx context.Context, in CreateGroupInput) (*model.Group, error) {
	slug, err := utils.Slugify(in.Name)
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}

	g := &model.Group{
		Name:            in.Name,
		Description:     in.Description,
		ClassCode:       in.ClassCode,
		InstructorName:  in.InstructorName,
		InstructorEmail: in.InstructorEmail,
		AdditionalInfo:  in.AdditionalInfo,
		ChatLink:        in.ChatLink,
		ImageURL:        in.ImageURL,
		Slug:            slug,
		LeaderID:        &in.CreatedBy,
		CreatedBy:       in.CreatedBy,
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	// The creator joins as leader.
	if err := s.groups.CreateMember(ctx, &model.GroupMember{
		GroupID: g.ID,
		UserID:  in.CreatedBy,
		Role:    model.RoleLeader,
	}); err != nil {
		return nil, fmt.Errorf("add creator as leader: %w", err)
	}

	return g, nil
}

func (s *groupService) GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	if id == uuid.Nil {
		return nil, errors.New("group id is empty")
	}
	return s.groups.Get(ctx, id)
}

func (s *groupService) List(ctx context.Context) ([]model.Group, error) {
	return s.groups.ListByName(ctx)
}

type MemberWithProfile struct {
	UserID   uuid.UUID      `json:"user_id"`
	Role     string         `json:"role"`
	JoinedAt string         `json:"joined_at"`
	Profile  *model.Profile `json:"profile,omitempty"`
}

func (s *groupService) ListMembers(ctx context.Context, groupID uuid.UUID) ([]MemberWithProfile, error) {
	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	profiles, err := s.profiles.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]MemberWithProfile, 0, len(members))
	for _, m := range members {
		mw := MemberWithProfile{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt.UTC().Format(time.RFC3339),
		}
		if p, ok := byID[m.UserID]; ok {
			prof := p
			mw.Profile = &prof
		}
		out = append(out, mw)
	}
	return out, nil
}
