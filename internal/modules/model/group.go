package model

import (
	"time"

	"github.com/google/uuid"
)

// Member roles within a group.
const (
	RoleLeader = "leader"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Group struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string     `gorm:"type:text;not null" json:"name"`
	Description     *string    `gorm:"type:text" json:"description"`
	ClassCode       *string    `gorm:"type:text" json:"class_code"`
	InstructorName  *string    `gorm:"type:text" json:"instructor_name"`
	InstructorEmail *string    `gorm:"type:text" json:"instructor_email"`
	AdditionalInfo  *string    `gorm:"type:text" json:"additional_info"`
	ChatLink        *string    `gorm:"type:text" json:"chat_link"`
	ImageURL        *string    `gorm:"type:text" json:"image_url"`
	Slug            string     `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	LeaderID        *uuid.UUID `gorm:"type:uuid" json:"leader_id"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Group <-> GroupMember
	Members []GroupMember `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Group <-> Stage
	Stages []Stage `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Group <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Group) TableName() string { return "groups" }

type GroupMember struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_group_user,priority:1" json:"group_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_group_user,priority:2" json:"user_id"`
	Role    string    `gorm:"type:text;not null;default:'member';check:role IN ('leader','admin','member')" json:"role"`

	JoinedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"joined_at"`

	// GroupMember <-> Group
	Group *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// GroupMember <-> Profile
	Profile *Profile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"profile,omitempty"`
}

func (GroupMember) TableName() string { return "group_members" }
