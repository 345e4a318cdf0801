package model

import (
	"time"

	"github.com/google/uuid"
)

// Message source channels.
const (
	MessageSourceDirect = "direct"
	MessageSourceChat   = "chat"
)

type ProjectMessage struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_group_created,priority:1" json:"group_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Content    string `gorm:"type:text;not null" json:"content"`
	SourceType string `gorm:"type:text;not null;default:'direct'" json:"source_type"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP;index:idx_group_created,priority:2" json:"created_at"`

	// ProjectMessage <-> Group
	Group *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProjectMessage) TableName() string { return "project_messages" }
