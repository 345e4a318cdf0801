package model

import (
	"time"

	"github.com/google/uuid"
)

type Stage struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GroupID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"group_id"`
	Name        string     `gorm:"type:text;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	OrderIndex  int        `gorm:"not null;default:0" json:"order_index"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Stage <-> Group
	Group *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Stage <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Stage) TableName() string { return "stages" }
