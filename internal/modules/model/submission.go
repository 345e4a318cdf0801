package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission types.
const (
	SubmissionTypeLink = "link"
	SubmissionTypeFile = "file"
)

// Submission is one history entry of what a member turned in for a task.
// FilePath references object storage and is environment-specific: backup
// restore rewrites it to a freshly uploaded key.
type Submission struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	SubmissionLink *string `gorm:"type:text" json:"submission_link"`
	Note           *string `gorm:"type:text" json:"note"`
	SubmissionType string  `gorm:"type:text;not null;default:'link'" json:"submission_type"`

	FilePath *string `gorm:"type:text" json:"file_path"`
	FileName *string `gorm:"type:text" json:"file_name"`
	FileSize *int64  `gorm:"type:bigint" json:"file_size"`

	SubmittedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"submitted_at"`

	// Submission <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Submission) TableName() string { return "submission_history" }
