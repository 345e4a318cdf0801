package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
	TaskStatusVerified   = "VERIFIED"
)

// Task origins. A restored task was created by a backup import; assignment
// notifications are suppressed for it.
const (
	TaskOriginNormal   = "normal"
	TaskOriginRestored = "restored"
)

// IsValidTaskStatus checks if the given status is one of the known states.
func IsValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusVerified:
		return true
	}
	return false
}

type Task struct {
	ID      uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GroupID uuid.UUID  `gorm:"type:uuid;not null;index" json:"group_id"`
	StageID *uuid.UUID `gorm:"type:uuid;index" json:"stage_id"`

	Title       string     `gorm:"type:text;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:text;not null;default:'TODO';check:status IN ('TODO','IN_PROGRESS','DONE','VERIFIED')" json:"status"`
	Deadline    *time.Time `gorm:"type:timestamptz" json:"deadline"`

	// SubmissionLink holds the raw submission payload: a plain link, or a
	// JSON-encoded list of file/link items (see archive.ParseSubmissionItems).
	SubmissionLink *string `gorm:"type:text" json:"submission_link"`

	Slug      string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	Origin string `gorm:"type:text;not null;default:'normal';check:origin IN ('normal','restored')" json:"origin"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Task <-> Group
	Group *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Task <-> Stage
	Stage *Stage `gorm:"foreignKey:StageID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`

	// Task <-> TaskAssignment
	Assignments []TaskAssignment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Task <-> TaskScore
	Scores []TaskScore `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Task <-> Submission
	Submissions []Submission `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Task) TableName() string { return "tasks" }

type TaskAssignment struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_task_user,priority:1" json:"task_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_task_user,priority:2" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// TaskAssignment <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (TaskAssignment) TableName() string { return "task_assignments" }

// TaskScore is a scoring record per task/member. The numeric fields are an
// opaque bag copied verbatim by backup restore; no recomputation happens there.
type TaskScore struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_score_task_user,priority:1" json:"task_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_score_task_user,priority:2" json:"user_id"`

	BaseScore      float64 `gorm:"type:numeric;not null;default:0" json:"base_score"`
	LatePenalty    float64 `gorm:"type:numeric;not null;default:0" json:"late_penalty"`
	ReviewPenalty  float64 `gorm:"type:numeric;not null;default:0" json:"review_penalty"`
	ReviewCount    int     `gorm:"not null;default:0" json:"review_count"`
	EarlyBonus     float64 `gorm:"type:numeric;not null;default:0" json:"early_bonus"`
	BugHunterBonus float64 `gorm:"type:numeric;not null;default:0" json:"bug_hunter_bonus"`
	FinalScore     float64 `gorm:"type:numeric;not null;default:0" json:"final_score"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// TaskScore <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (TaskScore) TableName() string { return "task_scores" }
