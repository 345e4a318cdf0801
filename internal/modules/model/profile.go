package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the account row for a person. StudentID is the natural key used
// to re-link people across environments; the row's own ID never leaves the
// database it was generated in.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID string    `gorm:"type:text;not null;uniqueIndex" json:"student_id"`
	FullName  string    `gorm:"type:text;not null;default:''" json:"full_name"`
	Email     string    `gorm:"type:text;not null;default:''" json:"email"`

	// HMAC of the bearer api key, used for auth lookup. Never exposed.
	APIKeyHMAC string `gorm:"column:api_key_hmac;type:text;not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
