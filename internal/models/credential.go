package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the identity provider's record: one per provider identity,
// keyed by registered email. The ID is the UID accounts reference.
type Credential struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DisplayName  string    `gorm:"size:255" json:"display_name"`
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginAttempt records a failed sign-in for throttling. Rows for an email
// are cleared on successful sign-in.
type LoginAttempt struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
