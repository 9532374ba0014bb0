package models

import (
	"time"

	"github.com/google/uuid"
)

// AllowedEmail gates account creation: an email must be present here before
// a Google sign-in is accepted. Its lifecycle is independent from User.
type AllowedEmail struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
