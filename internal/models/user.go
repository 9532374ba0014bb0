package models

import (
	"time"

	"github.com/google/uuid"
)

// User is created on the first allow-listed Google sign-in and never deleted.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoogleID  string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	Picture   string    `gorm:"size:1024" json:"picture"`
	IsAdmin   bool      `gorm:"default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
