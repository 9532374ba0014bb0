package models

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a URL shortcut inside a group. Position determines display
// order within the group: strictly increasing, not necessarily contiguous.
// UserID is denormalized from the group for ownership checks.
type Bookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Image     string    `gorm:"size:1024" json:"image"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index" json:"groupId"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Deleted   bool      `gorm:"default:false;index" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
