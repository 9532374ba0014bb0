package models

import (
	"time"

	"github.com/google/uuid"
)

// Group is a named bookmark collection owned by a single user.
//
// Deleted is an explicit flag rather than gorm.DeletedAt: soft-deleted groups
// must stay reachable for restore, and listings filter on the flag themselves.
type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Deleted   bool      `gorm:"default:false;index" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
