package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a work ticket assigned to a user. Titles share the same
// case/accent-insensitive uniqueness rule as usernames. Ticket numbers come
// from a sequence that database.Migrate starts at 500.
//
// A note references its owner; the owner knows nothing about its notes, and
// deleting a user is refused while any note still points at it.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	Ticket    int64     `gorm:"autoIncrement;uniqueIndex" json:"ticket"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
