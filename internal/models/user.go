package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is an employee account. Usernames are unique under the
// case/accent-insensitive expression index created by database.Migrate,
// which backs the pre-insert duplicate check in UserService.
type User struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string                      `gorm:"size:255;not null" json:"username"`
	Password  string                      `gorm:"not null" json:"-"`
	Roles     datatypes.JSONSlice[string] `gorm:"not null;default:'[\"Employee\"]'" json:"roles"`
	Active    bool                        `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
