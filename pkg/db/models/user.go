package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the review author identity. Authentication lives outside this
// service; only the fields surfaced alongside reviews are kept here.
type User struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Username       string    `gorm:"column:username;not null;uniqueIndex"`
	FirstName      string    `gorm:"column:first_name;not null"`
	LastName       string    `gorm:"column:last_name;not null"`
	ProfilePicture *string   `gorm:"column:profile_picture"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
