package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the authenticated identity behind a session. The password
// hash never leaves the server.
type User struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;type:text" json:"-"`
	UserMetadata datatypes.JSON `gorm:"column:user_metadata;type:jsonb" json:"user_metadata"`

	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	LastSignInAt *time.Time `gorm:"column:last_sign_in_at;type:timestamptz" json:"last_sign_in_at,omitempty"`
}

func (User) TableName() string { return "users" }
