package models

import "time"

// Profile holds the app-level role for one identity. Exactly one row
// per user_id; created lazily with RoleStudent on first visit.
type Profile struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;uniqueIndex" json:"user_id"`
	Role   Role   `gorm:"column:role;type:text" json:"role"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
