package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is the side lookup record keyed by email. Presence of a row with
// role "admin" is the authoritative authorization check.
type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:150" json:"email"`
	Role      string         `gorm:"size:32;default:admin" json:"role"`
	LastLogin *time.Time     `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
