package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the profile row created at sign-up. ID doubles as the identity
// the issued tokens refer to; Role is "user" unless promoted.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email       string `gorm:"uniqueIndex;size:150" json:"email"`
	Password    string `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	FirstName   string `gorm:"size:100" json:"first_name"`
	LastName    string `gorm:"size:100" json:"last_name"`
	DisplayName string `gorm:"size:200" json:"display_name"`
	Phone       string `gorm:"size:50" json:"phone,omitempty"`

	EmailVerified bool   `gorm:"default:false" json:"email_verified"`
	Role          string `gorm:"size:32;default:user" json:"role"`

	ResetToken        *string    `gorm:"size:128;index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
}
