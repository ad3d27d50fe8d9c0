package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Vehicle is pure reference data: CRUD only, admin-gated for writes.
type Vehicle struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string  `gorm:"size:255" json:"name"`
	Type        string  `gorm:"size:64;index" json:"type"`
	Capacity    int     `json:"capacity"`
	PricePerDay float64 `gorm:"column:price_per_day" json:"price_per_day"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string  `gorm:"column:image_url;size:255" json:"image_url,omitempty"`

	Features  datatypes.JSON `gorm:"column:features" json:"features,omitempty"`
	Available bool           `gorm:"default:true" json:"available"`
}
