package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost covers both build-time seed content and store-backed content.
// IsStatic marks the seed posts: those reject update and delete regardless
// of caller identity (BlogService enforces this in one place).
type BlogPost struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug        string         `gorm:"uniqueIndex;size:200" json:"slug"`
	Title       string         `gorm:"size:255" json:"title"`
	Excerpt     string         `gorm:"type:text" json:"excerpt,omitempty"`
	Content     string         `gorm:"type:longtext" json:"content"` // HTML
	FeaturedImg string         `gorm:"column:featured_image;size:255" json:"featured_image,omitempty"`
	PublishedAt *time.Time     `gorm:"column:published_at;index" json:"published_at,omitempty"`
	Author      string         `gorm:"size:200" json:"author,omitempty"`
	Tags        datatypes.JSON `json:"tags,omitempty"`
	Category    string         `gorm:"size:100;index" json:"category,omitempty"`
	ReadTime    int            `gorm:"column:read_time" json:"read_time,omitempty"` // minutes
	IsStatic    bool           `gorm:"column:is_static;default:false" json:"is_static"`
}
