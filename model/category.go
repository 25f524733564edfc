package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups courses by topic (e.g. Forex, Crypto)
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Icon        string         `json:"icon,omitempty"` // object storage key
	IsActive    bool           `gorm:"default:true" json:"is_active"`

	// Relationships
	Courses []Course `gorm:"foreignKey:CategoryID" json:"-"`
}
