package model

import (
	"time"
)

// CourseReview is a rating left by an enrolled user. One review per
// (user, course), permanently; the unique index backs the conflict check.
type CourseReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_user_course" json:"user_id"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_review_user_course" json:"course_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1-5 stars
	Review     string    `gorm:"type:text" json:"review,omitempty"`
	IsApproved bool      `gorm:"default:true" json:"is_approved"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}
