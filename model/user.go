package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, instructor, admin

	// Subscription state is maintained by the billing service; this API
	// only reads it when gating premium content.
	IsPremium           bool       `gorm:"default:false" json:"is_premium"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`

	// Relationships
	Enrollments []Enrollment   `gorm:"foreignKey:UserID" json:"-"`
	Reviews     []CourseReview `gorm:"foreignKey:UserID" json:"-"`
}

// HasActiveSubscription reports whether the user's premium entitlement is
// active at the given instant. The end date must be strictly in the future.
func (u *User) HasActiveSubscription(now time.Time) bool {
	if !u.IsPremium || u.SubscriptionEndDate == nil {
		return false
	}
	return u.SubscriptionEndDate.After(now)
}
