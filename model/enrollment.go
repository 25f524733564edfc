package model

import (
	"time"
)

// Enrollment records a user's registration in a course. At most one row per
// (user, course) pair ever exists, and rows are never deleted: the unique
// index is what arbitrates concurrent enroll calls, so there is no soft
// delete here.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"course_id"`

	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`
	// CompletedAt is set exactly once, the first time ProgressPercentage
	// reaches 100, and never cleared afterwards.
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	ProgressPercentage int        `gorm:"default:0" json:"progress_percentage"`

	// Relationships
	User           User             `gorm:"foreignKey:UserID" json:"-"`
	Course         Course           `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	LessonProgress []LessonProgress `gorm:"foreignKey:EnrollmentID" json:"-"`
}

// IsCompleted reports whether the enrollment has ever reached 100%.
func (e *Enrollment) IsCompleted() bool {
	return e.CompletedAt != nil
}

// LessonProgress tracks a user's state for one lesson. Unique per
// (user, lesson); always attached to the user's enrollment for the
// lesson's course.
type LessonProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_progress_user_lesson" json:"user_id"`
	LessonID     uint      `gorm:"not null;uniqueIndex:idx_progress_user_lesson" json:"lesson_id"`
	EnrollmentID uint      `gorm:"not null;index" json:"enrollment_id"`

	IsCompleted bool `gorm:"default:false" json:"is_completed"`
	// CompletedAt keeps the first completion time even if the lesson is
	// later marked incomplete again.
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	TimeSpent    int        `gorm:"default:0" json:"time_spent"`    // seconds
	LastPosition int        `gorm:"default:0" json:"last_position"` // seconds

	// Relationships
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Lesson     Lesson     `gorm:"foreignKey:LessonID" json:"-"`
	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID" json:"-"`
}

// TableName overrides GORM's default pluralization ("lesson_progresses").
func (LessonProgress) TableName() string {
	return "lesson_progress"
}
