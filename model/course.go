package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course difficulty levels
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Lesson types
const (
	LessonTypeVideo      = "video"
	LessonTypeText       = "text"
	LessonTypeQuiz       = "quiz"
	LessonTypeAssignment = "assignment"
)

// Course is a published learning track made of ordered lessons
type Course struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	Title            string         `gorm:"not null" json:"title"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string         `gorm:"type:text" json:"description"`
	ShortDescription string         `gorm:"type:varchar(300)" json:"short_description"`
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`
	InstructorID     uint           `gorm:"not null;index" json:"instructor_id"`
	DifficultyLevel  string         `gorm:"type:varchar(20);default:'beginner'" json:"difficulty_level"`
	DurationHours    int            `gorm:"default:0" json:"duration_hours"`
	Price            float64        `gorm:"default:0" json:"price"`
	IsPremium        bool           `gorm:"default:false" json:"is_premium"` // requires an active subscription
	IsPublished      bool           `gorm:"default:false;index" json:"is_published"`
	Thumbnail        string         `json:"thumbnail,omitempty"` // object storage key
	PreviewVideo     string         `json:"preview_video,omitempty"`
	PublishedAt      *time.Time     `json:"published_at,omitempty"`

	// Relationships
	Category   Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Instructor User           `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Lessons    []Lesson       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
	Reviews    []CourseReview `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// Lesson belongs to exactly one course. Slugs are unique per course.
// Only published lessons count towards course completion.
type Lesson struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID      uint           `gorm:"not null;uniqueIndex:idx_lesson_course_slug" json:"course_id"`
	Title         string         `gorm:"not null" json:"title"`
	Slug          string         `gorm:"not null;uniqueIndex:idx_lesson_course_slug" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	LessonType    string         `gorm:"type:varchar(20);default:'video'" json:"lesson_type"`
	Order         int            `gorm:"column:sort_order;default:0" json:"order"` // display order, not enforced
	Content       string         `gorm:"type:text" json:"content,omitempty"`
	VideoURL      string         `json:"video_url,omitempty"`
	VideoDuration int            `json:"video_duration,omitempty"` // seconds
	Attachments   datatypes.JSON `json:"attachments,omitempty"`    // list of file URLs
	IsPreview     bool           `gorm:"default:false" json:"is_preview"` // viewable without enrollment
	IsPublished   bool           `gorm:"default:true" json:"is_published"`

	// Relationships
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}
