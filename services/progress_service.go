package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/learnfx/academy-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressPatch is a partial update for a lesson progress row. Nil fields
// are left untouched; supplied values overwrite (they are absolute, not
// additive).
type ProgressPatch struct {
	IsCompleted  *bool `json:"is_completed" validate:"omitempty"`
	TimeSpent    *int  `json:"time_spent" validate:"omitempty,gte=0"`
	LastPosition *int  `json:"last_position" validate:"omitempty,gte=0"`
}

// ProgressService mutates per-lesson progress and keeps the owning
// enrollment's completion percentage in sync.
type ProgressService struct {
	db *gorm.DB
}

// NewProgressService creates a new progress service
func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// UpdateProgress applies a partial progress update for one lesson and
// recomputes the enrollment aggregate, all in a single transaction so a
// concurrent update never observes a progress row without its matching
// percentage recompute.
//
// Enrollment is required even for preview lessons: viewing is gated by
// AccessService, but recording progress always needs an enrollment row to
// attach to.
func (s *ProgressService) UpdateProgress(ctx context.Context, user *model.User, courseSlug, lessonSlug string, patch ProgressPatch, now time.Time) (*model.LessonProgress, error) {
	var progress *model.LessonProgress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson model.Lesson
		err := tx.
			Joins("JOIN courses ON courses.id = lessons.course_id").
			Where("courses.slug = ? AND courses.is_published = ?", courseSlug, true).
			Where("lessons.slug = ? AND lessons.is_published = ?", lessonSlug, true).
			First(&lesson).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("failed to fetch lesson: %w", err)
		}

		var enrollment model.Enrollment
		err = tx.
			Where("user_id = ? AND course_id = ?", user.ID, lesson.CourseID).
			First(&enrollment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return fmt.Errorf("failed to fetch enrollment: %w", err)
		}

		row, err := s.getOrCreateProgress(tx, user.ID, lesson.ID, enrollment.ID)
		if err != nil {
			return err
		}

		if patch.IsCompleted != nil {
			row.IsCompleted = *patch.IsCompleted
			// First completion stamps the time; un-completing later never
			// clears it.
			if row.IsCompleted && row.CompletedAt == nil {
				completedAt := now
				row.CompletedAt = &completedAt
			}
		}
		if patch.TimeSpent != nil {
			row.TimeSpent = *patch.TimeSpent
		}
		if patch.LastPosition != nil {
			row.LastPosition = *patch.LastPosition
		}

		if err := tx.Save(row).Error; err != nil {
			return fmt.Errorf("failed to save lesson progress: %w", err)
		}

		if err := s.RecomputeEnrollment(tx, &enrollment, now); err != nil {
			return err
		}

		progress = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// getOrCreateProgress inserts a progress row if absent, under the
// (user_id, lesson_id) unique key, then reads back the current row.
func (s *ProgressService) getOrCreateProgress(tx *gorm.DB, userID, lessonID, enrollmentID uint) (*model.LessonProgress, error) {
	row := model.LessonProgress{
		UserID:       userID,
		LessonID:     lessonID,
		EnrollmentID: enrollmentID,
	}
	result := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create lesson progress: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var existing model.LessonProgress
		err := tx.
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(&existing).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch lesson progress: %w", err)
		}
		return &existing, nil
	}
	return &row, nil
}

// RecomputeEnrollment derives the enrollment's completion percentage from
// the current count of completed published lessons and persists it. The
// percentage is floor(100*completed/totalPublished); a course with zero
// published lessons stays at 0. CompletedAt is stamped the first time the
// percentage reaches 100 and is never reverted, even if lessons are later
// unpublished or un-completed.
func (s *ProgressService) RecomputeEnrollment(tx *gorm.DB, enrollment *model.Enrollment, now time.Time) error {
	var totalPublished int64
	err := tx.Model(&model.Lesson{}).
		Where("course_id = ? AND is_published = ?", enrollment.CourseID, true).
		Count(&totalPublished).Error
	if err != nil {
		return fmt.Errorf("failed to count published lessons: %w", err)
	}

	var completed int64
	err = tx.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
		Count(&completed).Error
	if err != nil {
		return fmt.Errorf("failed to count completed lessons: %w", err)
	}

	percentage := 0
	if totalPublished > 0 {
		percentage = int(completed * 100 / totalPublished)
	}

	enrollment.ProgressPercentage = percentage
	if percentage == 100 && enrollment.CompletedAt == nil {
		completedAt := now
		enrollment.CompletedAt = &completedAt
	}

	if err := tx.Save(enrollment).Error; err != nil {
		return fmt.Errorf("failed to save enrollment: %w", err)
	}
	return nil
}
