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

// EnrollmentService is the single source of truth for enrollment existence.
type EnrollmentService struct {
	db *gorm.DB
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// Enroll registers the user in a published course. The operation is an
// idempotent upsert on the (user_id, course_id) unique key: re-enrolling is
// a success with created=false, never an error. Concurrent calls for the
// same pair race on a conditional insert, and the loser re-fetches the
// winner's row.
func (s *EnrollmentService) Enroll(ctx context.Context, user *model.User, courseSlug string, now time.Time) (*model.Enrollment, bool, error) {
	var course model.Course
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", courseSlug, true).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unpublished courses look nonexistent to callers.
			return nil, false, ErrCourseNotFound
		}
		return nil, false, fmt.Errorf("failed to fetch course: %w", err)
	}

	if course.IsPremium && !user.HasActiveSubscription(now) {
		return nil, false, ErrSubscriptionRequired
	}

	enrollment := model.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		EnrolledAt: now,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&enrollment)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create enrollment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Already enrolled (possibly by a concurrent request); return the
		// existing row unchanged.
		var existing model.Enrollment
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND course_id = ?", user.ID, course.ID).
			First(&existing).Error
		if err != nil {
			return nil, false, fmt.Errorf("failed to fetch existing enrollment: %w", err)
		}
		return &existing, false, nil
	}

	return &enrollment, true, nil
}

// GetEnrollment fetches the enrollment for (user, course), or ErrNotEnrolled.
func (s *EnrollmentService) GetEnrollment(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to fetch enrollment: %w", err)
	}
	return &enrollment, nil
}

// ListUserEnrollments returns the user's enrollments, newest first.
func (s *EnrollmentService) ListUserEnrollments(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := s.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}
