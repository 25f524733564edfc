package services

import (
	"context"
	"errors"
	"time"

	"github.com/learnfx/academy-api/model"
	"gorm.io/gorm"
)

// AccessDenialReason tells the caller why a lesson is locked.
type AccessDenialReason string

const (
	DeniedNotEnrolled          AccessDenialReason = "not_enrolled"
	DeniedSubscriptionRequired AccessDenialReason = "subscription_required"
)

// AccessDecision is the outcome of a lesson visibility check.
type AccessDecision struct {
	Allowed bool
	Reason  AccessDenialReason
}

// AccessService decides whether a user may view a lesson. This is the only
// place that rule lives; every path that serves lesson content goes through
// CanAccessLesson so the checks cannot drift apart.
type AccessService struct {
	db *gorm.DB
}

// NewAccessService creates a new access service
func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// CanAccessLesson applies the visibility rules in order:
//  1. preview lessons are always viewable, enrolled or not;
//  2. otherwise an enrollment for (user, course) is required;
//  3. premium courses additionally require an active subscription.
func (s *AccessService) CanAccessLesson(ctx context.Context, user *model.User, course *model.Course, lesson *model.Lesson, now time.Time) (AccessDecision, error) {
	if lesson.IsPreview {
		return AccessDecision{Allowed: true}, nil
	}

	enrolled, err := s.IsEnrolled(ctx, user.ID, course.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	if !enrolled {
		return AccessDecision{Allowed: false, Reason: DeniedNotEnrolled}, nil
	}

	if course.IsPremium && !user.HasActiveSubscription(now) {
		return AccessDecision{Allowed: false, Reason: DeniedSubscriptionRequired}, nil
	}

	return AccessDecision{Allowed: true}, nil
}

// IsEnrolled reports whether an enrollment row exists for (user, course).
func (s *AccessService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	var enrollment model.Enrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
