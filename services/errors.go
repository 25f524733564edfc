package services

import "errors"

// Sentinel errors returned by the enrollment/progress/review services.
// Handlers map these onto HTTP statuses; anything else is a 500.
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrNotEnrolled          = errors.New("user is not enrolled in this course")
	ErrSubscriptionRequired = errors.New("premium subscription required")
	ErrDuplicateReview      = errors.New("course already reviewed by this user")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
)
