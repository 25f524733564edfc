package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/learnfx/academy-api/model"
	"github.com/learnfx/academy-api/utils/cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ratingCacheTTL = 15 * time.Minute

// ReviewService enforces the enrollment-required, one-review-per-user rules
// and maintains the cached average-rating projection.
type ReviewService struct {
	db    *gorm.DB
	cache *cache.RedisCache // optional; projections fall back to the DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, redisCache *cache.RedisCache) *ReviewService {
	return &ReviewService{db: db, cache: redisCache}
}

// CourseRating is the read-time rating projection for a course.
type CourseRating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// CreateReview creates a review for a course the user is enrolled in.
// Duplicate reviews are rejected via a conditional insert on the
// (user_id, course_id) unique key, so a race between two submissions
// cannot produce two rows.
func (s *ReviewService) CreateReview(ctx context.Context, user *model.User, courseSlug string, rating int, text string) (*model.CourseReview, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var course model.Course
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", courseSlug, true).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	var enrollmentCount int64
	err = s.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&enrollmentCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrollmentCount == 0 {
		return nil, ErrNotEnrolled
	}

	review := model.CourseReview{
		UserID:     user.ID,
		CourseID:   course.ID,
		Rating:     rating,
		Review:     text,
		IsApproved: true,
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&review)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// The earlier review stays untouched.
		return nil, ErrDuplicateReview
	}

	s.invalidateRating(ctx, course.Slug)

	return &review, nil
}

// ListCourseReviews returns the approved reviews for a course, newest first.
func (s *ReviewService) ListCourseReviews(ctx context.Context, courseSlug string) ([]model.CourseReview, error) {
	var course model.Course
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", courseSlug, true).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	var reviews []model.CourseReview
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ? AND is_approved = ?", course.ID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetCourseRating returns the average rating projection for a course,
// served from redis when warm.
func (s *ReviewService) GetCourseRating(ctx context.Context, courseSlug string) (*CourseRating, error) {
	if s.cache != nil {
		var cached CourseRating
		if err := s.cache.GetJSON(ctx, ratingCacheKey(courseSlug), &cached); err == nil {
			return &cached, nil
		}
	}

	rating, err := s.computeRating(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, ratingCacheKey(courseSlug), rating, ratingCacheTTL); err != nil {
			log.Printf("Warning: failed to cache rating for %s: %v", courseSlug, err)
		}
	}
	return rating, nil
}

// RefreshCourseRating recomputes and re-caches the projection. Used by the
// scheduled rating refresh job.
func (s *ReviewService) RefreshCourseRating(ctx context.Context, courseSlug string) error {
	rating, err := s.computeRating(ctx, courseSlug)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.SetJSON(ctx, ratingCacheKey(courseSlug), rating, ratingCacheTTL)
}

func (s *ReviewService) computeRating(ctx context.Context, courseSlug string) (*CourseRating, error) {
	var result struct {
		Average float64
		Count   int64
	}
	err := s.db.WithContext(ctx).Model(&model.CourseReview{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Joins("JOIN courses ON courses.id = course_reviews.course_id").
		Where("courses.slug = ? AND course_reviews.is_approved = ?", courseSlug, true).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute course rating: %w", err)
	}
	return &CourseRating{Average: result.Average, Count: result.Count}, nil
}

func (s *ReviewService) invalidateRating(ctx context.Context, courseSlug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ratingCacheKey(courseSlug)); err != nil {
		log.Printf("Warning: failed to invalidate rating cache for %s: %v", courseSlug, err)
	}
}

func ratingCacheKey(courseSlug string) string {
	return "course_rating:" + courseSlug
}
