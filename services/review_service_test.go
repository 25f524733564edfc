package services

import (
	"context"
	"testing"

	"github.com/learnfx/academy-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("creates review for enrolled user", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReviewService(db, nil)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, nil)
		enroll(t, db, user, course)

		review, err := svc.CreateReview(ctx, user, course.Slug, 5, "Great course")
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, "Great course", review.Review)
		assert.True(t, review.IsApproved)
	})

	t.Run("rejects ratings out of bounds", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReviewService(db, nil)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, nil)
		enroll(t, db, user, course)

		_, err := svc.CreateReview(ctx, user, course.Slug, 0, "")
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = svc.CreateReview(ctx, user, course.Slug, 6, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("requires enrollment", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReviewService(db, nil)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, nil)

		_, err := svc.CreateReview(ctx, user, course.Slug, 4, "")
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("rejects duplicate and keeps the first review", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReviewService(db, nil)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, nil)
		enroll(t, db, user, course)

		first, err := svc.CreateReview(ctx, user, course.Slug, 5, "Loved it")
		require.NoError(t, err)

		_, err = svc.CreateReview(ctx, user, course.Slug, 1, "Changed my mind")
		assert.ErrorIs(t, err, ErrDuplicateReview)

		var stored model.CourseReview
		require.NoError(t, db.First(&stored, first.ID).Error)
		assert.Equal(t, 5, stored.Rating)
		assert.Equal(t, "Loved it", stored.Review)
	})

	t.Run("unknown course", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReviewService(db, nil)

		user := seedUser(t, db, "student@example.com", false, nil)

		_, err := svc.CreateReview(ctx, user, "no-such-course", 4, "")
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestListCourseReviews(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	course := seedCourse(t, db, "fx-101", false, true, nil)

	alice := seedUser(t, db, "alice@example.com", false, nil)
	bob := seedUser(t, db, "bob@example.com", false, nil)
	enroll(t, db, alice, course)
	enroll(t, db, bob, course)

	_, err := svc.CreateReview(ctx, alice, course.Slug, 5, "Excellent")
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, bob, course.Slug, 3, "Decent")
	require.NoError(t, err)

	// An unapproved review stays hidden from the listing.
	require.NoError(t, db.Model(&model.CourseReview{}).
		Where("user_id = ?", bob.ID).
		Update("is_approved", false).Error)

	reviews, err := svc.ListCourseReviews(ctx, course.Slug)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, alice.ID, reviews[0].UserID)

	_, err = svc.ListCourseReviews(ctx, "no-such-course")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetCourseRating(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	course := seedCourse(t, db, "fx-101", false, true, nil)

	// No reviews yet.
	rating, err := svc.GetCourseRating(ctx, course.Slug)
	require.NoError(t, err)
	assert.Equal(t, float64(0), rating.Average)
	assert.Equal(t, int64(0), rating.Count)

	alice := seedUser(t, db, "alice@example.com", false, nil)
	bob := seedUser(t, db, "bob@example.com", false, nil)
	enroll(t, db, alice, course)
	enroll(t, db, bob, course)

	_, err = svc.CreateReview(ctx, alice, course.Slug, 5, "")
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, bob, course.Slug, 4, "")
	require.NoError(t, err)

	rating, err = svc.GetCourseRating(ctx, course.Slug)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, rating.Average, 0.001)
	assert.Equal(t, int64(2), rating.Count)
}
