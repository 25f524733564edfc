package services

import (
	"context"
	"testing"
	"time"

	"github.com/learnfx/academy-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestUpdateProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("percentage follows completed published lessons", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, []lessonSpec{
			{slug: "intro", preview: true, published: true},
			{slug: "pairs", published: true},
			{slug: "charts", published: true},
			{slug: "first-trade", published: true},
			{slug: "draft", published: false},
		})
		enroll(t, db, user, course)

		now := time.Now()
		for _, slug := range []string{"intro", "pairs", "charts"} {
			_, err := svc.UpdateProgress(ctx, user, course.Slug, slug, ProgressPatch{IsCompleted: boolPtr(true)}, now)
			require.NoError(t, err)
		}

		enrollment := fetchEnrollmentRow(t, db, user.ID, course.ID)
		assert.Equal(t, 75, enrollment.ProgressPercentage)
		assert.Nil(t, enrollment.CompletedAt)

		_, err := svc.UpdateProgress(ctx, user, course.Slug, "first-trade", ProgressPatch{IsCompleted: boolPtr(true)}, now)
		require.NoError(t, err)

		enrollment = fetchEnrollmentRow(t, db, user.ID, course.ID)
		assert.Equal(t, 100, enrollment.ProgressPercentage)
		require.NotNil(t, enrollment.CompletedAt)
	})

	t.Run("percentage floors fractional results", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, []lessonSpec{
			{slug: "one", published: true},
			{slug: "two", published: true},
			{slug: "three", published: true},
		})
		enroll(t, db, user, course)

		_, err := svc.UpdateProgress(ctx, user, course.Slug, "one", ProgressPatch{IsCompleted: boolPtr(true)}, time.Now())
		require.NoError(t, err)

		// 1 of 3 is 33.33..., stored as 33.
		enrollment := fetchEnrollmentRow(t, db, user.ID, course.ID)
		assert.Equal(t, 33, enrollment.ProgressPercentage)
	})

	t.Run("completion timestamps are set once and never cleared", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, []lessonSpec{
			{slug: "only", published: true},
		})
		enroll(t, db, user, course)

		first := time.Now()
		progress, err := svc.UpdateProgress(ctx, user, course.Slug, "only", ProgressPatch{IsCompleted: boolPtr(true)}, first)
		require.NoError(t, err)
		require.NotNil(t, progress.CompletedAt)
		firstCompletedAt := *progress.CompletedAt

		enrollment := fetchEnrollmentRow(t, db, user.ID, course.ID)
		require.NotNil(t, enrollment.CompletedAt)
		enrollmentCompletedAt := *enrollment.CompletedAt

		// Un-complete, then complete again later.
		progress, err = svc.UpdateProgress(ctx, user, course.Slug, "only", ProgressPatch{IsCompleted: boolPtr(false)}, first.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, progress.IsCompleted)
		require.NotNil(t, progress.CompletedAt)
		assert.WithinDuration(t, firstCompletedAt, *progress.CompletedAt, time.Second)

		// The percentage drops back, but the enrollment stays completed.
		enrollment = fetchEnrollmentRow(t, db, user.ID, course.ID)
		assert.Equal(t, 0, enrollment.ProgressPercentage)
		require.NotNil(t, enrollment.CompletedAt)
		assert.WithinDuration(t, enrollmentCompletedAt, *enrollment.CompletedAt, time.Second)

		progress, err = svc.UpdateProgress(ctx, user, course.Slug, "only", ProgressPatch{IsCompleted: boolPtr(true)}, first.Add(2*time.Hour))
		require.NoError(t, err)
		require.NotNil(t, progress.CompletedAt)
		assert.WithinDuration(t, firstCompletedAt, *progress.CompletedAt, time.Second)
	})

	t.Run("patch fields are absolute and omitted fields untouched", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, []lessonSpec{
			{slug: "intro", published: true},
		})
		enroll(t, db, user, course)

		now := time.Now()
		progress, err := svc.UpdateProgress(ctx, user, course.Slug, "intro", ProgressPatch{
			TimeSpent:    intPtr(120),
			LastPosition: intPtr(90),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, 120, progress.TimeSpent)
		assert.Equal(t, 90, progress.LastPosition)
		assert.False(t, progress.IsCompleted)

		// A later patch with only time_spent overwrites it and leaves the
		// position alone.
		progress, err = svc.UpdateProgress(ctx, user, course.Slug, "intro", ProgressPatch{
			TimeSpent: intPtr(60),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, 60, progress.TimeSpent)
		assert.Equal(t, 90, progress.LastPosition)
	})

	t.Run("requires enrollment even for preview lessons", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, []lessonSpec{
			{slug: "intro", preview: true, published: true},
		})

		_, err := svc.UpdateProgress(ctx, user, course.Slug, "intro", ProgressPatch{IsCompleted: boolPtr(true)}, time.Now())
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("unknown or unpublished lessons", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, []lessonSpec{
			{slug: "draft", published: false},
		})
		enroll(t, db, user, course)

		_, err := svc.UpdateProgress(ctx, user, course.Slug, "missing", ProgressPatch{}, time.Now())
		assert.ErrorIs(t, err, ErrLessonNotFound)

		_, err = svc.UpdateProgress(ctx, user, course.Slug, "draft", ProgressPatch{}, time.Now())
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})

	t.Run("repeated completion is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db)

		user := seedUser(t, db, "student@example.com", false, nil)
		course := seedCourse(t, db, "fx-101", false, true, []lessonSpec{
			{slug: "one", published: true},
			{slug: "two", published: true},
		})
		enroll(t, db, user, course)

		for i := 0; i < 3; i++ {
			_, err := svc.UpdateProgress(ctx, user, course.Slug, "one", ProgressPatch{IsCompleted: boolPtr(true)}, time.Now())
			require.NoError(t, err)
		}

		var rows int64
		require.NoError(t, db.Model(&model.LessonProgress{}).Where("user_id = ?", user.ID).Count(&rows).Error)
		assert.Equal(t, int64(1), rows)

		enrollment := fetchEnrollmentRow(t, db, user.ID, course.ID)
		assert.Equal(t, 50, enrollment.ProgressPercentage)
	})
}

func TestRecomputeEnrollmentWithNoPublishedLessons(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	user := seedUser(t, db, "student@example.com", false, nil)
	course := seedCourse(t, db, "empty-course", false, true, nil)
	enrollment := enroll(t, db, user, course)

	require.NoError(t, svc.RecomputeEnrollment(db, enrollment, time.Now()))
	assert.Equal(t, 0, enrollment.ProgressPercentage)
	assert.Nil(t, enrollment.CompletedAt)
}
