package services

import (
	"context"
	"testing"

	"github.com/learnfx/academy-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Course search uses ILIKE and is covered against Postgres; these tests stay
// on the slug-based read paths that behave the same on SQLite.

func TestGetCourse(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, nil)

	seedCourse(t, db, "fx-101", false, true, []lessonSpec{
		{slug: "intro", preview: true, published: true},
		{slug: "draft", published: false},
		{slug: "charts", published: true},
	})
	seedCourse(t, db, "draft-course", false, false, nil)

	course, err := svc.GetCourse(ctx, "fx-101")
	require.NoError(t, err)
	assert.Equal(t, "fx-101", course.Slug)

	// Only published lessons, in display order.
	require.Len(t, course.Lessons, 2)
	assert.Equal(t, "intro", course.Lessons[0].Slug)
	assert.Equal(t, "charts", course.Lessons[1].Slug)

	_, err = svc.GetCourse(ctx, "draft-course")
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.GetCourse(ctx, "missing")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetLesson(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, nil)

	seedCourse(t, db, "fx-101", false, true, []lessonSpec{
		{slug: "intro", preview: true, published: true},
		{slug: "draft", published: false},
	})

	lesson, course, err := svc.GetLesson(ctx, "fx-101", "intro")
	require.NoError(t, err)
	assert.Equal(t, "intro", lesson.Slug)
	assert.Equal(t, course.ID, lesson.CourseID)
	assert.True(t, lesson.IsPreview)

	_, _, err = svc.GetLesson(ctx, "fx-101", "draft")
	assert.ErrorIs(t, err, ErrLessonNotFound)

	_, _, err = svc.GetLesson(ctx, "fx-101", "missing")
	assert.ErrorIs(t, err, ErrLessonNotFound)

	_, _, err = svc.GetLesson(ctx, "missing", "intro")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, nil)

	categories := []model.Category{
		{Name: "Forex", Slug: "forex", IsActive: true},
		{Name: "Crypto", Slug: "crypto", IsActive: true},
		{Name: "Retired", Slug: "retired", IsActive: false},
	}
	require.NoError(t, db.Create(&categories).Error)

	active, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)

	// Sorted by name, inactive hidden.
	assert.Equal(t, "Crypto", active[0].Name)
	assert.Equal(t, "Forex", active[1].Name)
}
