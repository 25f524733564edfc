package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/learnfx/academy-api/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database migrated with the full
// schema. Each test gets its own database, named after the test so the
// shared cache never leaks rows between tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.CourseReview{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, premium bool, subscriptionEnd *time.Time) *model.User {
	t.Helper()

	user := &model.User{
		Email:               email,
		PasswordHash:        "x",
		Name:                "Test User",
		Role:                "student",
		IsPremium:           premium,
		SubscriptionEndDate: subscriptionEnd,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type lessonSpec struct {
	slug      string
	preview   bool
	published bool
}

// seedCourse creates a course under a fresh category and instructor, with
// lessons built from the given specs.
func seedCourse(t *testing.T, db *gorm.DB, slug string, premium, published bool, lessons []lessonSpec) *model.Course {
	t.Helper()

	category := model.Category{Name: "Cat " + slug, Slug: "cat-" + slug, IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	instructor := seedUser(t, db, "instructor-"+slug+"@example.com", false, nil)

	now := time.Now()
	course := &model.Course{
		Title:        "Course " + slug,
		Slug:         slug,
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
		IsPremium:    premium,
		IsPublished:  published,
		PublishedAt:  &now,
	}
	for i, spec := range lessons {
		course.Lessons = append(course.Lessons, model.Lesson{
			Title:       "Lesson " + spec.slug,
			Slug:        spec.slug,
			Order:       i + 1,
			IsPreview:   spec.preview,
			IsPublished: spec.published,
		})
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func enroll(t *testing.T, db *gorm.DB, user *model.User, course *model.Course) *model.Enrollment {
	t.Helper()

	enrollment := &model.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, db.Create(enrollment).Error)
	return enrollment
}

func fetchEnrollmentRow(t *testing.T, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	t.Helper()

	var enrollment model.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error)
	return &enrollment
}

func futureTime(d time.Duration) *time.Time {
	ts := time.Now().Add(d)
	return &ts
}
