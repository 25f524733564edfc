package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/learnfx/academy-api/model"
)

// ReconcileEnrollmentProgress recomputes every enrollment's stored
// percentage against the current set of published lessons. Normal request
// handling keeps these in sync; this job repairs the drift introduced when
// the content team publishes or unpublishes lessons out of band. The
// monotonic CompletedAt rule is preserved by the shared recompute helper.
func (m *Manager) ReconcileEnrollmentProgress() {
	jobName := "reconcile_enrollment_progress"

	var enrollments []model.Enrollment
	if err := m.db.Find(&enrollments).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to load enrollments: %w", err))
		return
	}

	now := time.Now()
	repaired := 0
	failed := 0

	for i := range enrollments {
		before := enrollments[i].ProgressPercentage
		if err := m.progress.RecomputeEnrollment(m.db, &enrollments[i], now); err != nil {
			log.Printf("[CRON] Failed to recompute enrollment %d: %v", enrollments[i].ID, err)
			failed++
			continue
		}
		if enrollments[i].ProgressPercentage != before {
			repaired++
		}
	}

	if failed > 0 {
		m.logJobError(jobName, fmt.Errorf("%d enrollments failed, %d repaired", failed, repaired))
		return
	}
	m.logJobComplete(jobName, fmt.Sprintf("%d enrollments checked, %d repaired", len(enrollments), repaired))
}

// RefreshCourseRatings warms the redis average-rating projection for every
// published course so review listings stay cheap.
func (m *Manager) RefreshCourseRatings() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "refresh_course_ratings"

	var slugs []string
	err := m.db.Model(&model.Course{}).
		Where("is_published = ?", true).
		Pluck("slug", &slugs).Error
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to list courses: %w", err))
		return
	}

	refreshed := 0
	for _, slug := range slugs {
		if err := m.reviews.RefreshCourseRating(ctx, slug); err != nil {
			log.Printf("[CRON] Failed to refresh rating for %s: %v", slug, err)
			continue
		}
		refreshed++
	}

	m.logJobComplete(jobName, fmt.Sprintf("%d of %d course ratings refreshed", refreshed, len(slugs)))
}
