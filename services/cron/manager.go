package cron

import (
	"log"
	"time"

	"github.com/learnfx/academy-api/model"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/utils/cache"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Manager schedules the background maintenance jobs: enrollment progress
// reconciliation and course rating cache refresh.
type Manager struct {
	cron     *cron.Cron
	db       *gorm.DB
	progress *services.ProgressService
	reviews  *services.ReviewService
}

// NewManager creates a new cron manager
func NewManager(db *gorm.DB, redisCache *cache.RedisCache) *Manager {
	return &Manager{
		cron:     cron.New(cron.WithSeconds()),
		db:       db,
		progress: services.NewProgressService(db),
		reviews:  services.NewReviewService(db, redisCache),
	}
}

// Start registers and starts all jobs
func (m *Manager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (m *Manager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *Manager) registerJobs() error {
	// Hourly: rebuild the cached average-rating projections.
	_, err := m.cron.AddFunc("0 0 * * * *", func() {
		m.logJobStart("refresh_course_ratings")
		m.RefreshCourseRatings()
	})
	if err != nil {
		return err
	}

	// Daily at 3 AM: repair progress percentages that drifted after
	// lessons were published or unpublished by the content team.
	_, err = m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("reconcile_enrollment_progress")
		m.ReconcileEnrollmentProgress()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *Manager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	m.db.Create(&cronLog)
}

// logJobComplete logs successful completion of a cron job
func (m *Manager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": time.Now(),
			"message":      message,
		})
}

// logJobError logs a cron job failure
func (m *Manager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "failed",
			"completed_at": time.Now(),
			"error_msg":    err.Error(),
		})
}
