package jobs

import (
	"autorent-backend/internal/config"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/notify"
	"autorent-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled maintenance jobs
type JobRunner struct {
	store    *postgres.Store
	emails   notify.EmailSender
	notifier notify.Notifier
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, emails notify.EmailSender, notifier notify.Notifier, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		emails:   emails,
		notifier: notifier,
		config:   cfg,
	}
}

// Config exposes the configuration for scheduler registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.FinishOverdueBookings()
	jr.DeactivateExpiredCoupons()
	jr.SendReturnReminders()
}
