package cron

import (
	"log"

	"github.com/internadmin/internship-api/services"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron     *cron.Cron
	db       *gorm.DB
	notifier *services.Notifier
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, notifier *services.Notifier) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:     c,
		db:       db,
		notifier: notifier,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Daily at 7 AM: email the admin a digest of overdue internships
	_, err := m.cron.AddFunc("0 0 7 * * *", func() {
		log.Println("Cron job starting: overdue_internship_digest")
		m.SendOverdueDigest()
	})
	if err != nil {
		return err
	}

	// Daily at 3 AM: prune old notification log rows
	_, err = m.cron.AddFunc("0 0 3 * * *", func() {
		log.Println("Cron job starting: cleanup_notification_logs")
		m.CleanupNotificationLogs()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}
