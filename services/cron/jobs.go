package cron

import (
	"context"
	"log"
	"time"

	"github.com/internadmin/internship-api/model"
)

// notificationLogRetention is how long notification log rows are kept
const notificationLogRetention = 90 * 24 * time.Hour

// SendOverdueDigest finds ACTIVE internships whose end date has passed and
// emails the admin a summary. Transitions remain an admin decision; the job
// only surfaces them.
func (m *CronManager) SendOverdueDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var overdue []model.Internship
	err := m.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", model.StatusActive, time.Now()).
		Order("end_date ASC").
		Find(&overdue).Error
	if err != nil {
		log.Printf("Overdue digest query failed: %v", err)
		return
	}

	if len(overdue) == 0 {
		log.Println("Overdue digest: nothing to report")
		return
	}

	m.notifier.NotifyOverdueDigest(overdue)
	log.Printf("Overdue digest sent for %d internship(s)", len(overdue))
}

// CleanupNotificationLogs prunes notification log rows older than the
// retention window
func (m *CronManager) CleanupNotificationLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-notificationLogRetention)

	result := m.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.NotificationLog{})
	if result.Error != nil {
		log.Printf("Notification log cleanup failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Notification log cleanup removed %d row(s)", result.RowsAffected)
	}
}
