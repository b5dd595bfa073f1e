package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/internadmin/internship-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// sendTimeout bounds a single notification attempt so a dead SMTP server
// cannot stall the mutation that triggered it
const sendTimeout = 15 * time.Second

// Notifier is the fire-and-forget notification sink. Every attempt is
// recorded in notification_logs; failures are logged and swallowed, so the
// triggering operation succeeds regardless of delivery.
type Notifier struct {
	db         *gorm.DB
	email      *EmailService
	adminEmail string
}

// NewNotifier creates a notifier
func NewNotifier(db *gorm.DB, email *EmailService, adminEmail string) *Notifier {
	return &Notifier{
		db:         db,
		email:      email,
		adminEmail: adminEmail,
	}
}

// AdminEmail returns the configured admin inbox
func (n *Notifier) AdminEmail() string {
	return n.adminEmail
}

// NotifyAssignment fires the "internship assigned" email
func (n *Notifier) NotifyAssignment(user *model.User, internship *model.Internship) {
	n.attempt(model.NotifyAssignment, user.Email,
		fmt.Sprintf("New internship assigned: %s", internship.Title),
		map[string]string{"internship_id": internship.ID.String()},
		func() error { return n.email.SendAssignmentEmail(user, internship) })
}

// NotifyCompletion fires the completion email with the certificate attached
func (n *Notifier) NotifyCompletion(user *model.User, internship *model.Internship, certificatePDF []byte) {
	n.attempt(model.NotifyCompletion, user.Email,
		fmt.Sprintf("Congratulations! %s completed", internship.Title),
		map[string]string{
			"internship_id":  internship.ID.String(),
			"certificate_id": CertificateID(internship.ID),
		},
		func() error { return n.email.SendCompletionEmail(user, internship, certificatePDF) })
}

// NotifyRemarkCreated tells the admin inbox about a new remark
func (n *Notifier) NotifyRemarkCreated(author *model.User, internship *model.Internship, remark *model.Remark) {
	if n.adminEmail == "" {
		return
	}
	n.attempt(model.NotifyRemarkCreated, n.adminEmail,
		"New remark submitted",
		map[string]string{"remark_id": remark.ID.String()},
		func() error { return n.email.SendRemarkCreatedEmail(n.adminEmail, author, internship, remark) })
}

// NotifyRemarkResponse tells the remark author about an admin response
func (n *Notifier) NotifyRemarkResponse(author *model.User, remark *model.Remark) {
	n.attempt(model.NotifyRemarkResponse, author.Email,
		"An admin responded to your remark",
		map[string]string{"remark_id": remark.ID.String()},
		func() error { return n.email.SendRemarkResponseEmail(author, remark) })
}

// NotifyOverdueDigest sends the admin digest of overdue internships
func (n *Notifier) NotifyOverdueDigest(overdue []model.Internship) {
	if n.adminEmail == "" || len(overdue) == 0 {
		return
	}
	n.attempt(model.NotifyOverdueDigest, n.adminEmail,
		fmt.Sprintf("%d internship(s) past their end date", len(overdue)),
		map[string]int{"count": len(overdue)},
		func() error { return n.email.SendOverdueDigest(n.adminEmail, overdue) })
}

// attempt runs one send under the bounded timeout and records the outcome.
// net/smtp has no context support, so the send runs in a goroutine and a
// timed-out attempt is abandoned rather than cancelled.
func (n *Notifier) attempt(kind, recipient, subject string, metadata interface{}, send func() error) {
	done := make(chan error, 1)
	go func() { done <- send() }()

	var sendErr error
	select {
	case sendErr = <-done:
	case <-time.After(sendTimeout):
		sendErr = fmt.Errorf("notification send timed out after %s", sendTimeout)
	}

	entry := model.NotificationLog{
		Kind:      kind,
		Recipient: recipient,
		Subject:   subject,
		Status:    model.NotifySent,
	}

	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if sendErr != nil {
		entry.Status = model.NotifyFailed
		entry.Error = sendErr.Error()
		log.Printf("Notification %q to %s failed: %v", kind, recipient, sendErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("Failed to record notification log entry: %v", err)
	}
}
