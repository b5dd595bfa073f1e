package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification kinds
const (
	NotifyAssignment     = "assignment"
	NotifyCompletion     = "completion"
	NotifyRemarkCreated  = "remark_created"
	NotifyRemarkResponse = "remark_response"
	NotifyOverdueDigest  = "overdue_digest"
)

// Notification send outcomes
const (
	NotifySent   = "sent"
	NotifyFailed = "failed"
)

// NotificationLog records every outbound notification attempt. Sends are
// best-effort: the triggering mutation succeeds regardless, so this table is
// the only durable trace of delivery failures.
type NotificationLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Kind      string         `gorm:"type:varchar(30);index;not null" json:"kind"`
	Recipient string         `gorm:"not null" json:"recipient"`
	Subject   string         `json:"subject"`
	Status    string         `gorm:"type:varchar(10);index;not null" json:"status"` // sent, failed
	Error     string         `json:"error,omitempty"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
