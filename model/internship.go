package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Internship statuses
const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// ValidInternshipStatus reports whether s is a known internship status
func ValidInternshipStatus(s string) bool {
	return s == StatusActive || s == StatusCompleted || s == StatusCancelled
}

// Internship is a time-bounded assignment linking a user to a role/title.
// Invariant: StartDate < EndDate, enforced by the lifecycle service on create
// and on any update that supplies both dates.
type Internship struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Title          string    `gorm:"not null" json:"title"`
	Role           string    `gorm:"not null" json:"role"`
	StartDate      time.Time `gorm:"not null" json:"start_date"`
	EndDate        time.Time `gorm:"not null" json:"end_date"`
	Description    string    `json:"description,omitempty"`
	Status         string    `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	CertificateURL string    `json:"certificate_url,omitempty"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Remarks []Remark `gorm:"foreignKey:InternshipID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (i *Internship) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InternshipView is an internship enriched with read-time derived fields.
// The derived values are computed from wall-clock time and never persisted.
type InternshipView struct {
	Internship
	DaysLeft               *int   `json:"days_left,omitempty"`
	IsOverdue              bool   `json:"is_overdue"`
	Progress               *int   `json:"progress,omitempty"`
	Duration               string `json:"duration"`
	CanDownloadCertificate bool   `json:"can_download_certificate"`
}

// DashboardStats aggregates a user's internships by status together with
// their most recent records.
type DashboardStats struct {
	Total          int              `json:"total"`
	Active         int              `json:"active"`
	Completed      int              `json:"completed"`
	Cancelled      int              `json:"cancelled"`
	RecentActivity []InternshipView `json:"recent_activity"`
}

// Eligibility is the structured result of a certificate download check.
// It is used for UI gating; the download routes do their own enforcement.
type Eligibility struct {
	CanDownload bool   `json:"can_download"`
	Reason      string `json:"reason,omitempty"`
}
