package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Remark request types
const (
	RequestChange    = "CHANGE_REQUEST"
	RequestGeneral   = "GENERAL_REMARK"
	RequestExtension = "EXTENSION_REQUEST"
)

// Remark statuses
const (
	RemarkPending  = "PENDING"
	RemarkReviewed = "REVIEWED"
	RemarkResolved = "RESOLVED"
)

// ValidRequestType reports whether t is a known remark request type
func ValidRequestType(t string) bool {
	return t == RequestChange || t == RequestGeneral || t == RequestExtension
}

// Remark is a user-submitted note or request tied to one of their own
// internships, triaged by an admin. Remarks are only ever deleted through
// the internship cascade.
type Remark struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	InternshipID  uuid.UUID `gorm:"type:uuid;index;not null" json:"internship_id"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Message       string    `gorm:"not null" json:"message"`
	RequestType   string    `gorm:"type:varchar(30);default:'GENERAL_REMARK'" json:"request_type"`
	Status        string    `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	AdminResponse string    `json:"admin_response,omitempty"`

	// Relationships
	Internship Internship `gorm:"foreignKey:InternshipID;constraint:OnDelete:CASCADE" json:"internship,omitempty"`
	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (r *Remark) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
