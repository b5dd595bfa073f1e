package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/internadmin/internship-api/model"
	"gorm.io/gorm"
)

// certDateLayout is the localized date format used on certificates
const certDateLayout = "January 2, 2006"

// CertificateData is the flat record substituted into the certificate
// template. IssueDate is always the day of assembly: certificates are
// issued on demand, not stored.
type CertificateData struct {
	UserName        string `json:"user_name"`
	InternshipTitle string `json:"internship_title"`
	Role            string `json:"role"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Duration        string `json:"duration"`
	IssueDate       string `json:"issue_date"`
	CertificateID   string `json:"certificate_id"`
}

// CertificateService assembles certificate data from internship records
type CertificateService struct {
	db *gorm.DB
}

// NewCertificateService creates a new certificate service
func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{db: db}
}

// AssembleData builds the certificate record for an internship. It performs
// no ownership check; the download routes enforce ownership themselves.
func (s *CertificateService) AssembleData(ctx context.Context, internshipID uuid.UUID) (*CertificateData, error) {
	var internship model.Internship
	if err := s.db.WithContext(ctx).Preload("User").First(&internship, "id = ?", internshipID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("internship %s: %w", internshipID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load internship: %w", err)
	}

	return AssembleCertificateData(&internship, time.Now()), nil
}

// AssembleCertificateData builds the certificate record from an already
// loaded internship. Split out so the completion side effect can reuse it
// without a second fetch.
func AssembleCertificateData(internship *model.Internship, now time.Time) *CertificateData {
	return &CertificateData{
		UserName:        internship.User.DisplayName(),
		InternshipTitle: internship.Title,
		Role:            internship.Role,
		StartDate:       internship.StartDate.Format(certDateLayout),
		EndDate:         internship.EndDate.Format(certDateLayout),
		Duration:        Duration(internship.StartDate, internship.EndDate),
		IssueDate:       now.Format(certDateLayout),
		CertificateID:   CertificateID(internship.ID),
	}
}

// CertificateID derives the printed certificate number from the internship
// id: "CERT-" plus the last 8 hex characters, uppercased.
func CertificateID(id uuid.UUID) string {
	raw := strings.ReplaceAll(id.String(), "-", "")
	return "CERT-" + strings.ToUpper(raw[len(raw)-8:])
}
