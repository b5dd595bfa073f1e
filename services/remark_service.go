package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/internadmin/internship-api/model"
	"gorm.io/gorm"
)

// RemarkService manages the remark request/response workflow. Ownership and
// existence failures are deliberately indistinguishable: both surface as
// ErrNotFound so a caller cannot probe for other users' internships.
type RemarkService struct {
	db       *gorm.DB
	notifier *Notifier
}

// NewRemarkService creates a remark service
func NewRemarkService(db *gorm.DB, notifier *Notifier) *RemarkService {
	return &RemarkService{db: db, notifier: notifier}
}

// Create persists a PENDING remark authored by userID against one of their
// own internships and fires a best-effort admin notification.
func (s *RemarkService) Create(ctx context.Context, userID, internshipID uuid.UUID, message, requestType string) (*model.Remark, error) {
	internship, err := s.ownedInternship(ctx, userID, internshipID)
	if err != nil {
		return nil, err
	}

	if requestType == "" {
		requestType = model.RequestGeneral
	}

	remark := model.Remark{
		InternshipID: internshipID,
		UserID:       userID,
		Message:      message,
		RequestType:  requestType,
		Status:       model.RemarkPending,
	}

	if err := s.db.WithContext(ctx).Create(&remark).Error; err != nil {
		return nil, fmt.Errorf("failed to create remark: %w", err)
	}

	var author model.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", userID).Error; err == nil {
		s.notifier.NotifyRemarkCreated(&author, internship, &remark)
	}

	return &remark, nil
}

// ListForInternship returns the remarks for one internship owned by userID,
// newest first
func (s *RemarkService) ListForInternship(ctx context.Context, userID, internshipID uuid.UUID) ([]model.Remark, error) {
	if _, err := s.ownedInternship(ctx, userID, internshipID); err != nil {
		return nil, err
	}

	var remarks []model.Remark
	if err := s.db.WithContext(ctx).
		Where("internship_id = ? AND user_id = ?", internshipID, userID).
		Order("created_at DESC").
		Find(&remarks).Error; err != nil {
		return nil, fmt.Errorf("failed to list remarks: %w", err)
	}
	return remarks, nil
}

// ListAllForUser returns every remark authored by userID across all their
// internships, newest first
func (s *RemarkService) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Remark, error) {
	var remarks []model.Remark
	if err := s.db.WithContext(ctx).
		Preload("Internship").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&remarks).Error; err != nil {
		return nil, fmt.Errorf("failed to list remarks: %w", err)
	}
	return remarks, nil
}

// ListAll returns every remark in the system, newest first (admin view)
func (s *RemarkService) ListAll(ctx context.Context) ([]model.Remark, error) {
	var remarks []model.Remark
	if err := s.db.WithContext(ctx).
		Preload("Internship").
		Preload("User").
		Order("created_at DESC").
		Find(&remarks).Error; err != nil {
		return nil, fmt.Errorf("failed to list remarks: %w", err)
	}
	return remarks, nil
}

// Respond records an admin response, moving the remark to REVIEWED or
// RESOLVED. There is no precondition on the prior status, so an admin may
// respond repeatedly (e.g. REVIEWED then RESOLVED).
func (s *RemarkService) Respond(ctx context.Context, remarkID uuid.UUID, adminResponse, status string) (*model.Remark, error) {
	if status != model.RemarkReviewed && status != model.RemarkResolved {
		return nil, fmt.Errorf("status must be %s or %s: %w",
			model.RemarkReviewed, model.RemarkResolved, ErrInvalidStatus)
	}

	var remark model.Remark
	if err := s.db.WithContext(ctx).Preload("User").First(&remark, "id = ?", remarkID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("remark %s: %w", remarkID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load remark: %w", err)
	}

	remark.AdminResponse = adminResponse
	remark.Status = status

	if err := s.db.WithContext(ctx).Save(&remark).Error; err != nil {
		return nil, fmt.Errorf("failed to update remark: %w", err)
	}

	s.notifier.NotifyRemarkResponse(&remark.User, &remark)

	return &remark, nil
}

// ownedInternship loads an internship only if it exists and belongs to
// userID; any miss is ErrNotFound
func (s *RemarkService) ownedInternship(ctx context.Context, userID, internshipID uuid.UUID) (*model.Internship, error) {
	var internship model.Internship
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", internshipID, userID).
		First(&internship).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("internship not found or access denied: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load internship: %w", err)
	}
	return &internship, nil
}
