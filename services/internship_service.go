package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/internadmin/internship-api/model"
	"gorm.io/gorm"
)

// recentActivityLimit caps the dashboard's recent activity list
const recentActivityLimit = 5

// CertificateArchiver uploads a generated certificate and returns its
// public URL. Optional: a nil archiver skips archival entirely.
type CertificateArchiver interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// InternshipService validates and applies lifecycle operations on
// internship records, including the completion-triggered certificate and
// email side effects.
type InternshipService struct {
	db         *gorm.DB
	notifier   *Notifier
	rasterizer *Rasterizer
	archiver   CertificateArchiver
	theme      string
}

// NewInternshipService creates the lifecycle service. archiver may be nil.
func NewInternshipService(db *gorm.DB, notifier *Notifier, rasterizer *Rasterizer, archiver CertificateArchiver) *InternshipService {
	return &InternshipService{
		db:         db,
		notifier:   notifier,
		rasterizer: rasterizer,
		archiver:   archiver,
		theme:      ThemeClassic,
	}
}

// CreateInternshipInput holds the fields for creating an internship
type CreateInternshipInput struct {
	UserID      uuid.UUID
	Title       string
	Role        string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	Status      string
}

// UpdateInternshipInput is a partial patch; nil fields are left untouched
type UpdateInternshipInput struct {
	Title       *string
	Role        *string
	StartDate   *time.Time
	EndDate     *time.Time
	Description *string
	Status      *string
}

// Create validates and persists a new internship, then fires a best-effort
// assignment notification.
func (s *InternshipService) Create(ctx context.Context, input CreateInternshipInput) (*model.Internship, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", input.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user %s: %w", input.UserID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	if !input.StartDate.Before(input.EndDate) {
		return nil, ErrInvalidRange
	}

	status := input.Status
	if status == "" {
		status = model.StatusActive
	}

	internship := model.Internship{
		UserID:      input.UserID,
		Title:       input.Title,
		Role:        input.Role,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		Status:      status,
	}

	if err := s.db.WithContext(ctx).Create(&internship).Error; err != nil {
		return nil, fmt.Errorf("failed to create internship: %w", err)
	}
	internship.User = user

	s.notifier.NotifyAssignment(&user, &internship)

	return &internship, nil
}

// Update applies a partial patch. When the patch moves status into
// COMPLETED from a different prior status, the certificate and completion
// email side effects fire exactly once.
func (s *InternshipService) Update(ctx context.Context, id uuid.UUID, patch UpdateInternshipInput) (*model.Internship, error) {
	var internship model.Internship
	if err := s.db.WithContext(ctx).Preload("User").First(&internship, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("internship %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load internship: %w", err)
	}

	if patch.StartDate != nil && patch.EndDate != nil {
		if !patch.StartDate.Before(*patch.EndDate) {
			return nil, ErrInvalidRange
		}
	}

	priorStatus := internship.Status

	if patch.Title != nil {
		internship.Title = *patch.Title
	}
	if patch.Role != nil {
		internship.Role = *patch.Role
	}
	if patch.StartDate != nil {
		internship.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		internship.EndDate = *patch.EndDate
	}
	if patch.Description != nil {
		internship.Description = *patch.Description
	}
	if patch.Status != nil {
		internship.Status = *patch.Status
	}

	if err := s.db.WithContext(ctx).Save(&internship).Error; err != nil {
		return nil, fmt.Errorf("failed to update internship: %w", err)
	}

	// Completion side effects fire only on the transition into COMPLETED;
	// re-saving an already completed record does not re-trigger them.
	if internship.Status == model.StatusCompleted && priorStatus != model.StatusCompleted {
		s.completeInternship(ctx, &internship)
	}

	return &internship, nil
}

// completeInternship runs the completion side effects: render the
// certificate, optionally archive it, and email it to the user. All of it
// is best-effort; the status change has already been persisted.
func (s *InternshipService) completeInternship(ctx context.Context, internship *model.Internship) {
	data := AssembleCertificateData(internship, time.Now())

	htmlDoc, err := RenderCertificateHTML(data, s.theme)
	if err != nil {
		log.Printf("Completion certificate render failed for %s: %v", internship.ID, err)
		s.notifier.NotifyCompletion(&internship.User, internship, nil)
		return
	}

	pdfBytes, err := s.rasterizer.ToPDF(ctx, htmlDoc)
	if err != nil {
		log.Printf("Completion certificate rasterization failed for %s: %v", internship.ID, err)
		s.notifier.NotifyCompletion(&internship.User, internship, nil)
		return
	}

	if s.archiver != nil {
		key := fmt.Sprintf("certificates/%s.pdf", CertificateID(internship.ID))
		url, err := s.archiver.Upload(ctx, key, pdfBytes, "application/pdf")
		if err != nil {
			log.Printf("Certificate archival failed for %s: %v", internship.ID, err)
		} else {
			internship.CertificateURL = url
			if err := s.db.WithContext(ctx).Model(internship).
				Update("certificate_url", url).Error; err != nil {
				log.Printf("Failed to persist certificate URL for %s: %v", internship.ID, err)
			}
		}
	}

	s.notifier.NotifyCompletion(&internship.User, internship, pdfBytes)
}

// Delete hard-deletes an internship; its remarks go with it via cascade
func (s *InternshipService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.Internship{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete internship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("internship %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetByID fetches one internship with its owner preloaded
func (s *InternshipService) GetByID(ctx context.Context, id uuid.UUID) (*model.Internship, error) {
	var internship model.Internship
	if err := s.db.WithContext(ctx).Preload("User").First(&internship, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("internship %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load internship: %w", err)
	}
	return &internship, nil
}

// GetView fetches one internship enriched with derived fields
func (s *InternshipService) GetView(ctx context.Context, id uuid.UUID) (*model.InternshipView, error) {
	internship, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := BuildInternshipView(internship, time.Now())
	return &view, nil
}

// ListAll returns every internship, newest first (admin view)
func (s *InternshipService) ListAll(ctx context.Context) ([]model.Internship, error) {
	var internships []model.Internship
	if err := s.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Find(&internships).Error; err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}
	return internships, nil
}

// ListByUser returns one user's internships, newest first, enriched with
// derived progress fields
func (s *InternshipService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.InternshipView, error) {
	var internships []model.Internship
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&internships).Error; err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}

	now := time.Now()
	views := make([]model.InternshipView, 0, len(internships))
	for i := range internships {
		views = append(views, BuildInternshipView(&internships[i], now))
	}
	return views, nil
}

// Dashboard aggregates a user's internships into status counts plus their
// most recent records
func (s *InternshipService) Dashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardStats, error) {
	views, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := model.DashboardStats{Total: len(views)}
	for _, v := range views {
		switch v.Status {
		case model.StatusActive:
			stats.Active++
		case model.StatusCompleted:
			stats.Completed++
		case model.StatusCancelled:
			stats.Cancelled++
		}
	}

	recent := views
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	stats.RecentActivity = recent

	return &stats, nil
}

// Eligibility reports whether userID may download the certificate for
// internshipID. It never returns an error result to the caller beyond
// storage failures; the outcome is always a structured answer.
func (s *InternshipService) Eligibility(ctx context.Context, userID, internshipID uuid.UUID) (*model.Eligibility, error) {
	var internship model.Internship
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", internshipID, userID).
		First(&internship).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &model.Eligibility{
				CanDownload: false,
				Reason:      "Internship not found or access denied",
			}, nil
		}
		return nil, fmt.Errorf("failed to check eligibility: %w", err)
	}

	if internship.Status != model.StatusCompleted {
		return &model.Eligibility{
			CanDownload: false,
			Reason:      "Certificate is only available for completed internships",
		}, nil
	}

	return &model.Eligibility{CanDownload: true}, nil
}

// BuildInternshipView enriches an internship with the read-time derived
// fields. Progress and days-left are only meaningful while ACTIVE.
func BuildInternshipView(internship *model.Internship, now time.Time) model.InternshipView {
	view := model.InternshipView{
		Internship:             *internship,
		Duration:               Duration(internship.StartDate, internship.EndDate),
		CanDownloadCertificate: internship.Status == model.StatusCompleted,
	}

	if internship.Status == model.StatusActive {
		daysLeft := DaysLeft(internship.EndDate, now)
		progress := Progress(internship.StartDate, internship.EndDate, now)
		view.DaysLeft = &daysLeft
		view.Progress = &progress
		view.IsOverdue = IsOverdue(internship.EndDate, now)
	}

	return view
}
