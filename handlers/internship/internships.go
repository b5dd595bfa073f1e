package internship

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/internadmin/internship-api/services"
	"github.com/internadmin/internship-api/utils/middleware"
	"github.com/internadmin/internship-api/utils/response"
	"github.com/internadmin/internship-api/utils/validation"
	"gorm.io/gorm"
)

// InternshipHandler handles internship lifecycle requests
type InternshipHandler struct {
	db           *gorm.DB
	validator    *validation.Validator
	internships  *services.InternshipService
	remarks      *services.RemarkService
	certificates *services.CertificateService
	rasterizer   *services.Rasterizer
}

// NewInternshipHandler creates a new internship handler
func NewInternshipHandler(
	db *gorm.DB,
	internships *services.InternshipService,
	remarks *services.RemarkService,
	certificates *services.CertificateService,
	rasterizer *services.Rasterizer,
) *InternshipHandler {
	return &InternshipHandler{
		db:           db,
		validator:    validation.NewValidator(),
		internships:  internships,
		remarks:      remarks,
		certificates: certificates,
		rasterizer:   rasterizer,
	}
}

// CreateInternshipRequest represents the request body for creating an internship
type CreateInternshipRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Role        string `json:"role" validate:"required,min=2,max=255"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
}

// UpdateInternshipRequest is a partial patch; omitted fields are untouched
type UpdateInternshipRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Role        *string `json:"role" validate:"omitempty,min=2,max=255"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
}

// parseDate accepts both date-only and RFC3339 timestamps
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseIDParam parses a uuid path parameter
func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// serviceError maps service sentinel errors onto HTTP responses
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidRange):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccessDenied):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrRendering):
		return response.InternalServerError(c, "Certificate generation failed. Please try again.")
	default:
		return response.InternalServerError(c, "")
	}
}

// CreateInternship handles POST /api/v1/internships (admin)
func (h *InternshipHandler) CreateInternship(c *fiber.Ctx) error {
	var req CreateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return response.BadRequest(c, "Invalid start date")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return response.BadRequest(c, "Invalid end date")
	}

	internship, err := h.internships.Create(c.Context(), services.CreateInternshipInput{
		UserID:      userID,
		Title:       validation.SanitizeString(req.Title),
		Role:        validation.SanitizeString(req.Role),
		StartDate:   startDate,
		EndDate:     endDate,
		Description: validation.SanitizeString(req.Description),
		Status:      req.Status,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, internship)
}

// ListInternships handles GET /api/v1/internships (admin)
func (h *InternshipHandler) ListInternships(c *fiber.Ctx) error {
	internships, err := h.internships.ListAll(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, internships)
}

// GetInternship handles GET /api/v1/internships/:id
func (h *InternshipHandler) GetInternship(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	internship, err := h.internships.GetByID(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, internship)
}

// UpdateInternship handles PATCH /api/v1/internships/:id (admin)
func (h *InternshipHandler) UpdateInternship(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	var req UpdateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	patch := services.UpdateInternshipInput{
		Status: req.Status,
	}
	if req.Title != nil {
		title := validation.SanitizeString(*req.Title)
		patch.Title = &title
	}
	if req.Role != nil {
		role := validation.SanitizeString(*req.Role)
		patch.Role = &role
	}
	if req.Description != nil {
		description := validation.SanitizeString(*req.Description)
		patch.Description = &description
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return response.BadRequest(c, "Invalid start date")
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return response.BadRequest(c, "Invalid end date")
		}
		patch.EndDate = &endDate
	}

	internship, err := h.internships.Update(c.Context(), id, patch)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, internship)
}

// DeleteInternship handles DELETE /api/v1/internships/:id (admin)
func (h *InternshipHandler) DeleteInternship(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	if err := h.internships.Delete(c.Context(), id); err != nil {
		return serviceError(c, err)
	}
	return response.SuccessWithMessage(c, "Internship deleted", nil)
}

// GetDashboard handles GET /api/v1/internships/dashboard
func (h *InternshipHandler) GetDashboard(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	stats, err := h.internships.Dashboard(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, stats)
}

// GetMyInternships handles GET /api/v1/internships/my-internships
func (h *InternshipHandler) GetMyInternships(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	views, err := h.internships.ListByUser(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, views)
}

// GetInternshipDetails handles GET /api/v1/internships/my-internships/:id/details
func (h *InternshipHandler) GetInternshipDetails(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	view, err := h.internships.GetView(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	// Detail view is scoped to the caller's own internships unless admin
	user, _ := middleware.GetUser(c)
	if view.UserID != userID && (user == nil || !user.IsAdmin()) {
		return response.NotFound(c, "Internship not found")
	}

	return response.Success(c, view)
}

// GetUserInternships handles GET /api/v1/internships/user/:userId
func (h *InternshipHandler) GetUserInternships(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	views, err := h.internships.ListByUser(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, views)
}

// GetEligibility handles GET /api/v1/internships/:id/certificate-eligibility
func (h *InternshipHandler) GetEligibility(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	eligibility, err := h.internships.Eligibility(c.Context(), userID, id)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, eligibility)
}
