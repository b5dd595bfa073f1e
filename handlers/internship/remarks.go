package internship

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/internadmin/internship-api/utils/middleware"
	"github.com/internadmin/internship-api/utils/response"
	"github.com/internadmin/internship-api/utils/validation"
)

// CreateRemarkRequest represents the request body for creating a remark
type CreateRemarkRequest struct {
	InternshipID string `json:"internship_id" validate:"required,uuid"`
	Message      string `json:"message" validate:"required,min=3,max=2000"`
	RequestType  string `json:"request_type" validate:"omitempty,oneof=CHANGE_REQUEST GENERAL_REMARK EXTENSION_REQUEST"`
}

// RespondRemarkRequest represents the admin response body
type RespondRemarkRequest struct {
	AdminResponse string `json:"admin_response" validate:"required,min=1,max=2000"`
	Status        string `json:"status" validate:"required,oneof=REVIEWED RESOLVED"`
}

// CreateRemark handles POST /api/v1/internships/remarks
func (h *InternshipHandler) CreateRemark(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req CreateRemarkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	internshipID, err := uuid.Parse(req.InternshipID)
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	remark, err := h.remarks.Create(c.Context(), userID, internshipID,
		validation.SanitizeString(req.Message), req.RequestType)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, remark)
}

// GetInternshipRemarks handles GET /api/v1/internships/:id/remarks (owner)
func (h *InternshipHandler) GetInternshipRemarks(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	internshipID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	remarks, err := h.remarks.ListForInternship(c.Context(), userID, internshipID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, remarks)
}

// GetMyRemarks handles GET /api/v1/internships/my-remarks
func (h *InternshipHandler) GetMyRemarks(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	remarks, err := h.remarks.ListAllForUser(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, remarks)
}

// ListAllRemarks handles GET /api/v1/internships/admin/remarks (admin)
func (h *InternshipHandler) ListAllRemarks(c *fiber.Ctx) error {
	remarks, err := h.remarks.ListAll(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, remarks)
}

// RespondToRemark handles PATCH /api/v1/internships/admin/remarks/:remarkId (admin)
func (h *InternshipHandler) RespondToRemark(c *fiber.Ctx) error {
	remarkID, err := parseIDParam(c, "remarkId")
	if err != nil {
		return response.BadRequest(c, "Invalid remark id")
	}

	var req RespondRemarkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	remark, err := h.remarks.Respond(c.Context(), remarkID,
		validation.SanitizeString(req.AdminResponse), req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, remark)
}
