package internship

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/internadmin/internship-api/model"
	"github.com/internadmin/internship-api/services"
	"github.com/internadmin/internship-api/utils/middleware"
	"github.com/internadmin/internship-api/utils/pdfvalidation"
	"github.com/internadmin/internship-api/utils/response"
)

// GetCertificateData handles GET /api/v1/internships/:id/certificate-data.
// Returns the assembled data record; performs no ownership check.
func (h *InternshipHandler) GetCertificateData(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid internship id")
	}

	data, err := h.certificates.AssembleData(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, data)
}

// renderCertificateHTML assembles and renders the certificate document for
// the requested theme
func (h *InternshipHandler) renderCertificateHTML(c *fiber.Ctx) (string, *services.CertificateData, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return "", nil, response.BadRequest(c, "Invalid internship id")
	}

	data, err := h.certificates.AssembleData(c.Context(), id)
	if err != nil {
		return "", nil, serviceError(c, err)
	}

	theme := c.Query("theme", services.ThemeClassic)
	htmlDoc, err := services.RenderCertificateHTML(data, theme)
	if err != nil {
		return "", nil, serviceError(c, err)
	}

	return htmlDoc, data, nil
}

// GetCertificateTemplate handles GET /:id/certificate-template, raw HTML inline
func (h *InternshipHandler) GetCertificateTemplate(c *fiber.Ctx) error {
	htmlDoc, _, err := h.renderCertificateHTML(c)
	if htmlDoc == "" {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(htmlDoc)
}

// GetCertificateDownload handles GET /:id/certificate-download, HTML as attachment
func (h *InternshipHandler) GetCertificateDownload(c *fiber.Ctx) error {
	htmlDoc, data, err := h.renderCertificateHTML(c)
	if htmlDoc == "" {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", data.CertificateID+".html"))
	return c.SendString(htmlDoc)
}

// GetCertificatePreview handles GET /:id/certificate-preview, HTML embeddable
// in an iframe by the admin UI
func (h *InternshipHandler) GetCertificatePreview(c *fiber.Ctx) error {
	htmlDoc, _, err := h.renderCertificateHTML(c)
	if htmlDoc == "" {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set("X-Frame-Options", "SAMEORIGIN")
	c.Set(fiber.HeaderContentSecurityPolicy, "frame-ancestors 'self'")
	return c.SendString(htmlDoc)
}

// authorizeDownload enforces the binary download rules: owner or admin
// (403 otherwise), internship COMPLETED (400 otherwise)
func (h *InternshipHandler) authorizeDownload(c *fiber.Ctx) (*model.Internship, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, response.BadRequest(c, "Invalid internship id")
	}

	internship, err := h.internships.GetByID(c.Context(), id)
	if err != nil {
		return nil, serviceError(c, err)
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return nil, response.Unauthorized(c, "")
	}
	if internship.UserID != user.ID && !user.IsAdmin() {
		return nil, response.Forbidden(c, "You may only download your own certificates")
	}

	if internship.Status != model.StatusCompleted {
		return nil, response.BadRequest(c, "Certificate is only available for completed internships")
	}

	return internship, nil
}

// renderForDownload builds the certificate document from an already
// authorized internship, so the binary routes do not re-fetch the record
func (h *InternshipHandler) renderForDownload(c *fiber.Ctx, internship *model.Internship) (string, *services.CertificateData, error) {
	data := services.AssembleCertificateData(internship, time.Now())
	theme := c.Query("theme", services.ThemeClassic)

	htmlDoc, err := services.RenderCertificateHTML(data, theme)
	if err != nil {
		return "", nil, serviceError(c, err)
	}
	return htmlDoc, data, nil
}

// GetCertificatePDF handles GET /:id/certificate-pdf (owner or admin)
func (h *InternshipHandler) GetCertificatePDF(c *fiber.Ctx) error {
	internship, err := h.authorizeDownload(c)
	if internship == nil {
		return err
	}

	htmlDoc, data, err := h.renderForDownload(c, internship)
	if htmlDoc == "" {
		return err
	}

	pdfBytes, err := h.rasterizer.ToPDF(c.Context(), htmlDoc)
	if err != nil {
		return serviceError(c, err)
	}

	// Guard against truncated browser output before serving
	result, err := pdfvalidation.ValidatePDFBytes(pdfBytes)
	if err != nil || !result.Valid {
		return response.InternalServerError(c, "Certificate generation failed. Please try again.")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", data.CertificateID+".pdf"))
	return c.Send(pdfBytes)
}

// GetCertificatePNG handles GET /:id/certificate-png (owner or admin)
func (h *InternshipHandler) GetCertificatePNG(c *fiber.Ctx) error {
	internship, err := h.authorizeDownload(c)
	if internship == nil {
		return err
	}

	htmlDoc, data, err := h.renderForDownload(c, internship)
	if htmlDoc == "" {
		return err
	}

	pngBytes, err := h.rasterizer.ToPNG(c.Context(), htmlDoc)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", data.CertificateID+".png"))
	return c.Send(pngBytes)
}
