package services

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/internadmin/internship-api/config"
	"github.com/internadmin/internship-api/model"
)

// EmailService sends notification emails via SMTP. Delivery is best-effort:
// callers wrap sends in the notifier and never propagate failures.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// Attachment is a file attached to an outbound email
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewEmailService creates a new email service from config
func NewEmailService(env *config.EnviornmentVariable) *EmailService {
	host := env.SMTP_HOST
	if host == "" {
		host = "smtp.gmail.com"
	}
	from := env.SMTP_FROM
	if from == "" {
		from = "noreply@internship-program.example"
	}

	return &EmailService{
		host:     host,
		port:     env.SMTP_PORT,
		username: env.SMTP_USERNAME,
		password: env.SMTP_PASSWORD,
		from:     from,
	}
}

// IsConfigured checks if SMTP is properly configured
func (e *EmailService) IsConfigured() bool {
	return e.username != "" && e.password != ""
}

// SendAssignmentEmail notifies a user that an internship was assigned to them
func (e *EmailService) SendAssignmentEmail(user *model.User, internship *model.Internship) error {
	subject := fmt.Sprintf("New internship assigned: %s", internship.Title)
	body := e.buildEmailBody(user.DisplayName(),
		"A new internship has been assigned to you.",
		[][2]string{
			{"Title", internship.Title},
			{"Role", internship.Role},
			{"Start date", internship.StartDate.Format(certDateLayout)},
			{"End date", internship.EndDate.Format(certDateLayout)},
		},
		"Log in to your dashboard to see the details.")

	return e.sendEmail(user.Email, subject, body, nil)
}

// SendCompletionEmail congratulates the user and attaches their certificate
func (e *EmailService) SendCompletionEmail(user *model.User, internship *model.Internship, certificatePDF []byte) error {
	subject := fmt.Sprintf("Congratulations! %s completed", internship.Title)
	body := e.buildEmailBody(user.DisplayName(),
		"Congratulations on completing your internship! Your certificate is attached.",
		[][2]string{
			{"Title", internship.Title},
			{"Role", internship.Role},
			{"Certificate ID", CertificateID(internship.ID)},
		},
		"You can also download the certificate from your dashboard at any time.")

	var attachment *Attachment
	if len(certificatePDF) > 0 {
		attachment = &Attachment{
			Filename:    fmt.Sprintf("certificate-%s.pdf", CertificateID(internship.ID)),
			ContentType: "application/pdf",
			Data:        certificatePDF,
		}
	}

	return e.sendEmail(user.Email, subject, body, attachment)
}

// SendRemarkCreatedEmail notifies the admin inbox about a new remark
func (e *EmailService) SendRemarkCreatedEmail(adminEmail string, author *model.User, internship *model.Internship, remark *model.Remark) error {
	subject := fmt.Sprintf("New %s from %s", strings.ToLower(strings.ReplaceAll(remark.RequestType, "_", " ")), author.DisplayName())
	body := e.buildEmailBody("Admin",
		"A user submitted a new remark that needs triage.",
		[][2]string{
			{"From", author.DisplayName()},
			{"Internship", internship.Title},
			{"Type", remark.RequestType},
			{"Message", remark.Message},
		},
		"Respond from the admin remark queue.")

	return e.sendEmail(adminEmail, subject, body, nil)
}

// SendRemarkResponseEmail notifies the remark author about an admin response
func (e *EmailService) SendRemarkResponseEmail(author *model.User, remark *model.Remark) error {
	subject := "An admin responded to your remark"
	body := e.buildEmailBody(author.DisplayName(),
		"An administrator has responded to your remark.",
		[][2]string{
			{"Your message", remark.Message},
			{"Status", remark.Status},
			{"Response", remark.AdminResponse},
		},
		"Log in to your dashboard to see the full thread.")

	return e.sendEmail(author.Email, subject, body, nil)
}

// SendOverdueDigest sends the admin a summary of overdue active internships
func (e *EmailService) SendOverdueDigest(adminEmail string, overdue []model.Internship) error {
	subject := fmt.Sprintf("%d internship(s) past their end date", len(overdue))

	rows := make([][2]string, 0, len(overdue))
	for _, i := range overdue {
		rows = append(rows, [2]string{
			i.Title,
			fmt.Sprintf("ended %s", i.EndDate.Format(certDateLayout)),
		})
	}

	body := e.buildEmailBody("Admin",
		"The following internships are still ACTIVE but past their end date.",
		rows,
		"Mark them completed or cancelled from the admin panel.")

	return e.sendEmail(adminEmail, subject, body, nil)
}

// buildEmailBody creates a simple branded HTML email body
func (e *EmailService) buildEmailBody(recipientName, intro string, rows [][2]string, outro string) string {
	var detail strings.Builder
	for _, row := range rows {
		detail.WriteString(fmt.Sprintf(
			`<tr><td style="padding:6px 12px;color:#666;">%s</td><td style="padding:6px 12px;">%s</td></tr>`,
			htmlEscape(row[0]), htmlEscape(row[1])))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:-apple-system,'Segoe UI',Roboto,sans-serif;color:#333;max-width:600px;margin:0 auto;padding:20px;">
    <div style="background:#ffffff;border-radius:8px;padding:32px;border:1px solid #e5e5e5;">
        <h1 style="color:#1d4e89;font-size:22px;margin-top:0;">Internship Program</h1>
        <p>Hi %s,</p>
        <p>%s</p>
        <table style="border-collapse:collapse;background:#f8f9fb;border-radius:6px;width:100%%;">%s</table>
        <p>%s</p>
        <p style="color:#999;font-size:12px;margin-bottom:0;">This is an automated message. Please do not reply.</p>
    </div>
</body>
</html>`, htmlEscape(recipientName), htmlEscape(intro), detail.String(), htmlEscape(outro))
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// sendEmail sends an email using SMTP with TLS, optionally with one
// attachment (multipart/mixed)
func (e *EmailService) sendEmail(to, subject, htmlBody string, attachment *Attachment) error {
	if !e.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}

	message := e.buildMessage(to, subject, htmlBody, attachment)

	// Connect to the SMTP server
	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         e.host,
	}

	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	if err := conn.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err := conn.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := conn.Mail(e.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err := w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	conn.Quit()
	return nil
}

// buildMessage assembles the raw RFC 822 message, using multipart/mixed
// when an attachment is present
func (e *EmailService) buildMessage(to, subject, htmlBody string, attachment *Attachment) string {
	var message strings.Builder

	message.WriteString(fmt.Sprintf("From: Internship Program <%s>\r\n", e.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")

	if attachment == nil {
		message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		message.WriteString("\r\n")
		message.WriteString(htmlBody)
		return message.String()
	}

	boundary := "internship-api-boundary-7f3a9c"
	message.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n", boundary))
	message.WriteString("\r\n")

	// HTML part
	message.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(htmlBody)
	message.WriteString("\r\n")

	// Attachment part, base64 encoded in 76-char lines
	message.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	message.WriteString(fmt.Sprintf("Content-Type: %s\r\n", attachment.ContentType))
	message.WriteString("Content-Transfer-Encoding: base64\r\n")
	message.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n", attachment.Filename))
	message.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString(attachment.Data)
	for len(encoded) > 76 {
		message.WriteString(encoded[:76])
		message.WriteString("\r\n")
		encoded = encoded[76:]
	}
	message.WriteString(encoded)
	message.WriteString("\r\n")

	message.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return message.String()
}
