package services

import (
	"bytes"
	"fmt"
	"html/template"
)

// Certificate themes. One parameterized template covers every brand
// revision; themes only swap colors, fonts and the border treatment.
const (
	ThemeClassic = "classic"
	ThemeModern  = "modern"
)

// certTheme holds the visual knobs that differ between brand revisions.
// Values are trusted constants, typed template.CSS so the CSS sanitizer
// does not reject multi-token declarations or quoted font names.
type certTheme struct {
	Accent     template.CSS
	Background template.CSS
	BodyFont   template.CSS
	TitleFont  template.CSS
	BorderCSS  template.CSS
}

var certThemes = map[string]certTheme{
	ThemeClassic: {
		Accent:     "#8a6d1d",
		Background: "#fffdf6",
		BodyFont:   "Georgia, 'Times New Roman', serif",
		TitleFont:  "'Playfair Display', Georgia, serif",
		BorderCSS:  "12px double #8a6d1d",
	},
	ThemeModern: {
		Accent:     "#1d4e89",
		Background: "#ffffff",
		BodyFont:   "-apple-system, 'Segoe UI', Roboto, sans-serif",
		TitleFont:  "'Segoe UI', Roboto, sans-serif",
		BorderCSS:  "4px solid #1d4e89",
	},
}

// certTemplate is the single certificate layout. All dynamic fields go
// through html/template's contextual escaping, so user-controlled values
// (name, title, role) cannot inject markup.
var certTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Certificate of Completion</title>
<style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    html, body {
        width: 1123px;
        height: 794px;
        background: {{.Theme.Background}};
        font-family: {{.Theme.BodyFont}};
        color: #2b2b2b;
    }
    .certificate {
        width: 1123px;
        height: 794px;
        padding: 48px 72px;
        border: {{.Theme.BorderCSS}};
        display: flex;
        flex-direction: column;
        align-items: center;
        text-align: center;
    }
    .brand {
        font-size: 22px;
        letter-spacing: 6px;
        text-transform: uppercase;
        color: {{.Theme.Accent}};
        margin-bottom: 28px;
    }
    h1 {
        font-family: {{.Theme.TitleFont}};
        font-size: 52px;
        font-weight: 600;
        margin-bottom: 10px;
    }
    .subtitle { font-size: 18px; color: #666; margin-bottom: 36px; }
    .recipient {
        font-family: {{.Theme.TitleFont}};
        font-size: 44px;
        color: {{.Theme.Accent}};
        border-bottom: 2px solid {{.Theme.Accent}};
        padding: 0 40px 8px;
        margin-bottom: 32px;
    }
    .body-text { font-size: 20px; line-height: 1.7; max-width: 760px; }
    .body-text strong { color: {{.Theme.Accent}}; }
    .meta {
        margin-top: auto;
        display: flex;
        justify-content: space-between;
        width: 100%;
        align-items: flex-end;
    }
    .signature { text-align: center; min-width: 220px; }
    .signature .line { border-top: 1px solid #444; margin-bottom: 6px; }
    .signature .who { font-size: 14px; color: #555; }
    .issue { font-size: 14px; color: #555; text-align: center; }
    .cert-id {
        font-size: 13px;
        letter-spacing: 2px;
        color: #888;
        margin-top: 6px;
    }
</style>
</head>
<body>
<div class="certificate">
    <div class="brand">Internship Program</div>
    <h1>Certificate of Completion</h1>
    <div class="subtitle">This certificate is proudly presented to</div>
    <div class="recipient">{{.Data.UserName}}</div>
    <div class="body-text">
        for successfully completing the internship
        <strong>{{.Data.InternshipTitle}}</strong>
        in the role of <strong>{{.Data.Role}}</strong>,
        from {{.Data.StartDate}} to {{.Data.EndDate}}
        ({{.Data.Duration}}).
    </div>
    <div class="meta">
        <div class="signature">
            <div class="line"></div>
            <div class="who">Program Director</div>
        </div>
        <div class="issue">
            Issued on {{.Data.IssueDate}}
            <div class="cert-id">{{.Data.CertificateID}}</div>
        </div>
        <div class="signature">
            <div class="line"></div>
            <div class="who">Head of Internships</div>
        </div>
    </div>
</div>
</body>
</html>
`))

// RenderCertificateHTML renders the certificate document for the given data
// and theme. Output is deterministic for identical input. An unknown theme
// falls back to the classic layout.
func RenderCertificateHTML(data *CertificateData, theme string) (string, error) {
	t, ok := certThemes[theme]
	if !ok {
		t = certThemes[ThemeClassic]
	}

	var buf bytes.Buffer
	err := certTemplate.Execute(&buf, struct {
		Data  *CertificateData
		Theme certTheme
	}{Data: data, Theme: t})
	if err != nil {
		return "", fmt.Errorf("failed to render certificate template: %w", err)
	}

	return buf.String(), nil
}
