package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func sampleCertData() *CertificateData {
	return &CertificateData{
		UserName:        "Jordan Blake",
		InternshipTitle: "Backend Engineering Internship",
		Role:            "Software Engineer Intern",
		StartDate:       "January 1, 2024",
		EndDate:         "March 1, 2024",
		Duration:        "2 months",
		IssueDate:       "March 1, 2024",
		CertificateID:   "CERT-1A2B3C4D",
	}
}

func TestRenderCertificateHTMLContainsFields(t *testing.T) {
	data := sampleCertData()

	out, err := RenderCertificateHTML(data, ThemeClassic)
	require.NoError(t, err)

	for _, want := range []string{
		data.UserName, data.InternshipTitle, data.Role,
		data.StartDate, data.EndDate, data.Duration,
		data.IssueDate, data.CertificateID,
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderCertificateHTMLDeterministic(t *testing.T) {
	data := sampleCertData()

	first, err := RenderCertificateHTML(data, ThemeModern)
	require.NoError(t, err)
	second, err := RenderCertificateHTML(data, ThemeModern)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderCertificateHTMLThemes(t *testing.T) {
	data := sampleCertData()

	classic, err := RenderCertificateHTML(data, ThemeClassic)
	require.NoError(t, err)
	modern, err := RenderCertificateHTML(data, ThemeModern)
	require.NoError(t, err)
	unknown, err := RenderCertificateHTML(data, "retro")
	require.NoError(t, err)

	assert.NotEqual(t, classic, modern)
	// Unknown theme falls back to classic
	assert.Equal(t, classic, unknown)
}

func TestRenderCertificateHTMLEscapesInjection(t *testing.T) {
	data := sampleCertData()
	data.UserName = "<script>alert(1)</script>"
	data.InternshipTitle = `<img src=x onerror="alert(2)">`
	data.Role = "</div><b>bold</b>"

	out, err := RenderCertificateHTML(data, ThemeClassic)
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	// Walk the parsed tree: the injected markup must not become elements
	var walk func(*html.Node)
	var textContent strings.Builder
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			assert.NotEqual(t, "script", n.Data, "user input became a script element")
			assert.NotEqual(t, "img", n.Data, "user input became an img element")
			assert.NotEqual(t, "b", n.Data, "user input became a b element")
		}
		if n.Type == html.TextNode {
			textContent.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	// The raw payload survives as inert text
	assert.Contains(t, textContent.String(), "<script>alert(1)</script>")
}
