package pdfvalidation

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ValidationResult contains the result of PDF validation
type ValidationResult struct {
	Valid     bool
	PageCount int
	Error     string
}

// ValidatePDFBytes checks that generated certificate bytes are a parseable
// PDF with at least one page. The rasterizer can return truncated output
// when the browser dies mid-export; this catches it before the bytes are
// attached to an email or served to a client.
func ValidatePDFBytes(data []byte) (*ValidationResult, error) {
	result := &ValidationResult{}

	if len(data) < 5 || !bytes.HasPrefix(data, []byte("%PDF-")) {
		result.Error = "Output is not a PDF document"
		return result, nil
	}

	reader, err := parsePDF(data)
	if err != nil {
		result.Error = fmt.Sprintf("Failed to parse PDF: %v", err)
		return result, nil
	}

	pageCount := reader.NumPage()
	if pageCount < 1 {
		result.Error = "PDF contains no pages"
		return result, nil
	}

	result.Valid = true
	result.PageCount = pageCount
	return result, nil
}

// parsePDF wraps the reader construction; the parser panics on some
// malformed cross-reference tables instead of returning an error.
func parsePDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}
