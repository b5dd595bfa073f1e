package pdfvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePDFBytes_NotAPDF(t *testing.T) {
	result, err := ValidatePDFBytes([]byte("<html>not a pdf</html>"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Output is not a PDF document", result.Error)
}

func TestValidatePDFBytes_Empty(t *testing.T) {
	result, err := ValidatePDFBytes(nil)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidatePDFBytes_TruncatedHeader(t *testing.T) {
	// Correct magic bytes but no document body behind them
	result, err := ValidatePDFBytes([]byte("%PDF-1.7\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Error)
}
