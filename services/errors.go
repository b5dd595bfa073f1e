package services

import "errors"

// Sentinel errors shared across the internship, remark and certificate
// services. Handlers map these onto HTTP statuses.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidRange  = errors.New("start date must be before end date")
	ErrInvalidStatus = errors.New("invalid status")
	ErrAccessDenied  = errors.New("access denied")
	ErrRendering     = errors.New("certificate rendering failed")
)
