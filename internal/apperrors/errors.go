package apperrors

import "errors"

// Sentinel errors for the caller-facing failure taxonomy. Handlers map these
// to HTTP statuses; everything else is treated as an internal error.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)
