// Package apperr holds the sentinel errors shared by the domain packages.
// Domain packages wrap these so the HTTP layer can translate any failure with
// errors.Is without knowing which package produced it.
package apperr

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrUnavailable       = errors.New("unavailable")
)

// FieldError reports a missing or malformed input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// Required is shorthand for the most common FieldError.
func Required(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}
