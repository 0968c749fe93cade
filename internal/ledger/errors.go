package ledger

import (
	"errors"
	"fmt"

	"barangay/internal/apperr"
)

var (
	ErrNotFound            = fmt.Errorf("document request %w", apperr.ErrNotFound)
	ErrInvalidTransition   = apperr.ErrInvalidTransition
	ErrForbidden           = apperr.ErrForbidden
	ErrUnknownDocumentType = &apperr.FieldError{Field: "type", Reason: "is not a known document type"}
	ErrDuplicateReference  = fmt.Errorf("reference number %w", apperr.ErrConflict)
	ErrDocumentUnavailable = errors.New("document is not available for download")
)

func invalidTransition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}
