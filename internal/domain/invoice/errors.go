package invoice

import (
	ierr "github.com/flexprice/propbill/internal/errors"
)

// NewValidationError reports an invalid invoice field
func NewValidationError(field, message string) error {
	return ierr.NewErrorf("validation failed for field %s: %s", field, message).
		WithHint(message).
		WithReportableDetails(map[string]any{
			"field": field,
		}).
		Mark(ierr.ErrValidation)
}
