package ledger

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. It is the only
// error kind this package produces: it always means the caller can re-prompt
// for corrected input, never that internal state is broken.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
