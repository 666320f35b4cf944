package agreement

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: no live agreement with that id.
	ErrNotFound = errors.New("agreement not found")
	// ErrConflict: a conditional update matched no row because someone else
	// got there first (lost claim race, stale expected status).
	ErrConflict = errors.New("agreement state changed concurrently")
	// ErrInvalidState: the operation is not legal from the current status.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrNotAuthorized: the caller is not the party this operation belongs to.
	ErrNotAuthorized = errors.New("caller is not a party to this operation")
)

// ValidationError reports malformed input detected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
