package services

import (
	"errors"
	"fmt"

	"delivery_ledger/internal/repository"
)

var (
	ErrInvalidCourierName = errors.New("courier name must be at least 2 characters")
	ErrCourierExists      = errors.New("courier already exists")
	ErrCourierNotFound    = errors.New("courier not found")
	ErrMissingDate        = errors.New("date is required")
	ErrNegativeCount      = errors.New("parcel counts cannot be negative")
	ErrNegativeAmount     = errors.New("amounts cannot be negative")
	ErrCODExceedsExpected = errors.New("actual COD cannot exceed expected COD")
	ErrUnknownArea        = errors.New("unknown area")
	ErrDuplicateArea      = errors.New("area listed more than once")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
	ErrInvalidDescription = errors.New("description must be at least 3 characters")
	ErrInvalidRate        = errors.New("rates cannot be negative")
	ErrRVPAreaInactive    = errors.New("the RVP billing area cannot be deactivated")
	ErrSessionNotFound    = errors.New("session not found")
	ErrExportNotFound     = errors.New("export not found or expired")
	ErrNoRecipient        = errors.New("no recipient configured")
	ErrNotFound           = repository.ErrNotFound
)

// ValidationError carries a sentinel plus the offending detail. Callers match
// the sentinel with errors.Is.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, format string, args ...interface{}) error {
	return &ValidationError{Err: err, Details: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err was rejected by input validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
