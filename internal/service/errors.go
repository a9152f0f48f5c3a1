package service

import (
	"errors"
	"fmt"
)

// ErrTimeConflict is returned when a proposed booking overlaps a recurring
// class or an approved booking. Slot occupancy itself is never an error;
// only the attempt to book an occupied range is.
var ErrTimeConflict = errors.New("time range conflicts with an existing class or booking")

// ErrCancelApproved is returned when a caller tries to cancel a booking that
// has already been approved
var ErrCancelApproved = errors.New("approved bookings cannot be cancelled")

// ErrNotOwner is returned when a caller tries to cancel another user's booking
var ErrNotOwner = errors.New("booking belongs to another user")

// ValidationError describes a locally recoverable input problem: an empty
// purpose, a malformed or inverted time range, a bad date. It is never used
// for transport faults.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
