package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrUnauthorized is returned for bad credentials or a missing/invalid token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidPeriod indicates a year/month pair outside the calendar (month not in 1..12).
	ErrInvalidPeriod = errors.New("invalid_period")
	// ErrOverflow is returned when decimal arithmetic exceeds the supported precision,
	// including sums that could only be represented by rounding.
	ErrOverflow = errors.New("overflow")
)
