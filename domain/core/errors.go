package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input shape errors
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrOutOfRange        = errors.New("value out of range")
	ErrInsufficientData  = errors.New("insufficient data for analysis")

	// Numeric errors
	ErrDegenerate = errors.New("degenerate input")

	// Lookup errors
	ErrNotFound         = errors.New("resource not found")
	ErrVariableNotFound = fmt.Errorf("%w: variable", ErrNotFound)
	ErrGroupNotFound    = fmt.Errorf("%w: group", ErrNotFound)
)

// Error constructors with context
func NewDimensionMismatchError(got, want int) error {
	return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, got, want)
}

func NewOutOfRangeError(index int, value float64) error {
	return fmt.Errorf("%w: array[%d] = %v is outside [0, 1]", ErrOutOfRange, index, value)
}

func NewInvalidArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, field, reason)
}

func NewInsufficientDataError(what string, got, need int) error {
	return fmt.Errorf("%w: %s has %d observations, need at least %d", ErrInsufficientData, what, got, need)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the computation itself.
func IsInputError(err error) bool {
	return errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNotFound)
}

// IsNumericError reports whether err came from a range or degeneracy check.
func IsNumericError(err error) bool {
	return errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrDegenerate)
}
