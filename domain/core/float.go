package core

import (
	"fmt"
	"math"
)

// FiniteOrNil returns nil for NaN and infinities so JSON renders them as null
func FiniteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// RequireFinite fails with ErrInvalidArgument on the first NaN or infinity in values.
func RequireFinite(field string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewInvalidArgumentError(field, fmt.Sprintf("non-finite value %v at index %d", v, i))
		}
	}
	return nil
}
