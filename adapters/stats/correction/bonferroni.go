package correction

import (
	"fmt"

	"hypokit/domain/core"
)

// adjustBonferroni computes min(1, p·m) for each p-value.
func adjustBonferroni(pValues []float64) ([]float64, error) {
	if err := requireNonEmpty(pValues); err != nil {
		return nil, err
	}

	size := float64(len(pValues))
	result := make([]float64, len(pValues))
	for i, p := range pValues {
		b := p * size
		switch {
		case b >= 1:
			result[i] = 1
		case b >= 0:
			result[i] = b
		default:
			return nil, fmt.Errorf("%w: array[%d] scaled to %v, outside [0, 1)", core.ErrOutOfRange, i, b)
		}
	}
	return result, nil
}

// adjustHolm is the step-down Bonferroni: sort ascending, weight rank i by
// (m-i), then enforce monotonicity with a running maximum.
func adjustHolm(pValues []float64) ([]float64, error) {
	if err := requireNonEmpty(pValues); err != nil {
		return nil, err
	}

	size := len(pValues)
	o := order(pValues, false)
	weighted := make([]float64, size)
	for i, idx := range o {
		weighted[i] = float64(size-i) * pValues[idx]
	}

	cummax(weighted)
	clampOne(weighted)
	return unpermute(weighted, o), nil
}
