package correction

import (
	"hypokit/domain/core"
)

// stepUp is the shared scaffold of Hochberg, Benjamini-Hochberg and
// Benjamini-Yekutieli. The p-values are visited from largest to smallest, so
// a running minimum over that order is the step-up monotonicity constraint.
// weight receives the 0-based position in the descending order.
func stepUp(pValues []float64, weight func(i, size int) float64) ([]float64, error) {
	if err := requireNonEmpty(pValues); err != nil {
		return nil, err
	}
	for i, p := range pValues {
		if !(p >= 0 && p <= 1) {
			return nil, core.NewOutOfRangeError(i, p)
		}
	}

	size := len(pValues)
	o := order(pValues, true)
	weighted := make([]float64, size)
	for i, idx := range o {
		weighted[i] = weight(i, size) * pValues[idx]
	}

	cummin(weighted)
	clampOne(weighted)
	return unpermute(weighted, o), nil
}

// harmonic returns 1 + 1/2 + ... + 1/n.
func harmonic(n int) float64 {
	q := 0.0
	for i := 1; i <= n; i++ {
		q += 1.0 / float64(i)
	}
	return q
}

func adjustHochberg(pValues []float64) ([]float64, error) {
	return stepUp(pValues, func(i, _ int) float64 {
		return float64(i + 1)
	})
}

func adjustBenjaminiHochberg(pValues []float64) ([]float64, error) {
	return stepUp(pValues, func(i, size int) float64 {
		return float64(size) / float64(size-i)
	})
}

func adjustBenjaminiYekutieli(pValues []float64) ([]float64, error) {
	q := harmonic(len(pValues))
	return stepUp(pValues, func(i, size int) float64 {
		return q * (float64(size) / float64(size-i))
	})
}
