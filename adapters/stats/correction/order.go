package correction

import (
	"math"
	"slices"
)

// compareP orders p-values ascending with NaN last, so a missing value can
// never look more significant than a real one.
func compareP(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// order returns the permutation that sorts values. Ties keep their input
// order in both directions.
func order(values []float64, decreasing bool) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if decreasing {
			return compareP(values[b], values[a])
		}
		return compareP(values[a], values[b])
	})
	return idx
}

// unpermute writes sorted[k] back to position o[k].
func unpermute(sorted []float64, o []int) []float64 {
	out := make([]float64, len(sorted))
	for k, pos := range o {
		out[pos] = sorted[k]
	}
	return out
}

// cummax replaces values with their running maximum, in place.
func cummax(values []float64) {
	if len(values) == 0 {
		return
	}
	acc := values[0]
	for i, v := range values {
		if v > acc {
			acc = v
		}
		values[i] = acc
	}
}

// cummin replaces values with their running minimum, in place.
func cummin(values []float64) {
	if len(values) == 0 {
		return
	}
	acc := values[0]
	for i, v := range values {
		if v < acc {
			acc = v
		}
		values[i] = acc
	}
}

// clampOne caps every value at 1, in place.
func clampOne(values []float64) {
	for i, v := range values {
		values[i] = math.Min(v, 1.0)
	}
}
