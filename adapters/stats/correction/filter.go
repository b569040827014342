package correction

import (
	"slices"
)

// HolmFilter returns the items that survive the Holm-Bonferroni step-down
// test at family-wise error rate fwer, sorted from lowest to highest p-value.
//
// Items are ranked by pValue; the item at rank i (0-based) is accepted while
// p_i <= fwer/(m-i), and scanning stops at the first rejection. The input
// slice is left untouched.
func HolmFilter[T any](items []T, pValue func(T) float64, fwer float64) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return compareP(pValue(a), pValue(b))
	})

	m := len(sorted)
	accepted := 0
	for ; accepted < m; accepted++ {
		if !(pValue(sorted[accepted]) <= fwer/float64(m-accepted)) {
			break
		}
	}
	return sorted[:accepted:accepted]
}

// HolmFilterPValues is HolmFilter over bare p-values.
func HolmFilterPValues(pValues []float64, fwer float64) []float64 {
	return HolmFilter(pValues, func(p float64) float64 { return p }, fwer)
}
