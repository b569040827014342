// Package ranking assigns average ranks to samples with ties.
package ranking

import (
	"cmp"
	"slices"
)

// Midranks converts values to 1-based ranks, giving tied values the mean of
// the ranks they span. The input is not reordered.
func Midranks(data []float64) []float64 {
	ranks, _ := MidranksWithTies(data)
	return ranks
}

// MidranksWithTies is Midranks that also reports the size of every run of
// tied values (runs of length one are omitted).
func MidranksWithTies(data []float64) ([]float64, []int) {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(data[a], data[b])
	})

	ranks := make([]float64, n)
	var ties []int
	for i := 0; i < n; {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		avg := float64(i+1+j) / 2.0
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if j-i > 1 {
			ties = append(ties, j-i)
		}
		i = j
	}
	return ranks, ties
}

// TieCorrection returns Σ(t³ - t) over the tie runs.
func TieCorrection(ties []int) float64 {
	sum := 0.0
	for _, t := range ties {
		ft := float64(t)
		sum += ft*ft*ft - ft
	}
	return sum
}
