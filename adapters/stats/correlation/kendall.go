package correlation

import (
	"cmp"
	"math"
	"slices"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
)

// KendallResult holds Kendall's tau-b with its normal-approximation
// significance.
type KendallResult struct {
	Tau    float64 `json:"tau"`
	ZScore float64 `json:"z_score"`
	PValue float64 `json:"p_value"`
}

type obs struct {
	x, y float64
}

// tieStats accumulates the per-axis tie terms of the tau-b variance.
type tieStats struct {
	pairs int64 // Σ t(t-1)/2
	v1    int64 // Σ t(t-1)
	v2    int64 // Σ t(t-1)(t-2)
	vt    int64 // Σ t(t-1)(2t+5)
}

func (s *tieStats) closeRun(t int64) {
	s.pairs += gauss(t - 1)
	s.v1 += t * (t - 1)
	s.v2 += t * (t - 1) * (t - 2)
	s.vt += t * (t - 1) * (2*t + 5)
}

// gauss returns 1 + 2 + ... + n.
func gauss(n int64) int64 {
	return n * (n + 1) / 2
}

// KendallsTau computes Kendall's tau-b between x and y using Knight's
// O(n log n) merge-sort algorithm, together with the tie-corrected z-score
// and two-tailed normal p-value.
//
// It fails with ErrDimensionMismatch on unequal lengths, ErrInvalidArgument
// on NaN or infinite values, ErrInsufficientData for fewer than two pairs and
// ErrDegenerate when either variable is constant.
func KendallsTau(x, y []float64) (KendallResult, error) {
	if len(x) != len(y) {
		return KendallResult{}, core.NewDimensionMismatchError(len(x), len(y))
	}
	if err := core.RequireFinite("x", x); err != nil {
		return KendallResult{}, err
	}
	if err := core.RequireFinite("y", y); err != nil {
		return KendallResult{}, err
	}
	n := len(x)
	if n < 2 {
		return KendallResult{}, core.NewInsufficientDataError("kendall sample", n, 2)
	}

	numPairs := gauss(int64(n - 1))

	pairs := make([]obs, n)
	for i := range x {
		pairs[i] = obs{x: x[i], y: y[i]}
	}
	slices.SortStableFunc(pairs, func(a, b obs) int {
		if c := cmp.Compare(a.x, b.x); c != 0 {
			return c
		}
		return cmp.Compare(a.y, b.y)
	})

	// Ties in x, and joint ties in (x, y), over the x-sorted order.
	var xTies tieStats
	var tiedXYPairs int64
	runX, runXY := int64(1), int64(1)
	for i := 1; i < n; i++ {
		prev, curr := pairs[i-1], pairs[i]
		if cmp.Compare(curr.x, prev.x) == 0 {
			runX++
			if cmp.Compare(curr.y, prev.y) == 0 {
				runXY++
			} else {
				tiedXYPairs += gauss(runXY - 1)
				runXY = 1
			}
			continue
		}
		xTies.closeRun(runX)
		runX = 1
		tiedXYPairs += gauss(runXY - 1)
		runXY = 1
	}
	xTies.closeRun(runX)
	tiedXYPairs += gauss(runXY - 1)

	swaps := mergeSortByY(pairs)

	var yTies tieStats
	runY := int64(1)
	for i := 1; i < n; i++ {
		if cmp.Compare(pairs[i].y, pairs[i-1].y) == 0 {
			runY++
			continue
		}
		yTies.closeRun(runY)
		runY = 1
	}
	yTies.closeRun(runY)

	concordantMinusDiscordant := numPairs - xTies.pairs - yTies.pairs + tiedXYPairs - 2*swaps
	nonTied := float64(numPairs-xTies.pairs) * float64(numPairs-yTies.pairs)
	if nonTied == 0 {
		return KendallResult{}, core.ErrDegenerate
	}
	tau := float64(concordantMinusDiscordant) / math.Sqrt(nonTied)

	nf := float64(n)
	v0 := nf * (nf - 1) * (2*nf + 5)
	v1 := float64(xTies.v1) * float64(yTies.v1)
	v2 := float64(xTies.v2) * float64(yTies.v2)
	varS := (v0-float64(xTies.vt)-float64(yTies.vt))/18.0 + v1/(2.0*nf*(nf-1.0))
	if n > 2 {
		// t(t-1)(t-2) vanishes for every run when n == 2
		varS += v2 / (9.0 * nf * (nf - 1.0) * (nf - 2.0))
	}

	z := tau * math.Sqrt(nonTied) / math.Sqrt(varS)

	return KendallResult{
		Tau:    tau,
		ZScore: z,
		PValue: distributions.NormalTwoTailed(z),
	}, nil
}

// mergeSortByY sorts pairs by y with a bottom-up merge sort and returns the
// number of inversions it had to undo. pairs is
// rewritten in place.
func mergeSortByY(pairs []obs) int64 {
	n := len(pairs)
	src := pairs
	dst := make([]obs, n)
	var swaps int64

	for size := 1; size < n; size <<= 1 {
		for offset := 0; offset < n; offset += 2 * size {
			i, iEnd := offset, min(offset+size, n)
			j, jEnd := iEnd, min(iEnd+size, n)

			for k := offset; i < iEnd || j < jEnd; k++ {
				switch {
				case j >= jEnd || (i < iEnd && cmp.Compare(src[i].y, src[j].y) <= 0):
					dst[k] = src[i]
					i++
				default:
					dst[k] = src[j]
					swaps += int64(iEnd - i)
					j++
				}
			}
		}
		src, dst = dst, src
	}

	if &src[0] != &pairs[0] {
		copy(pairs, src)
	}
	return swaps
}
