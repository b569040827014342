package compare

import (
	"math"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
	"hypokit/internal/ranking"
)

// WilcoxonSignedRankTest is the two-sided paired signed-rank test on x - y
// using the normal approximation with continuity correction. Zero
// differences are ranked with the rest.
func WilcoxonSignedRankTest(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, core.NewDimensionMismatchError(len(x), len(y))
	}
	if len(x) == 0 {
		return 0, core.NewInsufficientDataError("signed-rank sample", 0, 1)
	}

	n := len(x)
	diffs := make([]float64, n)
	abs := make([]float64, n)
	for i := range x {
		diffs[i] = x[i] - y[i]
		abs[i] = math.Abs(diffs[i])
	}
	ranks := ranking.Midranks(abs)

	wPlus := 0.0
	for i, d := range diffs {
		if d > 0 {
			wPlus += ranks[i]
		}
	}
	nf := float64(n)
	total := nf * (nf + 1) / 2
	wMin := math.Min(wPlus, total-wPlus)

	es := nf * (nf + 1) / 4
	varS := es * (2*nf + 1) / 6
	z := (wMin - es - 0.5) / math.Sqrt(varS)
	return math.Min(1, 2*distributions.NormalCDF(z)), nil
}
