package compare

import (
	"math"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
	"hypokit/internal/ranking"
)

const (
	// exactMaxTotal is the largest combined sample size that gets the exact
	// null distribution when there are no ties.
	exactMaxTotal = 50
	// exactMaxGroup bounds the frequency table of the exact distribution.
	exactMaxGroup = 100
)

// MannWhitneyU returns min(U1, U2) for samples x and y.
func MannWhitneyU(x, y []float64) float64 {
	u, _ := mannWhitney(x, y)
	return u
}

func mannWhitney(x, y []float64) (float64, []int) {
	pooled := make([]float64, 0, len(x)+len(y))
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks, ties := ranking.MidranksWithTies(pooled)

	rankSumX := 0.0
	for i := range x {
		rankSumX += ranks[i]
	}

	n1, n2 := float64(len(x)), float64(len(y))
	u1 := rankSumX - n1*(n1+1)/2
	u2 := n1*n2 - u1
	return math.Min(u1, u2), ties
}

// MannWhitneyTest is the two-sided Wilcoxon rank-sum test. Small samples
// (at most 50 values in total) without ties use the exact distribution of
// U; everything else uses the normal approximation with tie-corrected
// variance and a continuity correction.
func MannWhitneyTest(x, y []float64) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, core.NewInsufficientDataError("mann-whitney sample", min(len(x), len(y)), 1)
	}

	u, ties := mannWhitney(x, y)
	if len(x)+len(y) <= exactMaxTotal && len(ties) == 0 {
		return mannWhitneyExactP(len(x), len(y), u)
	}
	return mannWhitneyApproxP(len(x), len(y), u, ties), nil
}

// MannWhitneyApproxTest forces the normal approximation.
func MannWhitneyApproxTest(x, y []float64) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, core.NewInsufficientDataError("mann-whitney sample", min(len(x), len(y)), 1)
	}
	u, ties := mannWhitney(x, y)
	return mannWhitneyApproxP(len(x), len(y), u, ties), nil
}

func mannWhitneyApproxP(n1, n2 int, u float64, ties []int) float64 {
	nm := float64(n1) * float64(n2)
	mu := nm / 2
	if u == mu {
		return 1
	}

	var varU float64
	if len(ties) == 0 {
		varU = nm * float64(n1+n2+1) / 12
	} else {
		total := float64(n1 + n2)
		varU = nm / 12 * (total + 1 - ranking.TieCorrection(ties)/(total*(total-1)))
	}

	z := -math.Abs(u-mu+0.5) / math.Sqrt(varU)
	return 2 * distributions.NormalCDF(z)
}

func mannWhitneyExactP(n, m int, u float64) (float64, error) {
	freq, err := uFrequencies(n, m)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, f := range freq {
		total += float64(f)
	}

	// u is already the smaller tail, so P(U <= u) doubled is two-sided
	cum := 0.0
	for ct := 0; float64(ct) <= u; ct++ {
		cum += float64(freq[ct+1]) / total
	}
	return math.Min(1, 2*cum), nil
}

// uFrequencies tabulates the null distribution of U: freq[u+1] counts the
// orderings of n and m observations that produce U = u. It follows
// Dinneen & Blakesley, Algorithm AS 62, Applied Statistics 22(2), 1973.
func uFrequencies(n, m int) ([]int64, error) {
	hi, lo := max(m, n), min(m, n)
	if hi > exactMaxGroup {
		return nil, core.NewInvalidArgumentError("sample", "exact mann-whitney supports at most 100 values per group")
	}

	out := make([]int64, n*m+2)
	work := make([]int64, n*m+2)
	for i := 1; i < len(out); i++ {
		if i <= hi+1 {
			out[i] = 1
		}
	}

	in := hi
	for i := 2; i <= lo; i++ {
		work[i] = 0
		in += hi
		n1 := in + 2
		l := 1 + in/2
		k := i
		for j := 1; j <= l; j++ {
			k++
			n1--
			sum := out[j] + work[j]
			out[j] = sum
			work[k] = sum - out[n1]
			out[n1] = sum
		}
	}
	return out, nil
}
