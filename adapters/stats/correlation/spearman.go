package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
	"hypokit/internal/ranking"
)

// Spearman computes the rank correlation as Pearson's r over midranks.
//
// The p-value uses the Fisher transform z = atanh(r)·sqrt((n-3)/1.06), where
// n is the number of distinct x values.
func Spearman(x, y []float64) (Result, error) {
	if err := checkPaired(x, y, 3); err != nil {
		return Result{}, err
	}

	rho := stat.Correlation(ranking.Midranks(x), ranking.Midranks(y), nil)
	if math.IsNaN(rho) {
		return Result{}, core.ErrDegenerate
	}
	rho = clampUnit(rho)

	distinct := countDistinct(x)
	var p float64
	switch {
	case distinct <= 3:
		p = 1
	case math.Abs(rho) == 1:
		p = 0
	default:
		z := math.Atanh(rho) * math.Sqrt(float64(distinct-3)/1.06)
		p = distributions.NormalTwoTailed(z)
	}

	return Result{Method: MethodSpearman, Coefficient: rho, PValue: p, N: len(x)}, nil
}

func countDistinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
