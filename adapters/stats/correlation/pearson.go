package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
)

// Pearson computes the product-moment correlation with a two-tailed p-value
// from Student's t on n-2 degrees of freedom.
func Pearson(x, y []float64) (Result, error) {
	if err := checkPaired(x, y, 3); err != nil {
		return Result{}, err
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return Result{}, core.ErrDegenerate
	}
	r = clampUnit(r)

	df := float64(len(x) - 2)
	var p float64
	if math.Abs(r) == 1 {
		p = 0
	} else {
		t := r * math.Sqrt(df/(1-r*r))
		p = distributions.StudentsTTwoTailed(t, df)
	}

	return Result{Method: MethodPearson, Coefficient: r, PValue: p, N: len(x)}, nil
}

func checkPaired(x, y []float64, need int) error {
	if len(x) != len(y) {
		return core.NewDimensionMismatchError(len(x), len(y))
	}
	if len(x) < need {
		return core.NewInsufficientDataError("paired sample", len(x), need)
	}
	return nil
}

func clampUnit(r float64) float64 {
	return math.Max(-1, math.Min(1, r))
}
