package compare

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
)

// TTestResult is a t statistic with its degrees of freedom and two-tailed
// p-value.
type TTestResult struct {
	T      float64 `json:"t"`
	DF     float64 `json:"df"`
	PValue float64 `json:"p_value"`
}

// WelchTTest compares the means of two independent samples without
// assuming equal variances, using the Welch-Satterthwaite degrees of
// freedom.
func WelchTTest(x, y []float64) (TTestResult, error) {
	if len(x) < 2 {
		return TTestResult{}, core.NewInsufficientDataError("first sample", len(x), 2)
	}
	if len(y) < 2 {
		return TTestResult{}, core.NewInsufficientDataError("second sample", len(y), 2)
	}

	m1, v1 := stat.MeanVariance(x, nil)
	m2, v2 := stat.MeanVariance(y, nil)
	n1, n2 := float64(len(x)), float64(len(y))

	se1, se2 := v1/n1, v2/n2
	t := (m1 - m2) / math.Sqrt(se1+se2)
	df := (se1 + se2) * (se1 + se2) / (se1*se1/(n1-1) + se2*se2/(n2-1))

	return TTestResult{T: t, DF: df, PValue: distributions.StudentsTTwoTailed(t, df)}, nil
}

// PairedTTest tests whether the mean of x - y differs from zero.
func PairedTTest(x, y []float64) (TTestResult, error) {
	if len(x) != len(y) {
		return TTestResult{}, core.NewDimensionMismatchError(len(x), len(y))
	}
	if len(x) < 2 {
		return TTestResult{}, core.NewInsufficientDataError("paired sample", len(x), 2)
	}

	diffs := make([]float64, len(x))
	for i := range x {
		diffs[i] = x[i] - y[i]
	}
	m, v := stat.MeanVariance(diffs, nil)
	n := float64(len(diffs))

	t := m / math.Sqrt(v/n)
	df := n - 1
	return TTestResult{T: t, DF: df, PValue: distributions.StudentsTTwoTailed(t, df)}, nil
}
