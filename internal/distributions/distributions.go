// Package distributions is the single place where test statistics are turned
// into tail probabilities.
package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalCDF computes the standard normal cumulative distribution function
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the standard normal inverse CDF
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// NormalTwoTailed returns 2·Φ(-|z|).
func NormalTwoTailed(z float64) float64 {
	return 2 * NormalCDF(-math.Abs(z))
}

// ChiSquareUpperTail computes P(X >= x) for a chi-squared variable with df degrees of freedom
func ChiSquareUpperTail(x float64, df int) float64 {
	if df <= 0 || math.IsNaN(x) || x <= 0 {
		return 1.0
	}

	chiDist := distuv.ChiSquared{K: float64(df)}
	return chiDist.Survival(x)
}

// StudentsTTwoTailed computes the two-tailed p-value of a t statistic
func StudentsTTwoTailed(t float64, df float64) float64 {
	if df <= 0 || math.IsNaN(t) {
		return 1.0
	}
	if math.IsInf(t, 0) {
		return 0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * tDist.Survival(math.Abs(t))
}

// FUpperTail computes the p-value for an F statistic (ANOVA)
func FUpperTail(f float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 || math.IsNaN(f) {
		return 1.0
	}
	if math.IsInf(f, 1) {
		return 0
	}

	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return fDist.Survival(f)
}
