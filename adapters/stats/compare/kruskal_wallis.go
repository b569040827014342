package compare

import (
	"fmt"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
	"hypokit/internal/ranking"
)

// KruskalWallisResult carries the intermediate quantities of the test.
type KruskalWallisResult struct {
	H      float64 `json:"h"`
	C      float64 `json:"tie_correction"`
	DF     int     `json:"df"`
	PValue float64 `json:"p_value"`
}

// KruskalWallisStatistic runs the Kruskal-Wallis H test over two or more
// groups. Values are ranked jointly with midranks for ties; the p-value is
// the chi-squared upper tail of H/C on k-1 degrees of freedom, where C is the
// tie correction. When every value is tied (C == 0) the p-value is 1.
// NaN or infinite values fail with ErrInvalidArgument.
func KruskalWallisStatistic(groups ...[]float64) (KruskalWallisResult, error) {
	if len(groups) < 2 {
		return KruskalWallisResult{}, core.NewInvalidArgumentError("groups",
			"kruskal-wallis requires at least 2 groups")
	}

	var pooled []float64
	for i, g := range groups {
		if len(g) == 0 {
			return KruskalWallisResult{}, core.NewInsufficientDataError(fmt.Sprintf("group %d", i), 0, 1)
		}
		if err := core.RequireFinite(fmt.Sprintf("group %d", i), g); err != nil {
			return KruskalWallisResult{}, err
		}
		pooled = append(pooled, g...)
	}
	ranks, ties := ranking.MidranksWithTies(pooled)

	res := KruskalWallisResult{DF: len(groups) - 1}

	n := float64(len(pooled))
	res.C = 1 - ranking.TieCorrection(ties)/(n*n*n-n)
	if res.C == 0 {
		res.PValue = 1
		return res, nil
	}

	sum := 0.0
	offset := 0
	for _, g := range groups {
		rankSum := 0.0
		for i := range g {
			rankSum += ranks[offset+i]
		}
		offset += len(g)
		sum += rankSum * rankSum / float64(len(g))
	}

	res.H = 12.0/(n*(n+1))*sum - 3.0*(n+1)
	res.PValue = distributions.ChiSquareUpperTail(res.H/res.C, res.DF)
	return res, nil
}

// KruskalWallis returns the Kruskal-Wallis p-value for the groups.
func KruskalWallis(groups ...[]float64) (float64, error) {
	res, err := KruskalWallisStatistic(groups...)
	if err != nil {
		return 0, err
	}
	return res.PValue, nil
}

// KruskalWallisReject reports whether the null hypothesis of identical
// distributions is rejected at level alpha.
func KruskalWallisReject(alpha float64, groups ...[]float64) (bool, error) {
	p, err := KruskalWallis(groups...)
	if err != nil {
		return false, err
	}
	return p < alpha, nil
}
