package compare

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"hypokit/domain/core"
	"hypokit/internal/distributions"
)

// AnovaResult is a one-way analysis of variance summary
type AnovaResult struct {
	F         float64 `json:"f"`
	DFBetween int     `json:"df_between"`
	DFWithin  int     `json:"df_within"`
	PValue    float64 `json:"p_value"`
}

// OneWayAnova tests equality of means across two or more groups, each with
// at least two observations.
func OneWayAnova(groups ...[]float64) (AnovaResult, error) {
	if len(groups) < 2 {
		return AnovaResult{}, core.NewInvalidArgumentError("groups", "anova requires at least 2 groups")
	}

	var pooled []float64
	for i, g := range groups {
		if len(g) < 2 {
			return AnovaResult{}, core.NewInsufficientDataError(fmt.Sprintf("group %d", i), len(g), 2)
		}
		pooled = append(pooled, g...)
	}
	grand := stat.Mean(pooled, nil)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		m := stat.Mean(g, nil)
		d := m - grand
		ssBetween += float64(len(g)) * d * d
		for _, v := range g {
			ssWithin += (v - m) * (v - m)
		}
	}

	res := AnovaResult{
		DFBetween: len(groups) - 1,
		DFWithin:  len(pooled) - len(groups),
	}
	res.F = (ssBetween / float64(res.DFBetween)) / (ssWithin / float64(res.DFWithin))
	res.PValue = distributions.FUpperTail(res.F, res.DFBetween, res.DFWithin)
	return res, nil
}
