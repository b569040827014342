package profiling

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"hypokit/domain/core"
)

// GroupSummary is the descriptive summary of one group's values
type GroupSummary struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"` // sample standard deviation
	StdErr float64 `json:"err"` // StdDev / sqrt(Count)
}

// NamedValues is a keyed sample, in the order the caller wants it reported
type NamedValues struct {
	Key    string
	Values []float64
}

// Describe summarizes a single sample. Empty samples are rejected.
func Describe(key string, values []float64) (GroupSummary, error) {
	if len(values) == 0 {
		return GroupSummary{}, core.NewInsufficientDataError(fmt.Sprintf("group %q", key), 0, 1)
	}

	data := stats.Float64Data(values)
	summary := GroupSummary{Key: key, Count: len(values)}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}

	if len(values) > 1 {
		if summary.StdDev, err = stats.StandardDeviationSample(data); err != nil {
			return summary, err
		}
	} else {
		summary.StdDev = math.NaN()
	}
	summary.StdErr = summary.StdDev / math.Sqrt(float64(len(values)))

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	summary.Q1 = quantile(sorted, 0.25)
	summary.Q3 = quantile(sorted, 0.75)

	return summary, nil
}

// DescribeGroups summarizes each group in order
func DescribeGroups(groups []NamedValues) ([]GroupSummary, error) {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		s, err := Describe(g.Key, g.Values)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// quantile estimates the p-th quantile of sorted data at position p(n+1),
// interpolating linearly between neighbours and clamping to the extremes.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	pos := p * float64(n+1)
	switch {
	case pos < 1:
		return sorted[0]
	case pos >= float64(n):
		return sorted[n-1]
	}
	lo := math.Floor(pos)
	lower := sorted[int(lo)-1]
	upper := sorted[int(lo)]
	return lower + (pos-lo)*(upper-lower)
}

// MarshalJSON renders the spread of a single-value group as null
func (s GroupSummary) MarshalJSON() ([]byte, error) {
	type alias GroupSummary
	return json.Marshal(struct {
		alias
		StdDev *float64 `json:"std"`
		StdErr *float64 `json:"err"`
	}{alias(s), core.FiniteOrNil(s.StdDev), core.FiniteOrNil(s.StdErr)})
}
