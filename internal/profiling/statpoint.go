package profiling

import (
	"encoding/json"

	"hypokit/domain/core"
)

// StatPoint is a centre with an interval, as drawn by an error bar or a box
type StatPoint struct {
	Middle float64  `json:"middle"`
	Lower  float64  `json:"lower"`
	Upper  float64  `json:"upper"`
	YMin   *float64 `json:"ymin,omitempty"`
	YMax   *float64 `json:"ymax,omitempty"`
}

// StatFunc selects how a GroupSummary collapses to a StatPoint
type StatFunc string

const (
	MeanStdErr StatFunc = "mean_se"
	MeanStdDev StatFunc = "mean_sd"
	MeanRange  StatFunc = "mean_range"
	MedianIQR  StatFunc = "median_iqr"
	BoxPlot    StatFunc = "box"
)

// Point applies f to s. Unknown functions fall back to MeanStdErr.
func (f StatFunc) Point(s GroupSummary) StatPoint {
	switch f {
	case MeanStdDev:
		return StatPoint{Middle: s.Mean, Lower: s.Mean - s.StdDev, Upper: s.Mean + s.StdDev}
	case MeanRange:
		return StatPoint{Middle: s.Mean, Lower: s.Min, Upper: s.Max}
	case MedianIQR:
		return StatPoint{Middle: s.Median, Lower: s.Q1, Upper: s.Q3}
	case BoxPlot:
		lo, hi := s.Min, s.Max
		return StatPoint{Middle: s.Median, Lower: s.Q1, Upper: s.Q3, YMin: &lo, YMax: &hi}
	default:
		return StatPoint{Middle: s.Mean, Lower: s.Mean - s.StdErr, Upper: s.Mean + s.StdErr}
	}
}

// MarshalJSON renders an undefined interval bound as null
func (p StatPoint) MarshalJSON() ([]byte, error) {
	type alias StatPoint
	return json.Marshal(struct {
		alias
		Lower *float64 `json:"lower"`
		Upper *float64 `json:"upper"`
	}{alias(p), core.FiniteOrNil(p.Lower), core.FiniteOrNil(p.Upper)})
}
