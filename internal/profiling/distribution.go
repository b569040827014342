package profiling

import (
	"encoding/json"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"hypokit/domain/core"
)

// tukeyFence is the IQR multiple beyond which a value counts as an outlier
const tukeyFence = 1.5

// Shape describes the form of a sample beyond its location and spread
type Shape struct {
	Skewness       float64 `json:"skewness"`        // NaN below 3 values
	ExcessKurtosis float64 `json:"excess_kurtosis"` // NaN below 4 values
	LowOutliers    int     `json:"low_outliers"`
	HighOutliers   int     `json:"high_outliers"`
}

// DescribeShape computes skewness, excess kurtosis and Tukey-fence outlier
// counts. Constant samples have zero skewness and kurtosis.
func DescribeShape(values []float64) (Shape, error) {
	if len(values) == 0 {
		return Shape{}, core.NewInsufficientDataError("sample", 0, 1)
	}

	shape := Shape{Skewness: math.NaN(), ExcessKurtosis: math.NaN()}
	constant := slices.Min(values) == slices.Max(values)
	if len(values) >= 3 {
		shape.Skewness = 0
		if !constant {
			shape.Skewness = stat.Skew(values, nil)
		}
	}
	if len(values) >= 4 {
		shape.ExcessKurtosis = 0
		if !constant {
			shape.ExcessKurtosis = stat.ExKurtosis(values, nil)
		}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	q1, q3 := quantile(sorted, 0.25), quantile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-tukeyFence*iqr, q3+tukeyFence*iqr
	for _, v := range sorted {
		switch {
		case v < lo:
			shape.LowOutliers++
		case v > hi:
			shape.HighOutliers++
		}
	}
	return shape, nil
}

// MarshalJSON renders moments undefined for small samples as null
func (s Shape) MarshalJSON() ([]byte, error) {
	type alias Shape
	return json.Marshal(struct {
		alias
		Skewness       *float64 `json:"skewness"`
		ExcessKurtosis *float64 `json:"excess_kurtosis"`
	}{alias(s), core.FiniteOrNil(s.Skewness), core.FiniteOrNil(s.ExcessKurtosis)})
}
