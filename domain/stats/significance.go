package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SignificanceLevel is the star notation for a p-value
type SignificanceLevel string

const (
	NotSignificant SignificanceLevel = "ns"
	OneStar        SignificanceLevel = "*"
	TwoStars       SignificanceLevel = "**"
	ThreeStars     SignificanceLevel = "***"
)

// SignificanceOf maps p to ns (p >= 0.05), * , ** (p < 0.001) or
// *** (p < 0.0001). NaN maps to *, as no threshold comparison holds.
func SignificanceOf(p float64) SignificanceLevel {
	switch {
	case p >= 0.05:
		return NotSignificant
	case p < 0.0001:
		return ThreeStars
	case p < 0.001:
		return TwoStars
	default:
		return OneStar
	}
}

func (s SignificanceLevel) String() string {
	return string(s)
}

// FormatPValue renders a p-value for display. Values below 1e-2 in magnitude
// use scientific notation with at most one fractional digit ("1.2e-3",
// "5e-4"); the rest use two decimals.
func FormatPValue(p float64) string {
	if math.IsNaN(p) {
		return "NaN"
	}
	if math.Abs(p) < 1e-2 {
		if p == 0 {
			return "0e0"
		}
		s := strconv.FormatFloat(p, 'e', 1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		mantissa = strings.TrimSuffix(mantissa, ".0")
		e, _ := strconv.Atoi(exp)
		return mantissa + "e" + strconv.Itoa(e)
	}
	return fmt.Sprintf("%.2f", math.Round(1000*p)/1000)
}
