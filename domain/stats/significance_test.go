package stats

import (
	"math"
	"testing"
)

func TestSignificanceOf(t *testing.T) {
	tests := []struct {
		p    float64
		want SignificanceLevel
	}{
		{0.5, NotSignificant},
		{0.05, NotSignificant},
		{0.049, OneStar},
		{0.001, OneStar},
		{0.0009, TwoStars},
		{0.0001, TwoStars},
		{0.00009, ThreeStars},
		{0, ThreeStars},
	}

	for _, tt := range tests {
		if got := SignificanceOf(tt.p); got != tt.want {
			t.Errorf("SignificanceOf(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestFormatPValue(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{math.NaN(), "NaN"},
		{0.0012, "1.2e-3"},
		{0.0005, "5e-4"},
		{1.252228e-05, "1.3e-5"},
		{0.009, "9e-3"},
		{0.01, "0.01"},
		{0.0461, "0.05"},
		{0.8860909, "0.89"},
		{1, "1.00"},
		{0, "0e0"},
	}

	for _, tt := range tests {
		if got := FormatPValue(tt.p); got != tt.want {
			t.Errorf("FormatPValue(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
