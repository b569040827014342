package correlation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypokit/domain/core"
)

func TestKendallsTau_Fixtures(t *testing.T) {
	t.Run("nine points", func(t *testing.T) {
		x := []float64{44.4, 45.9, 41.9, 53.3, 44.7, 44.1, 50.7, 45.2, 60.1}
		y := []float64{2.6, 3.1, 2.5, 5.0, 3.6, 4.0, 5.2, 2.8, 3.8}

		got, err := KendallsTau(x, y)
		require.NoError(t, err)
		assert.InDelta(t, 0.4444, got.Tau, 1e-3)
	})

	t.Run("three points", func(t *testing.T) {
		got, err := KendallsTau([]float64{1, 2, 3}, []float64{3, 4, 5})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got.Tau, 1e-12)
		assert.InDelta(t, 1.5666989036012806, got.ZScore, 1e-12)
	})

	t.Run("twelve points", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
		y := []float64{1, 2, 3, 5, 4, 7, 6, 8, 10, 9, 11, 12}

		got, err := KendallsTau(x, y)
		require.NoError(t, err)
		assert.InDelta(t, 0.909, got.Tau, 1e-3)
		assert.InDelta(t, 4.114, got.ZScore, 1e-3)
		assert.InDelta(t, 0.00004, got.PValue, 1e-5)
	})
}

func TestKendallsTau_Reversed(t *testing.T) {
	got, err := KendallsTau([]float64{1, 2, 3, 4, 5}, []float64{50, 40, 30, 20, 10})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got.Tau, 1e-12)
	assert.Less(t, got.ZScore, 0.0)
}

func TestKendallsTau_IndependentOfInputOrder(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	y := []float64{2, 7, 1, 8, 2, 8, 1, 8, 2, 8, 4}
	base, err := KendallsTau(x, y)
	require.NoError(t, err)

	perm := rand.New(rand.NewSource(3)).Perm(len(x))
	px, py := make([]float64, len(x)), make([]float64, len(y))
	for i, j := range perm {
		px[i], py[i] = x[j], y[j]
	}
	got, err := KendallsTau(px, py)
	require.NoError(t, err)

	assert.InDelta(t, base.Tau, got.Tau, 1e-12)
	assert.InDelta(t, base.ZScore, got.ZScore, 1e-12)
}

func TestKendallsTau_MatchesQuadraticCount(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		n := 5 + rng.Intn(40)
		x, y := make([]float64, n), make([]float64, n)
		for i := range x {
			// small integer range forces ties on both axes
			x[i] = float64(rng.Intn(6))
			y[i] = float64(rng.Intn(6))
		}

		want, ok := bruteTauB(x, y)
		got, err := KendallsTau(x, y)
		if !ok {
			assert.ErrorIs(t, err, core.ErrDegenerate)
			continue
		}
		require.NoError(t, err)
		assert.InDelta(t, want, got.Tau, 1e-12, "trial %d", trial)
		assert.GreaterOrEqual(t, got.Tau, -1.0)
		assert.LessOrEqual(t, got.Tau, 1.0)
		assert.GreaterOrEqual(t, got.PValue, 0.0)
		assert.LessOrEqual(t, got.PValue, 1.0)
	}
}

func TestKendallsTau_Errors(t *testing.T) {
	_, err := KendallsTau([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	_, err = KendallsTau([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = KendallsTau(nil, nil)
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = KendallsTau([]float64{2, 2, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrDegenerate)
}

func TestKendallsTau_NonFinite(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"nan in x", []float64{math.NaN(), 2, 3, 4}, []float64{1, 2, 3, 4}},
		{"nan in y", []float64{1, 2, 3, 4}, []float64{1, math.NaN(), 3, 4}},
		{"infinity in x", []float64{1, 2, math.Inf(1), 4}, []float64{4, 3, 2, 1}},
		{"negative infinity in y", []float64{1, 2, 3, 4}, []float64{math.Inf(-1), 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := KendallsTau(tt.x, tt.y)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}

func TestKendallsTau_TwoPoints(t *testing.T) {
	got, err := KendallsTau([]float64{1, 2}, []float64{5, 9})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Tau, 1e-12)
	assert.InDelta(t, 1.0, got.ZScore, 1e-12)
	assert.False(t, math.IsNaN(got.PValue))
}

func TestMergeSortByY_CountsInversions(t *testing.T) {
	pairs := []obs{{0, 3}, {1, 1}, {2, 2}, {3, 0}}
	swaps := mergeSortByY(pairs)

	assert.Equal(t, int64(5), swaps)
	for i := 1; i < len(pairs); i++ {
		assert.LessOrEqual(t, pairs[i-1].y, pairs[i].y)
	}
}

func bruteTauB(x, y []float64) (float64, bool) {
	var nc, nd, tx, ty, n0 float64
	for i := 0; i < len(x); i++ {
		for j := i + 1; j < len(x); j++ {
			n0++
			dx, dy := x[i]-x[j], y[i]-y[j]
			switch {
			case dx == 0 && dy == 0:
				tx++
				ty++
			case dx == 0:
				tx++
			case dy == 0:
				ty++
			case dx*dy > 0:
				nc++
			default:
				nd++
			}
		}
	}
	den := (n0 - tx) * (n0 - ty)
	if den == 0 {
		return 0, false
	}
	return (nc - nd) / math.Sqrt(den), true
}
