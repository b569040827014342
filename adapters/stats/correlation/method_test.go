package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypokit/domain/core"
)

var (
	scatterX = []float64{44.4, 45.9, 41.9, 53.3, 44.7, 44.1, 50.7, 45.2, 60.1}
	scatterY = []float64{2.6, 3.1, 2.5, 5.0, 3.6, 4.0, 5.2, 2.8, 3.8}
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{"pearson", MethodPearson, false},
		{"Kendall", MethodKendall, false},
		{" SPEARMAN ", MethodSpearman, false},
		{"distance", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPearson(t *testing.T) {
	got, err := Pearson(scatterX, scatterY)
	require.NoError(t, err)

	// cor.test(x, y) in R: r = 0.5711816, p = 0.1082
	assert.InDelta(t, 0.5711816, got.Coefficient, 1e-6)
	assert.InDelta(t, 0.1082, got.PValue, 1e-3)
	assert.Equal(t, MethodPearson, got.Method)
	assert.Equal(t, len(scatterX), got.N)
}

func TestPearson_PerfectLine(t *testing.T) {
	got, err := Pearson([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Coefficient, 1e-12)
	assert.Equal(t, 0.0, got.PValue)
}

func TestSpearman(t *testing.T) {
	got, err := Spearman(scatterX, scatterY)
	require.NoError(t, err)

	// cor(x, y, method = "spearman") in R
	assert.InDelta(t, 0.6, got.Coefficient, 1e-9)
	assert.Greater(t, got.PValue, 0.0)
	assert.Less(t, got.PValue, 1.0)
}

func TestSpearman_MonotoneTransformInvariant(t *testing.T) {
	y2 := make([]float64, len(scatterY))
	for i, v := range scatterY {
		y2[i] = v * v * v
	}

	a, err := Spearman(scatterX, scatterY)
	require.NoError(t, err)
	b, err := Spearman(scatterX, y2)
	require.NoError(t, err)
	assert.InDelta(t, a.Coefficient, b.Coefficient, 1e-12)
	assert.InDelta(t, a.PValue, b.PValue, 1e-12)
}

func TestCorrelate_Dispatch(t *testing.T) {
	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			got, err := Correlate(m, scatterX, scatterY)
			require.NoError(t, err)
			assert.Equal(t, m, got.Method)
			assert.GreaterOrEqual(t, got.Coefficient, -1.0)
			assert.LessOrEqual(t, got.Coefficient, 1.0)
		})
	}

	k, err := Correlate(MethodKendall, scatterX, scatterY)
	require.NoError(t, err)
	assert.InDelta(t, 0.4444, k.Coefficient, 1e-3)

	_, err = Correlate(Method("distance"), scatterX, scatterY)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestCorrelate_Errors(t *testing.T) {
	for _, m := range Methods() {
		_, err := Correlate(m, []float64{1, 2, 3}, []float64{1, 2})
		assert.ErrorIs(t, err, core.ErrDimensionMismatch, "method %s", m)
	}

	_, err := Pearson([]float64{1, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = Pearson([]float64{1, 1, 1}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrDegenerate)

	_, err = Spearman([]float64{1, 2, 3}, []float64{4, 4, 4})
	assert.ErrorIs(t, err, core.ErrDegenerate)
}
