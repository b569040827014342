package correction

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypokit/domain/core"
	"hypokit/internal/testkit"
)

const referenceTolerance = 1e-5

func TestAdjust_MatchesReference(t *testing.T) {
	tests := []struct {
		method Method
		want   []float64
	}{
		{Bonferroni, testkit.PValues50Bonferroni},
		{Holm, testkit.PValues50Holm},
		{Hommel, testkit.PValues50Hommel},
		{Hochberg, testkit.PValues50Hochberg},
		{BenjaminiHochberg, testkit.PValues50BH},
		{BenjaminiYekutieli, testkit.PValues50BY},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			got, err := Adjust(testkit.PValues50, tt.method)
			require.NoError(t, err)
			require.Len(t, got, len(testkit.PValues50))
			assert.InDeltaSlice(t, tt.want, got, referenceTolerance)
		})
	}
}

func TestAdjust_DoesNotModifyInput(t *testing.T) {
	input := append([]float64(nil), testkit.PValues50...)
	for _, m := range Methods() {
		_, err := Adjust(input, m)
		require.NoError(t, err)
		assert.Equal(t, testkit.PValues50, input, "method %s mutated its input", m)
	}
}

func TestAdjust_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	raw := make([]float64, 30)
	for i := range raw {
		raw[i] = rng.Float64()
	}

	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			adjusted, err := Adjust(raw, m)
			require.NoError(t, err)

			for i := range raw {
				assert.GreaterOrEqual(t, adjusted[i], raw[i]-1e-12, "adjusted below raw at %d", i)
				assert.LessOrEqual(t, adjusted[i], 1.0)
			}

			// adjusted values follow the raw ordering
			o := order(raw, false)
			for k := 1; k < len(o); k++ {
				assert.LessOrEqual(t, adjusted[o[k-1]], adjusted[o[k]]+1e-12)
			}
		})
	}
}

func TestAdjustHommel_NeverBelowRaw(t *testing.T) {
	tests := []struct {
		raw  []float64
		want []float64
	}{
		{[]float64{0.1, 0.9}, []float64{0.2, 0.9}},
		{[]float64{0.9, 0.1}, []float64{0.9, 0.2}},
		{[]float64{0.01, 0.5, 0.8}, []float64{0.03, 0.8, 0.8}},
	}

	for _, tt := range tests {
		got, err := AdjustHommel(tt.raw)
		require.NoError(t, err)
		require.Len(t, got, len(tt.want))
		for i := range tt.want {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("AdjustHommel(%v)[%d] = %v, want %v", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}

func TestAdjust_PermutationInvariant(t *testing.T) {
	perm := rand.New(rand.NewSource(7)).Perm(len(testkit.PValues50))
	shuffled := make([]float64, len(perm))
	for i, j := range perm {
		shuffled[i] = testkit.PValues50[j]
	}

	for _, m := range Methods() {
		base, err := Adjust(testkit.PValues50, m)
		require.NoError(t, err)
		got, err := Adjust(shuffled, m)
		require.NoError(t, err)

		for i, j := range perm {
			assert.InDelta(t, base[j], got[i], 1e-12, "method %s position %d", m, i)
		}
	}
}

func TestAdjust_SingleValue(t *testing.T) {
	for _, m := range Methods() {
		got, err := Adjust([]float64{0.03}, m)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.03}, got, 1e-12, "method %s", m)
	}
}

func TestAdjust_EmptyInput(t *testing.T) {
	for _, m := range Methods() {
		_, err := Adjust(nil, m)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidArgument), "method %s: %v", m, err)
	}
}

func TestAdjust_OutOfRange(t *testing.T) {
	for _, m := range []Method{Hochberg, BenjaminiHochberg, BenjaminiYekutieli} {
		t.Run(m.String(), func(t *testing.T) {
			_, err := Adjust([]float64{0.1, 1.5, 0.2}, m)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrOutOfRange)
			assert.Contains(t, err.Error(), "array[1] = 1.5")
		})
	}

	_, err := AdjustBonferroni([]float64{0.2, -0.1})
	assert.ErrorIs(t, err, core.ErrOutOfRange)

	// Holm and Hommel do not range-check their input
	_, err = AdjustHolm([]float64{0.2, 1.5})
	assert.NoError(t, err)
	_, err = AdjustHommel([]float64{0.2, 1.5})
	assert.NoError(t, err)
}

func TestAdjust_UnknownMethod(t *testing.T) {
	_, err := Adjust([]float64{0.1}, Method("sidak"))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.False(t, Method("sidak").Valid())
}

func TestPerMethodEntryPoints(t *testing.T) {
	entry := map[Method]Adjuster{
		Bonferroni:         AdjustBonferroni,
		Holm:               AdjustHolm,
		Hommel:             AdjustHommel,
		Hochberg:           AdjustHochberg,
		BenjaminiHochberg:  AdjustBenjaminiHochberg,
		BenjaminiYekutieli: AdjustBenjaminiYekutieli,
	}
	for m, fn := range entry {
		want, err := Adjust(testkit.PValues50, m)
		require.NoError(t, err)
		got, err := fn(testkit.PValues50)
		require.NoError(t, err)
		assert.Equal(t, want, got, "method %s", m)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input string
		want  Method
	}{
		{"bonferroni", Bonferroni},
		{"Holm", Holm},
		{"HOMMEL", Hommel},
		{"hochberg", Hochberg},
		{"BH", BenjaminiHochberg},
		{"fdr", BenjaminiHochberg},
		{"benjamini-hochberg", BenjaminiHochberg},
		{"by", BenjaminiYekutieli},
		{" Benjamini_Yekutieli ", BenjaminiYekutieli},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.input)
		if err != nil {
			t.Errorf("ParseMethod(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}

	_, err := ParseMethod("sidak")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestHelpers(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5}
	assert.Equal(t, []int{1, 3, 0, 2, 4}, order(values, false))
	assert.Equal(t, []int{4, 2, 0, 1, 3}, order(values, true))

	running := []float64{0.2, 0.1, 0.5, 0.3}
	cummax(running)
	assert.Equal(t, []float64{0.2, 0.2, 0.5, 0.5}, running)

	running = []float64{0.4, 0.5, 0.1, 0.3}
	cummin(running)
	assert.Equal(t, []float64{0.4, 0.4, 0.1, 0.1}, running)

	assert.InDelta(t, 1.8333333, harmonic(3), 1e-6)
}
