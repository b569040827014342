package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypokit/adapters/stats/compare"
	"hypokit/adapters/stats/correction"
	"hypokit/domain/core"
)

func TestParseAdjust(t *testing.T) {
	fallback := correction.Holm

	got, err := ParseAdjust("", &fallback)
	require.NoError(t, err)
	assert.Equal(t, &fallback, got)

	got, err = ParseAdjust("None", &fallback)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseAdjust("fdr", nil)
	require.NoError(t, err)
	assert.Equal(t, correction.BenjaminiHochberg, *got)

	_, err = ParseAdjust("sidak", nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestCompareRequest_Options(t *testing.T) {
	opts, err := CompareRequest{}.Options()
	require.NoError(t, err)
	assert.Equal(t, compare.Wilcoxon, opts.Method)
	assert.Equal(t, compare.KruskalWallisTest, opts.MultipleGroupsMethod)
	assert.Equal(t, correction.Bonferroni, *opts.Adjust)
	assert.Nil(t, opts.Ref)

	opts, err = CompareRequest{Method: "t-test", Paired: true, Adjust: "none", Ref: "all", MultipleGroupsMethod: "anova"}.Options()
	require.NoError(t, err)
	assert.Equal(t, compare.TTest, opts.Method)
	assert.Equal(t, compare.ANOVA, opts.MultipleGroupsMethod)
	assert.True(t, opts.Paired)
	assert.Nil(t, opts.Adjust)
	assert.Equal(t, compare.AllGroupsLabel, opts.Ref.Label())

	_, err = CompareRequest{Method: "chisq"}.Options()
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = CompareRequest{MultipleGroupsMethod: "chisq"}.Options()
	assert.Error(t, err)
	_, err = CompareRequest{Adjust: "sidak"}.Options()
	assert.Error(t, err)
}
