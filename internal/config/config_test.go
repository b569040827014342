package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/internal"
	"hypokit/internal/errors"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "LOG_LEVEL", "ALPHA", "P_ADJUST_METHOD",
		"CORRELATION_METHOD", "MAX_CONCURRENCY", "MAX_VARIABLES", "MAX_PAIRS", "DATA_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, internal.LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, 0.05, cfg.Analysis.Alpha)
	assert.Equal(t, correction.Bonferroni, cfg.Analysis.AdjustMethod)
	assert.Equal(t, correlation.MethodKendall, cfg.Analysis.CorrelationMethod)
	assert.Equal(t, 8, cfg.Analysis.MaxConcurrency)
	assert.Equal(t, 2000, cfg.Analysis.MaxVariables)
	assert.Equal(t, 500000, cfg.Analysis.MaxPairs)
	assert.Empty(t, cfg.Data.File)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALPHA", "0.01")
	t.Setenv("P_ADJUST_METHOD", "fdr")
	t.Setenv("CORRELATION_METHOD", "Spearman")
	t.Setenv("MAX_CONCURRENCY", "2")
	t.Setenv("DATA_FILE", "data.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, internal.LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, 0.01, cfg.Analysis.Alpha)
	assert.Equal(t, correction.BenjaminiHochberg, cfg.Analysis.AdjustMethod)
	assert.Equal(t, correlation.MethodSpearman, cfg.Analysis.CorrelationMethod)
	assert.Equal(t, 2, cfg.Analysis.MaxConcurrency)
	assert.Equal(t, "data.csv", cfg.Data.File)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"ALPHA":           "1.5",
		"MAX_CONCURRENCY": "zero",
		"P_ADJUST_METHOD": "sidak",
		"LOG_LEVEL":       "loud",
		"READ_TIMEOUT":    "soon",
		"MAX_VARIABLES":   "1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
