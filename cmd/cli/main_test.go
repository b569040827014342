package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypokit/adapters/excel"
	"hypokit/internal/testkit"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestKendallCmd_JSON(t *testing.T) {
	out, err := run(t, "kendall", "--json", "--x", "1,2,3,4,5", "--y", "2,4,6,8,10")
	require.NoError(t, err)

	var result struct {
		Tau    float64 `json:"tau"`
		PValue float64 `json:"p_value"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 1.0, result.Tau, 1e-12)
	assert.Less(t, result.PValue, 0.05)
}

func TestCorrelateCmd_Inline(t *testing.T) {
	out, err := run(t, "correlate", "--method", "spearman", "--x", "1 2 3 4 5", "--y", "5 4 3 2 1")
	require.NoError(t, err)
	assert.Contains(t, out, "spearman coefficient = -1")
}

func TestAdjustCmd(t *testing.T) {
	out, err := run(t, "adjust", "--json", "--method", "BH", "0.01", "0.02,0.03", "0.04", "0.05")
	require.NoError(t, err)

	var result struct {
		Method   string    `json:"method"`
		Adjusted []float64 `json:"adjusted"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "BH", result.Method)
	require.Len(t, result.Adjusted, 5)
	for _, p := range result.Adjusted {
		assert.InDelta(t, 0.05, p, 1e-12)
	}
}

func TestFilterCmd(t *testing.T) {
	out, err := run(t, "filter", "--fwer", "0.05", "0.001", "0.2", "0.01", "0.04")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 4 accepted")
	assert.Contains(t, out, "0.001\n0.01\n")
}

func TestKruskalCmd_Inline(t *testing.T) {
	out, err := run(t, "kruskal", "--json", "--alpha", "0.05",
		"--group", "2.9,3.0,2.5,2.6,3.2",
		"--group", "3.8,2.7,4.0,2.4",
		"--group", "2.8,3.4,3.7,2.2,2.0")
	require.NoError(t, err)

	var result struct {
		Groups []string `json:"groups"`
		DF     int      `json:"df"`
		PValue float64  `json:"p_value"`
		Reject *bool    `json:"reject"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"group1", "group2", "group3"}, result.Groups)
	assert.Equal(t, 2, result.DF)
	require.NotNil(t, result.Reject)
	assert.False(t, *result.Reject)
}

func TestCompareCmd_Inline(t *testing.T) {
	args := []string{"compare", "--json", "--method", "t-test"}
	for _, g := range testkit.PlantGrowthGroups {
		args = append(args, "--group", g+"="+joinFloats(testkit.PlantGrowth[g]))
	}
	out, err := run(t, args...)
	require.NoError(t, err)

	var result struct {
		Groups []string          `json:"groups"`
		Rows   []json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, testkit.PlantGrowthGroups, result.Groups)
	assert.Len(t, result.Rows, 3)
}

func TestDescribeCmd_Inline(t *testing.T) {
	out, err := run(t, "describe", "--group", "a=1,2,3,4", "--group", "b=2,4,8", "--stat", "median_iqr")
	require.NoError(t, err)
	assert.Contains(t, out, "MEDIAN")
	assert.Contains(t, out, "POINT")
}

func TestFileCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping.csv")
	_, err := run(t, "generate", "--out", path, "--customers", "200", "--seed", "7")
	require.NoError(t, err)

	t.Run("pairwise", func(t *testing.T) {
		out, err := run(t, "pairwise", "--json", "--file", path, "visits", "spend", "noise")
		require.NoError(t, err)

		var report struct {
			Family struct {
				NumTests int `json:"num_tests"`
			} `json:"family"`
			Relationships []json.RawMessage `json:"relationships"`
			Profiles      []json.RawMessage `json:"profiles"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Len(t, report.Relationships, 3)
		assert.Equal(t, 3, report.Family.NumTests)
		assert.Len(t, report.Profiles, 3)
	})

	t.Run("correlate", func(t *testing.T) {
		out, err := run(t, "correlate", "--file", path, "visits", "spend")
		require.NoError(t, err)
		assert.Contains(t, out, "visits ~ spend")
	})

	t.Run("describe by segment", func(t *testing.T) {
		out, err := run(t, "describe", "--json", "--file", path, "spend", "segment")
		require.NoError(t, err)

		var report struct {
			Summaries []json.RawMessage `json:"summaries"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Len(t, report.Summaries, len(testkit.Segments))
	})

	t.Run("kruskal by segment", func(t *testing.T) {
		out, err := run(t, "kruskal", "--file", path, "visits", "segment")
		require.NoError(t, err)
		assert.Contains(t, out, "df = 2")
	})

	t.Run("compare needs columns", func(t *testing.T) {
		_, err := run(t, "compare", "--file", path, "spend")
		assert.Error(t, err)
	})
}

func TestGenerateCmd_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping.xlsx")
	_, err := run(t, "generate", "--out", path, "--customers", "20")
	require.NoError(t, err)

	table, err := excel.NewDataReader(path).ReadTable(t.Context())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 20)
	assert.Equal(t, testkit.ShoppingHeaders, table.Headers)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad number", []string{"adjust", "0.1", "abc"}},
		{"unknown correction", []string{"adjust", "--method", "sidak", "0.1"}},
		{"fwer out of range", []string{"filter", "--fwer", "2", "0.1"}},
		{"bad group", []string{"compare", "--group", "1,2,3"}},
		{"pairwise without file", []string{"pairwise"}},
		{"missing file", []string{"correlate", "--file", "/nonexistent/data.csv", "x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestParseFloats(t *testing.T) {
	values, err := parseFloats("1, 2.5\t-3e-2\n4")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -0.03, 4}, values)

	_, err = parseFloats("1,x")
	assert.Error(t, err)
}

func joinFloats(values []float64) string {
	var buf bytes.Buffer
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(formatFloat(v))
	}
	return buf.String()
}
