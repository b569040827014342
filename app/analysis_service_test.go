package app

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hypokit/adapters/stats/compare"
	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/domain/core"
	"hypokit/domain/dataset"
	"hypokit/internal/config"
	"hypokit/internal/profiling"
	"hypokit/internal/testkit"
)

type mockReader struct {
	mock.Mock
}

func (m *mockReader) ReadTable(ctx context.Context) (*dataset.Table, error) {
	args := m.Called(ctx)
	if t := args.Get(0); t != nil {
		return t.(*dataset.Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func testConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		Alpha:             0.05,
		AdjustMethod:      correction.Holm,
		CorrelationMethod: correlation.MethodKendall,
		MaxConcurrency:    2,
		MaxVariables:      100,
		MaxPairs:          1000,
	}
}

func TestAnalysisService_LoadsOnce(t *testing.T) {
	reader := &mockReader{}
	reader.On("ReadTable", mock.Anything).Return(testkit.PlantGrowthTable(), nil).Once()

	svc := NewAnalysisService(reader, testConfig())
	_, err := svc.KruskalWallis(context.Background(), "weight", "group")
	require.NoError(t, err)
	_, err = svc.Describe(context.Background(), "weight", "", "")
	require.NoError(t, err)

	reader.AssertExpectations(t)
	reader.AssertNumberOfCalls(t, "ReadTable", 1)
}

func TestAnalysisService_ReaderError(t *testing.T) {
	reader := &mockReader{}
	boom := errors.New("disk on fire")
	reader.On("ReadTable", mock.Anything).Return(nil, boom)

	svc := NewAnalysisService(reader, testConfig())
	_, err := svc.Correlate(context.Background(), "a", "b", "")
	assert.ErrorIs(t, err, boom)

	_, err = NewAnalysisService(nil, testConfig()).Table(context.Background())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAnalysisService_KruskalWallis(t *testing.T) {
	reader := &mockReader{}
	reader.On("ReadTable", mock.Anything).Return(testkit.PlantGrowthTable(), nil)

	report, err := NewAnalysisService(reader, testConfig()).KruskalWallis(context.Background(), "weight", "group")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl", "trt1", "trt2"}, report.Groups)
	assert.InDelta(t, 0.01842, report.Result.PValue, 1e-5)
	assert.Equal(t, 2, report.Result.DF)
	assert.NotEmpty(t, report.RunID)
}

func TestAnalysisService_Compare(t *testing.T) {
	reader := &mockReader{}
	reader.On("ReadTable", mock.Anything).Return(testkit.PlantGrowthTable(), nil)

	opts := compare.DefaultOptions()
	opts.Method = compare.ANOVA
	report, err := NewAnalysisService(reader, testConfig()).Compare(context.Background(), "weight", "group", opts)
	require.NoError(t, err)
	assert.InDelta(t, 0.01591, report.Comparison.OverallPValue, 1e-5)

	_, err = NewAnalysisService(reader, testConfig()).Compare(context.Background(), "weight", "cohort", opts)
	assert.ErrorIs(t, err, core.ErrVariableNotFound)
}

func TestAnalysisService_Describe(t *testing.T) {
	reader := &mockReader{}
	reader.On("ReadTable", mock.Anything).Return(testkit.PlantGrowthTable(), nil)
	svc := NewAnalysisService(reader, testConfig())

	report, err := svc.Describe(context.Background(), "weight", "group", profiling.MeanStdDev)
	require.NoError(t, err)
	require.Len(t, report.Summaries, 3)
	require.Len(t, report.Points, 3)
	assert.Equal(t, "ctrl", report.Summaries[0].Key)
	assert.InDelta(t, 5.032, report.Points[0].Middle, 1e-9)
	assert.InDelta(t, 5.032-0.5830914, report.Points[0].Lower, 1e-6)

	whole, err := svc.Describe(context.Background(), "weight", "", "")
	require.NoError(t, err)
	require.Len(t, whole.Summaries, 1)
	assert.Equal(t, 30, whole.Summaries[0].Count)
	assert.Empty(t, whole.Points)
}

func TestAnalysisService_Correlate(t *testing.T) {
	table := &dataset.Table{
		Source:  "pairs",
		Headers: []string{"x", "y"},
		Rows: []dataset.Row{
			{"x": "1", "y": "2"}, {"x": "2", "y": "1"}, {"x": "3", "y": "4"},
			{"x": "4", "y": "3"}, {"x": "5", "y": "NA"}, {"x": "6", "y": "6"},
		},
	}
	reader := &mockReader{}
	reader.On("ReadTable", mock.Anything).Return(table, nil)
	svc := NewAnalysisService(reader, testConfig())

	report, err := svc.Correlate(context.Background(), "x", "y", "")
	require.NoError(t, err)
	assert.Equal(t, correlation.MethodKendall, report.Result.Method)
	assert.Equal(t, 5, report.Result.N)

	want, err := correlation.KendallsTau([]float64{1, 2, 3, 4, 6}, []float64{2, 1, 4, 3, 6})
	require.NoError(t, err)
	assert.InDelta(t, want.Tau, report.Result.Coefficient, 1e-12)

	spearman, err := svc.Correlate(context.Background(), "x", "y", correlation.MethodSpearman)
	require.NoError(t, err)
	assert.Equal(t, correlation.MethodSpearman, spearman.Result.Method)
}

func TestAnalysisService_Pairwise(t *testing.T) {
	nan := math.NaN()
	cols := map[string][]float64{
		"a": {1, 2, 3, 4, 5, 6, 7, 8},
		"b": {2, 1, 4, 3, 6, 5, 8, 7},
		"c": {8, 7, 6, 5, 4, 3, 2, nan},
	}
	table := &dataset.Table{Source: "sweep", Headers: []string{"a", "b", "c", "label"}}
	for i := 0; i < 8; i++ {
		row := dataset.Row{"label": "x"}
		for k, v := range cols {
			if math.IsNaN(v[i]) {
				row[k] = ""
			} else {
				row[k] = strconv.FormatFloat(v[i], 'g', -1, 64)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	reader := &mockReader{}
	reader.On("ReadTable", mock.Anything).Return(table, nil)
	svc := NewAnalysisService(reader, testConfig())

	report, err := svc.Pairwise(context.Background(), nil, "", "")
	require.NoError(t, err)
	assert.Len(t, report.Relationships, 3)
	assert.Len(t, report.Profiles, 3)
	assert.Equal(t, "holm", report.Family.AdjustMethod)
	assert.Equal(t, "sweep", report.Manifest.Source)

	report, err = svc.Pairwise(context.Background(), []string{"a", "b"}, correlation.MethodPearson, correction.BenjaminiYekutieli)
	require.NoError(t, err)
	require.Len(t, report.Relationships, 1)
	assert.Equal(t, "BY", report.Relationships[0].Metrics.AdjustMethod)

	_, err = svc.Pairwise(context.Background(), []string{"a", "label"}, "", "")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestAnalysisService_PairwiseConfig(t *testing.T) {
	cfg := NewAnalysisService(nil, testConfig()).PairwiseConfig()
	assert.Equal(t, correction.Holm, cfg.Adjust)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, 1000, cfg.MaxPairs)

	defaults := NewAnalysisService(nil, config.AnalysisConfig{}).PairwiseConfig()
	assert.Equal(t, correlation.MethodKendall, defaults.Method)
	assert.Equal(t, 0.05, NewAnalysisService(nil, config.AnalysisConfig{}).Alpha())
}
