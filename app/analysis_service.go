package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"hypokit/adapters/stats/compare"
	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/adapters/stats/stages"
	"hypokit/domain/core"
	"hypokit/domain/dataset"
	"hypokit/internal"
	"hypokit/internal/config"
	"hypokit/internal/profiling"
	"hypokit/ports"
)

// AnalysisService runs statistical analyses over one tabular data source
type AnalysisService struct {
	reader   ports.DatasetReader
	config   config.AnalysisConfig
	pairwise *stages.PairwiseStage
	profile  *stages.ProfileStage
	logger   *internal.Logger

	mu    sync.RWMutex
	table *dataset.Table
}

// CorrelationReport is the outcome of correlating two columns
type CorrelationReport struct {
	RunID  core.RunID         `json:"run_id"`
	X      string             `json:"x"`
	Y      string             `json:"y"`
	Result correlation.Result `json:"result"`
}

// KruskalReport is the outcome of a Kruskal-Wallis test across the levels of a column
type KruskalReport struct {
	RunID  core.RunID                  `json:"run_id"`
	Value  string                      `json:"value"`
	By     string                      `json:"by"`
	Groups []string                    `json:"groups"`
	Result compare.KruskalWallisResult `json:"result"`
}

// CompareReport is the outcome of CompareMeans over the levels of a column
type CompareReport struct {
	RunID      core.RunID          `json:"run_id"`
	Value      string              `json:"value"`
	By         string              `json:"by"`
	Comparison *compare.Comparison `json:"comparison"`
}

// DescribeReport summarizes a column, optionally per level of another column
type DescribeReport struct {
	RunID     core.RunID               `json:"run_id"`
	Value     string                   `json:"value"`
	By        string                   `json:"by,omitempty"`
	Summaries []profiling.GroupSummary `json:"summaries"`
	Points    []profiling.StatPoint    `json:"points,omitempty"`
}

// PairwiseReport is a full pairwise sweep with per-variable profiles
type PairwiseReport struct {
	*stages.PairwiseResult
	Profiles []stages.VariableProfile `json:"profiles"`
}

// NewAnalysisService creates an analysis service over reader
func NewAnalysisService(reader ports.DatasetReader, cfg config.AnalysisConfig) *AnalysisService {
	return &AnalysisService{
		reader:   reader,
		config:   cfg,
		pairwise: stages.NewPairwiseStage(),
		profile:  stages.NewProfileStage(),
		logger:   internal.DefaultLogger.With("AnalysisService"),
	}
}

// Table returns the loaded table, reading it on first use
func (s *AnalysisService) Table(ctx context.Context) (*dataset.Table, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}
	return s.Reload(ctx)
}

// Reload reads the data source again, replacing the cached table
func (s *AnalysisService) Reload(ctx context.Context) (*dataset.Table, error) {
	if s.reader == nil {
		return nil, fmt.Errorf("%w: no data source configured", core.ErrNotFound)
	}
	startTime := time.Now()
	table, err := s.reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.logger.Info("Loaded %s (%d columns, %d rows) in %s",
		table.Source, len(table.Headers), len(table.Rows), time.Since(startTime).Round(time.Millisecond))
	return table, nil
}

// Correlate computes the association between columns x and y over complete rows.
// An empty method uses the configured default.
func (s *AnalysisService) Correlate(ctx context.Context, x, y string, method correlation.Method) (*CorrelationReport, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	if method == "" {
		method = s.PairwiseConfig().Method
	}

	xs, ys, err := table.Pairs(x, y)
	if err != nil {
		return nil, err
	}
	result, err := correlation.Correlate(method, xs, ys)
	if err != nil {
		return nil, fmt.Errorf("%s correlation of %s and %s: %w", method, x, y, err)
	}

	report := &CorrelationReport{RunID: core.NewRunID(), X: x, Y: y, Result: result}
	s.logger.Debug("Run %s: %s(%s, %s) = %.4f, p = %.4g", report.RunID, method, x, y, result.Coefficient, result.PValue)
	return report, nil
}

// KruskalWallis tests whether column value differs across the levels of column by
func (s *AnalysisService) KruskalWallis(ctx context.Context, value, by string) (*KruskalReport, error) {
	groups, err := s.groups(ctx, value, by)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(groups))
	samples := make([][]float64, len(groups))
	for i, g := range groups {
		names[i] = g.Key
		samples[i] = g.Values
	}
	result, err := compare.KruskalWallisStatistic(samples...)
	if err != nil {
		return nil, fmt.Errorf("kruskal-wallis of %s by %s: %w", value, by, err)
	}
	return &KruskalReport{RunID: core.NewRunID(), Value: value, By: by, Groups: names, Result: result}, nil
}

// Compare runs CompareMeans on column value grouped by column by
func (s *AnalysisService) Compare(ctx context.Context, value, by string, opts compare.Options) (*CompareReport, error) {
	groups, err := s.groups(ctx, value, by)
	if err != nil {
		return nil, err
	}

	named := make([]compare.Group, len(groups))
	for i, g := range groups {
		named[i] = compare.Group{Name: g.Key, Values: g.Values}
	}
	comparison, err := compare.CompareMeans(named, opts)
	if err != nil {
		return nil, err
	}
	return &CompareReport{RunID: core.NewRunID(), Value: value, By: by, Comparison: comparison}, nil
}

// Describe summarizes column value, per level of by when by is set.
// An empty statFunc omits the plotted points.
func (s *AnalysisService) Describe(ctx context.Context, value, by string, statFunc profiling.StatFunc) (*DescribeReport, error) {
	var named []profiling.NamedValues
	if by == "" {
		table, err := s.Table(ctx)
		if err != nil {
			return nil, err
		}
		col, err := table.Column(value)
		if err != nil {
			return nil, err
		}
		named = []profiling.NamedValues{{Key: value, Values: dropMissing(col)}}
	} else {
		groups, err := s.groups(ctx, value, by)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			named = append(named, profiling.NamedValues{Key: g.Key, Values: g.Values})
		}
	}

	summaries, err := profiling.DescribeGroups(named)
	if err != nil {
		return nil, err
	}
	report := &DescribeReport{RunID: core.NewRunID(), Value: value, By: by, Summaries: summaries}
	if statFunc != "" {
		for _, sm := range summaries {
			report.Points = append(report.Points, statFunc.Point(sm))
		}
	}
	return report, nil
}

// Pairwise correlates every pair of the given numeric columns (all numeric
// columns when empty) and corrects the family with adjust.
func (s *AnalysisService) Pairwise(ctx context.Context, columns []string, method correlation.Method, adjust correction.Method) (*PairwiseReport, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	bundle, err := dataset.NewMatrixBundle(table, columns)
	if err != nil {
		return nil, err
	}

	cfg := s.PairwiseConfig()
	if method != "" {
		cfg.Method = method
	}
	if adjust != "" {
		cfg.Adjust = adjust
	}

	result, err := s.pairwise.Execute(ctx, core.NewRunID(), bundle, cfg)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profile.Execute(ctx, bundle)
	if err != nil {
		return nil, err
	}
	return &PairwiseReport{PairwiseResult: result, Profiles: profiles}, nil
}

// PairwiseConfig maps the analysis settings onto the pairwise stage
func (s *AnalysisService) PairwiseConfig() stages.PairwiseConfig {
	cfg := stages.DefaultPairwiseConfig()
	if s.config.CorrelationMethod != "" {
		cfg.Method = s.config.CorrelationMethod
	}
	if s.config.AdjustMethod != "" {
		cfg.Adjust = s.config.AdjustMethod
	}
	if s.config.Alpha > 0 {
		cfg.Alpha = s.config.Alpha
	}
	if s.config.MaxConcurrency > 0 {
		cfg.MaxConcurrency = s.config.MaxConcurrency
	}
	if s.config.MaxVariables > 0 {
		cfg.MaxVariables = s.config.MaxVariables
	}
	if s.config.MaxPairs > 0 {
		cfg.MaxPairs = s.config.MaxPairs
	}
	return cfg
}

// Alpha returns the configured significance level
func (s *AnalysisService) Alpha() float64 {
	if s.config.Alpha > 0 {
		return s.config.Alpha
	}
	return stages.DefaultPairwiseConfig().Alpha
}

func (s *AnalysisService) groups(ctx context.Context, value, by string) ([]dataset.Group, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return table.GroupBy(value, by)
}

func dropMissing(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
