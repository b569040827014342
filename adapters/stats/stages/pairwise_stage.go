package stages

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat"

	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/domain/core"
	"hypokit/domain/dataset"
	"hypokit/domain/stats"
	"hypokit/internal"
)

// PairwiseStageName labels the family every pairwise test belongs to
const PairwiseStageName = "pairwise"

// PairwiseConfig controls one pairwise sweep
type PairwiseConfig struct {
	Method         correlation.Method
	Adjust         correction.Method
	Alpha          float64
	MaxConcurrency int
	MaxVariables   int
	MaxPairs       int
	MaxMissingRate float64       // Pairs with a column above this rate are skipped; 1 disables the check
	MaxRuntime     time.Duration // 0 means unlimited
}

// DefaultPairwiseConfig returns the guardrails used when none are configured
func DefaultPairwiseConfig() PairwiseConfig {
	return PairwiseConfig{
		Method:         correlation.MethodKendall,
		Adjust:         correction.BenjaminiHochberg,
		Alpha:          0.05,
		MaxConcurrency: 8,
		MaxVariables:   2000,
		MaxPairs:       500000,
		MaxMissingRate: 1.0,
		MaxRuntime:     5 * time.Minute,
	}
}

// PairwiseResult holds every artifact one sweep produced
type PairwiseResult struct {
	Manifest      *stats.SweepManifest                 `json:"manifest"`
	Family        *stats.FamilyArtifact                `json:"family"`
	Relationships []*stats.RelationshipArtifact        `json:"relationships"`
	Skipped       []*stats.SkippedRelationshipArtifact `json:"skipped,omitempty"`
}

// PairwiseStage performs statistical tests between variable pairs
type PairwiseStage struct {
	logger *internal.Logger
}

// NewPairwiseStage creates a new pairwise stage
func NewPairwiseStage() *PairwiseStage {
	return &PairwiseStage{logger: internal.DefaultLogger.With("PairwiseStage")}
}

type pairOutcome struct {
	tested  *stats.RelationshipArtifact
	skipped *stats.SkippedRelationshipArtifact
}

// Execute correlates every variable pair (upper triangle only), then corrects
// the tested p-values as one family. Skipped pairs are not part of the family.
func (p *PairwiseStage) Execute(ctx context.Context, runID core.RunID, bundle *dataset.MatrixBundle, cfg PairwiseConfig) (*PairwiseResult, error) {
	if err := p.validate(bundle, cfg); err != nil {
		return nil, err
	}

	startTime := time.Now()
	variables := bundle.Matrix.VariableKeys
	testType := stats.TestType(cfg.Method)
	familyID := core.ComputeFamilyHash(PairwiseStageName, string(testType), cfg.Adjust.String(), variables)

	if cfg.MaxRuntime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.MaxRuntime)
		defer cancel()
	}

	columns := make([][]float64, len(variables))
	for j := range variables {
		columns[j] = bundle.Matrix.Column(j)
	}

	outcomes := make([]pairOutcome, bundle.Matrix.NumPairs())
	sem := semaphore.NewWeighted(int64(cfg.MaxConcurrency))
	g, gctx := errgroup.WithContext(ctx)

	idx := 0
pairs:
	for i := 0; i < len(variables)-1; i++ {
		for j := i + 1; j < len(variables); j++ {
			slot := idx
			idx++
			if err := sem.Acquire(gctx, 1); err != nil {
				break pairs
			}
			g.Go(func() error {
				defer sem.Release(1)
				key := stats.RelationshipKey{
					VariableX: variables[i],
					VariableY: variables[j],
					TestType:  testType,
					FamilyID:  familyID,
				}
				out, err := p.analyzeRelationship(key, columns[i], columns[j], cfg)
				if err != nil {
					return fmt.Errorf("pair %s/%s: %w", variables[i], variables[j], err)
				}
				outcomes[slot] = out
				return gctx.Err()
			})
		}
	}
	err := g.Wait()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("pairwise stage exceeded maximum runtime: %s", cfg.MaxRuntime)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &PairwiseResult{
		Manifest: stats.NewSweepManifest(runID, bundle.Source, bundle.Fingerprint, testType, cfg.Adjust.String()),
	}
	for _, out := range outcomes {
		switch {
		case out.tested != nil:
			result.Relationships = append(result.Relationships, out.tested)
		case out.skipped != nil:
			result.Skipped = append(result.Skipped, out.skipped)
			result.Manifest.RejectionCounts[out.skipped.ReasonCode]++
		}
	}

	discoveries, err := p.applyCorrection(result.Relationships, cfg)
	if err != nil {
		return nil, err
	}

	result.Family = stats.NewFamilyArtifact(PairwiseStageName, testType, cfg.Adjust.String(), variables,
		len(result.Relationships), discoveries, cfg.Alpha)
	result.Manifest.TotalComparisons = len(outcomes)
	result.Manifest.SuccessfulTests = len(result.Relationships)
	result.Manifest.SkippedTests = len(result.Skipped)
	result.Manifest.RuntimeMs = time.Since(startTime).Milliseconds()

	p.logger.Info("Run %s: %d pairs (%d tested, %d skipped, %d significant at %.3g) in %dms, family %s",
		runID, len(outcomes), len(result.Relationships), len(result.Skipped), discoveries, cfg.Alpha,
		result.Manifest.RuntimeMs, familyID.Short())

	return result, nil
}

// validate enforces the performance guardrails before any work starts
func (p *PairwiseStage) validate(bundle *dataset.MatrixBundle, cfg PairwiseConfig) error {
	if bundle == nil {
		return core.NewInvalidArgumentError("bundle", "must not be nil")
	}
	if err := bundle.Validate(); err != nil {
		return err
	}
	if _, err := correlation.ParseMethod(string(cfg.Method)); err != nil {
		return err
	}
	if !cfg.Adjust.Valid() {
		return core.NewInvalidArgumentError("adjust", fmt.Sprintf("unknown correction method %q", cfg.Adjust))
	}
	if cfg.MaxConcurrency < 1 {
		return core.NewInvalidArgumentError("max_concurrency", "must be at least 1")
	}

	numVars := bundle.Matrix.NumVariables()
	if numVars < 2 {
		return core.NewInsufficientDataError("pairwise analysis", numVars, 2)
	}
	if cfg.MaxVariables > 0 && numVars > cfg.MaxVariables {
		return fmt.Errorf("%w: too many variables: %d > %d", core.ErrInvalidArgument, numVars, cfg.MaxVariables)
	}
	if totalPairs := bundle.Matrix.NumPairs(); cfg.MaxPairs > 0 && totalPairs > cfg.MaxPairs {
		return fmt.Errorf("%w: too many variable pairs: %d > %d", core.ErrInvalidArgument, totalPairs, cfg.MaxPairs)
	}
	return nil
}

// analyzeRelationship tests one pair. Degenerate or undersized pairs are
// returned as skipped; any other failure aborts the sweep.
func (p *PairwiseStage) analyzeRelationship(key stats.RelationshipKey, col1, col2 []float64, cfg PairwiseConfig) (pairOutcome, error) {
	x, y := dataset.CompletePairs(col1, col2)
	dq := dataQuality(col1, col2)

	if len(col1) > 0 && (dq.MissingRateX > cfg.MaxMissingRate || dq.MissingRateY > cfg.MaxMissingRate) {
		return pairOutcome{skipped: stats.NewSkippedRelationshipArtifact(key, stats.WarningHighMissing,
			fmt.Sprintf("missing rate above %.2f", cfg.MaxMissingRate), len(x), dq)}, nil
	}

	res, err := correlation.Correlate(cfg.Method, x, y)
	switch {
	case errors.Is(err, core.ErrInsufficientData):
		return pairOutcome{skipped: stats.NewSkippedRelationshipArtifact(key, stats.WarningLowN, err.Error(), len(x), dq)}, nil
	case errors.Is(err, core.ErrDegenerate):
		return pairOutcome{skipped: stats.NewSkippedRelationshipArtifact(key, stats.WarningLowVariance, err.Error(), len(x), dq)}, nil
	case err != nil:
		return pairOutcome{}, err
	}

	artifact, err := stats.NewRelationshipArtifact(key, stats.CanonicalMetrics{
		EffectSize:       res.Coefficient,
		EffectUnit:       key.TestType.EffectUnit(),
		PValue:           res.PValue,
		PAdjusted:        res.PValue,
		SampleSize:       len(x),
		TotalComparisons: 1,
	}, dq)
	if err != nil {
		return pairOutcome{}, err
	}
	return pairOutcome{tested: artifact}, nil
}

// applyCorrection adjusts the family in place and counts discoveries at alpha
func (p *PairwiseStage) applyCorrection(relationships []*stats.RelationshipArtifact, cfg PairwiseConfig) (int, error) {
	if len(relationships) == 0 {
		return 0, nil
	}

	pValues := make([]float64, len(relationships))
	for i, rel := range relationships {
		pValues[i] = rel.Metrics.PValue
	}
	adjusted, err := correction.Adjust(pValues, cfg.Adjust)
	if err != nil {
		return 0, err
	}

	discoveries := 0
	for i, rel := range relationships {
		rel.SetAdjusted(adjusted[i], len(relationships), cfg.Adjust.String())
		if adjusted[i] < cfg.Alpha {
			discoveries++
		}
	}
	return discoveries, nil
}

// dataQuality computes missingness, unique counts and sample variance per column
func dataQuality(col1, col2 []float64) stats.DataQuality {
	mx, ux, vx := columnQuality(col1)
	my, uy, vy := columnQuality(col2)
	return stats.DataQuality{
		MissingRateX: mx,
		MissingRateY: my,
		UniqueCountX: ux,
		UniqueCountY: uy,
		VarianceX:    vx,
		VarianceY:    vy,
	}
}

func columnQuality(col []float64) (missingRate float64, unique int, variance float64) {
	if len(col) == 0 {
		return 0, 0, 0
	}
	valid := make([]float64, 0, len(col))
	seen := make(map[float64]struct{})
	for _, v := range col {
		if math.IsNaN(v) {
			continue
		}
		valid = append(valid, v)
		seen[v] = struct{}{}
	}
	if len(valid) >= 2 {
		variance = stat.Variance(valid, nil)
	}
	return float64(len(col)-len(valid)) / float64(len(col)), len(seen), variance
}
