package stats

import (
	"fmt"
	"math"

	"hypokit/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// RelationshipKey uniquely identifies a variable pair relationship
type RelationshipKey struct {
	VariableX core.VariableKey `json:"variable_x"`
	VariableY core.VariableKey `json:"variable_y"`
	TestType  TestType         `json:"test_type"`
	FamilyID  core.Hash        `json:"family_id"` // Family key hash for multiple-testing grouping
}

// CanonicalMetrics contains statistical results that are always comparable
// INVARIANTS:
// - SampleSize (N) always present and > 0
// - PValue and PAdjusted in [0, 1]
type CanonicalMetrics struct {
	EffectSize       float64 `json:"effect_size"`             // Correlation coefficient
	EffectUnit       string  `json:"effect_unit,omitempty"`   // "r", "tau" or "rho"
	PValue           float64 `json:"p_value"`                 // Uncorrected p-value
	PAdjusted        float64 `json:"p_adjusted"`              // Family-corrected p-value
	SampleSize       int     `json:"sample_size"`             // Complete pairs used in the test
	TotalComparisons int     `json:"total_comparisons"`       // Tests in the correction family
	AdjustMethod     string  `json:"adjust_method,omitempty"` // e.g. "BH", "holm"
}

// DataQuality captures data characteristics that affect interpretation
type DataQuality struct {
	MissingRateX float64 `json:"missing_rate_x"`
	MissingRateY float64 `json:"missing_rate_y"`
	UniqueCountX int     `json:"unique_count_x"`
	UniqueCountY int     `json:"unique_count_y"`
	VarianceX    float64 `json:"variance_x"`
	VarianceY    float64 `json:"variance_y"`
}

// WarningCode represents structured warning types
type WarningCode string

const (
	WarningPerfectCorrelation WarningCode = "PERFECT_CORRELATION" // |effect| = 1 (likely data leak/transform)
	WarningLowVariance        WarningCode = "LOW_VARIANCE"        // A variable is constant over the complete pairs
	WarningLowN               WarningCode = "LOW_N"               // Too few complete pairs for the test
	WarningHighMissing        WarningCode = "HIGH_MISSING"        // Missing rate above the stage threshold
)

// ============================================================================
// DOMAIN ARTIFACTS (pairwise stage outputs)
// ============================================================================

// RelationshipArtifact represents one tested variable pair
type RelationshipArtifact struct {
	Key          RelationshipKey   `json:"key"`
	Metrics      CanonicalMetrics  `json:"metrics"`
	DataQuality  DataQuality       `json:"data_quality"`
	Significance SignificanceLevel `json:"significance"`
	Warnings     []WarningCode     `json:"warnings,omitempty"`
	Fingerprint  core.Hash         `json:"fingerprint"`
	DiscoveredAt core.Timestamp    `json:"discovered_at"`
}

// SkippedRelationshipArtifact records why a variable pair was not tested
type SkippedRelationshipArtifact struct {
	Key         RelationshipKey `json:"key"`
	ReasonCode  WarningCode     `json:"reason_code"`
	Detail      string          `json:"detail,omitempty"`
	SampleSize  int             `json:"sample_size"`
	DataQuality DataQuality     `json:"data_quality"`
	FirstSeenAt core.Timestamp  `json:"first_seen_at"`
}

// FamilyArtifact defines one multiple-testing correction family
type FamilyArtifact struct {
	FamilyID     core.Hash          `json:"family_id"`
	StageName    string             `json:"stage_name"`
	TestType     TestType           `json:"test_type"`
	AdjustMethod string             `json:"adjust_method"`
	Variables    []core.VariableKey `json:"variables"`
	NumTests     int                `json:"num_tests"`
	Discoveries  int                `json:"discoveries"` // Adjusted p-values below alpha
	Alpha        float64            `json:"alpha"`
	CreatedAt    core.Timestamp     `json:"created_at"`
}

// ============================================================================
// SWEEP METADATA (Complete audit trail)
// ============================================================================

// SweepManifest records the settings and outcome of a pairwise sweep
type SweepManifest struct {
	RunID           core.RunID `json:"run_id"`
	Source          string     `json:"source"`
	DataFingerprint core.Hash  `json:"data_fingerprint"`
	TestType        TestType   `json:"test_type"`
	AdjustMethod    string     `json:"adjust_method"`

	RuntimeMs        int64 `json:"runtime_ms"`
	TotalComparisons int   `json:"total_comparisons"` // Pairs evaluated
	SuccessfulTests  int   `json:"successful_tests"`  // Pairs that produced a p-value
	SkippedTests     int   `json:"skipped_tests"`     // Pairs skipped before testing

	RejectionCounts map[WarningCode]int `json:"rejection_counts"`

	CreatedAt core.Timestamp `json:"created_at"`
}

// ============================================================================
// TYPE DEFINITIONS
// ============================================================================

// TestType defines the statistical test performed
type TestType string

const (
	TestPearson  TestType = "pearson"  // Pearson correlation
	TestSpearman TestType = "spearman" // Spearman rank correlation
	TestKendall  TestType = "kendall"  // Kendall tau-b correlation
)

// EffectUnit returns the conventional symbol for the test's coefficient
func (t TestType) EffectUnit() string {
	switch t {
	case TestPearson:
		return "r"
	case TestSpearman:
		return "rho"
	case TestKendall:
		return "tau"
	}
	return ""
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// NewRelationshipArtifact creates a new relationship artifact with validation
func NewRelationshipArtifact(key RelationshipKey, metrics CanonicalMetrics, dq DataQuality) (*RelationshipArtifact, error) {
	if err := validateRelationshipArtifact(key, metrics); err != nil {
		return nil, err
	}

	var warnings []WarningCode
	if math.Abs(metrics.EffectSize) == 1 {
		warnings = append(warnings, WarningPerfectCorrelation)
	}

	return &RelationshipArtifact{
		Key:          key,
		Metrics:      metrics,
		DataQuality:  dq,
		Significance: SignificanceOf(metrics.PAdjusted),
		Warnings:     warnings,
		Fingerprint:  computeRelationshipFingerprint(key, metrics),
		DiscoveredAt: core.Now(),
	}, nil
}

// MustNewRelationshipArtifact creates a relationship artifact (panics on invalid input)
// Use only in tests
func MustNewRelationshipArtifact(key RelationshipKey, metrics CanonicalMetrics) *RelationshipArtifact {
	artifact, err := NewRelationshipArtifact(key, metrics, DataQuality{})
	if err != nil {
		panic(err)
	}
	return artifact
}

// SetAdjusted records the family correction on the artifact
func (r *RelationshipArtifact) SetAdjusted(pAdjusted float64, total int, method string) {
	r.Metrics.PAdjusted = pAdjusted
	r.Metrics.TotalComparisons = total
	r.Metrics.AdjustMethod = method
	r.Significance = SignificanceOf(pAdjusted)
	r.Fingerprint = computeRelationshipFingerprint(r.Key, r.Metrics)
}

// validateRelationshipArtifact checks invariants for relationship artifacts
func validateRelationshipArtifact(key RelationshipKey, metrics CanonicalMetrics) error {
	if metrics.SampleSize <= 0 {
		return fmt.Errorf("SampleSize must be > 0, got %d", metrics.SampleSize)
	}
	if !(metrics.PValue >= 0.0 && metrics.PValue <= 1.0) {
		return fmt.Errorf("PValue must be in [0.0, 1.0], got %f", metrics.PValue)
	}
	if key.FamilyID == "" {
		return fmt.Errorf("FamilyID must be set")
	}
	if key.VariableX == "" || key.VariableY == "" {
		return fmt.Errorf("VariableX and VariableY must be set")
	}
	return nil
}

// NewSkippedRelationshipArtifact creates a skipped relationship artifact
func NewSkippedRelationshipArtifact(key RelationshipKey, reason WarningCode, detail string, n int, dq DataQuality) *SkippedRelationshipArtifact {
	return &SkippedRelationshipArtifact{
		Key:         key,
		ReasonCode:  reason,
		Detail:      detail,
		SampleSize:  n,
		DataQuality: dq,
		FirstSeenAt: core.Now(),
	}
}

// NewFamilyArtifact creates a correction family definition
func NewFamilyArtifact(stageName string, testType TestType, adjustMethod string, variables []core.VariableKey, numTests, discoveries int, alpha float64) *FamilyArtifact {
	return &FamilyArtifact{
		FamilyID:     core.ComputeFamilyHash(stageName, string(testType), adjustMethod, variables),
		StageName:    stageName,
		TestType:     testType,
		AdjustMethod: adjustMethod,
		Variables:    variables,
		NumTests:     numTests,
		Discoveries:  discoveries,
		Alpha:        alpha,
		CreatedAt:    core.Now(),
	}
}

// NewSweepManifest creates an empty manifest for one run
func NewSweepManifest(runID core.RunID, source string, fingerprint core.Hash, testType TestType, adjustMethod string) *SweepManifest {
	return &SweepManifest{
		RunID:           runID,
		Source:          source,
		DataFingerprint: fingerprint,
		TestType:        testType,
		AdjustMethod:    adjustMethod,
		RejectionCounts: make(map[WarningCode]int),
		CreatedAt:       core.Now(),
	}
}

func computeRelationshipFingerprint(key RelationshipKey, metrics CanonicalMetrics) core.Hash {
	data := fmt.Sprintf("%s|%s|%s|%s|%.12g|%.12g|%.12g|%d",
		key.VariableX, key.VariableY, key.TestType, key.FamilyID,
		metrics.EffectSize, metrics.PValue, metrics.PAdjusted, metrics.SampleSize)
	return core.NewHash([]byte(data))
}
