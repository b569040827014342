package stages

import (
	"context"
	"math"

	"hypokit/domain/core"
	"hypokit/domain/dataset"
	"hypokit/internal"
	"hypokit/internal/profiling"
)

// highCardinalityRatio marks a column whose values are almost all distinct
const highCardinalityRatio = 0.9

// VariableProfile contains the statistical profile of a single variable
type VariableProfile struct {
	VariableKey     core.VariableKey        `json:"variable_key"`
	SampleSize      int                     `json:"sample_size"`
	MissingRate     float64                 `json:"missing_rate"`
	Cardinality     int                     `json:"cardinality"`
	ZeroVariance    bool                    `json:"zero_variance"`
	HighCardinality bool                    `json:"high_cardinality"`
	Summary         *profiling.GroupSummary `json:"summary,omitempty"` // nil when every value is missing
	Shape           *profiling.Shape        `json:"shape,omitempty"`
}

// ProfileStage analyzes individual variables for statistical properties
type ProfileStage struct {
	logger *internal.Logger
}

// NewProfileStage creates a new profile stage
func NewProfileStage() *ProfileStage {
	return &ProfileStage{logger: internal.DefaultLogger.With("ProfileStage")}
}

// Execute profiles every variable in the matrix bundle
func (p *ProfileStage) Execute(ctx context.Context, bundle *dataset.MatrixBundle) ([]VariableProfile, error) {
	if bundle == nil {
		return nil, core.NewInvalidArgumentError("bundle", "must not be nil")
	}

	profiles := make([]VariableProfile, 0, bundle.Matrix.NumVariables())
	for i, varKey := range bundle.Matrix.VariableKeys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		profile, err := p.profileVariable(varKey, bundle.Matrix.Column(i))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	p.logger.Debug("Profiled %d variables from %s", len(profiles), bundle.Source)
	return profiles, nil
}

// profileVariable analyzes a single variable column
func (p *ProfileStage) profileVariable(varKey core.VariableKey, column []float64) (VariableProfile, error) {
	profile := VariableProfile{VariableKey: varKey, SampleSize: len(column)}
	if len(column) == 0 {
		return profile, nil
	}

	valid := make([]float64, 0, len(column))
	valueSet := make(map[float64]struct{})
	for _, v := range column {
		if !math.IsNaN(v) {
			valid = append(valid, v)
			valueSet[v] = struct{}{}
		}
	}

	profile.MissingRate = 1.0 - float64(len(valid))/float64(len(column))
	profile.Cardinality = len(valueSet)
	profile.ZeroVariance = len(valueSet) <= 1
	if len(valid) == 0 {
		return profile, nil
	}
	profile.HighCardinality = float64(len(valueSet))/float64(len(valid)) > highCardinalityRatio

	summary, err := profiling.Describe(string(varKey), valid)
	if err != nil {
		return profile, err
	}
	shape, err := profiling.DescribeShape(valid)
	if err != nil {
		return profile, err
	}
	profile.Summary = &summary
	profile.Shape = &shape
	return profile, nil
}
