package compare

import (
	"encoding/json"
	"fmt"
	"math"

	"hypokit/adapters/stats/correction"
	"hypokit/domain/core"
	"hypokit/domain/stats"
)

// AllGroupsLabel names the pooled reference in comparison rows.
const AllGroupsLabel = ".all."

// minGroupSize is the smallest group that takes part in a comparison.
const minGroupSize = 3

// Group is a named sample
type Group struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// RefGroup selects the reference for one-vs-reference comparisons: either a
// named group or the pooled data of every group.
type RefGroup struct {
	name string
	all  bool
}

// RefAll compares every group against the pooled data.
func RefAll() *RefGroup { return &RefGroup{all: true} }

// RefOf compares every group against the named group.
func RefOf(name string) *RefGroup { return &RefGroup{name: name} }

// ParseRefGroup maps "" to nil, "all" to RefAll and anything else to RefOf.
func ParseRefGroup(s string) *RefGroup {
	switch s {
	case "":
		return nil
	case "all", AllGroupsLabel:
		return RefAll()
	}
	return RefOf(s)
}

// Label is the group name used in result rows
func (r *RefGroup) Label() string {
	if r.all {
		return AllGroupsLabel
	}
	return r.name
}

// Options configures CompareMeans
type Options struct {
	Method               TestMethod         // test for each comparison; default Wilcoxon
	Paired               bool               // paired variant, when Method supports one
	MultipleGroupsMethod TestMethod         // overall test for > 2 groups; default KruskalWallisTest
	Adjust               *correction.Method // nil leaves p-values unadjusted
	Ref                  *RefGroup          // nil compares all pairs
}

// DefaultOptions mirrors the usual compare-means defaults: Wilcoxon per
// comparison, Kruskal-Wallis overall and Bonferroni adjustment.
func DefaultOptions() Options {
	adj := correction.Bonferroni
	return Options{
		Method:               Wilcoxon,
		MultipleGroupsMethod: KruskalWallisTest,
		Adjust:               &adj,
	}
}

// Row is a single group-vs-group comparison
type Row struct {
	Group1       string                  `json:"group1"`
	Group2       string                  `json:"group2"`
	Method       TestMethod              `json:"method"`
	PValue       float64                 `json:"p_value"`
	PAdjusted    float64                 `json:"p_adjusted"`
	PFormatted   string                  `json:"p_formatted"`
	Significance stats.SignificanceLevel `json:"significance"`
}

// Comparison is the outcome of CompareMeans
type Comparison struct {
	Groups              []string                `json:"groups"`
	OverallMethod       TestMethod              `json:"overall_method"`
	OverallPValue       float64                 `json:"overall_p_value"`
	OverallPFormatted   string                  `json:"overall_p_formatted"`
	OverallSignificance stats.SignificanceLevel `json:"overall_significance"`
	AdjustMethod        string                  `json:"adjust_method,omitempty"`
	Rows                []Row                   `json:"rows"`
}

// CompareMeans runs an overall test across groups and a family of
// comparisons between them, adjusting the family's p-values.
//
// Groups with fewer than three values are dropped. The overall p-value uses
// opts.Method, or opts.MultipleGroupsMethod when Method is a two-sample test
// and more than two groups remain; it is NaN when fewer than two groups
// remain. Without a reference every pair (i, j) with j < i is compared;
// with one, every other group is compared against it.
func CompareMeans(groups []Group, opts Options) (*Comparison, error) {
	if opts.Method == "" {
		opts.Method = Wilcoxon
	}
	if opts.MultipleGroupsMethod == "" {
		opts.MultipleGroupsMethod = KruskalWallisTest
	}
	if opts.Paired && !opts.Method.SupportsPaired() {
		return nil, core.NewInvalidArgumentError("paired",
			fmt.Sprintf("%s does not support paired test", opts.Method))
	}
	if !opts.MultipleGroupsMethod.MultipleGroups() {
		return nil, core.NewInvalidArgumentError("multiple_groups_method",
			fmt.Sprintf("%s cannot compare more than 2 groups", opts.MultipleGroupsMethod))
	}

	kept := make([]Group, 0, len(groups))
	for _, g := range groups {
		if len(g.Values) >= minGroupSize {
			kept = append(kept, g)
		}
	}

	result := &Comparison{
		Groups:        make([]string, len(kept)),
		OverallMethod: opts.Method,
		OverallPValue: math.NaN(),
		Rows:          []Row{},
	}
	for i, g := range kept {
		result.Groups[i] = g.Name
	}
	if !opts.Method.MultipleGroups() && len(kept) > 2 {
		result.OverallMethod = opts.MultipleGroupsMethod
	}

	if len(kept) >= 2 {
		samples := make([][]float64, len(kept))
		for i, g := range kept {
			samples[i] = g.Values
		}
		p, err := result.OverallMethod.PValue(false, samples...)
		if err != nil {
			return nil, fmt.Errorf("overall %s: %w", result.OverallMethod, err)
		}
		result.OverallPValue = p
	}
	result.OverallPFormatted = stats.FormatPValue(result.OverallPValue)
	result.OverallSignificance = stats.SignificanceOf(result.OverallPValue)

	rows, err := compareRows(kept, opts)
	if err != nil {
		return nil, err
	}

	if opts.Adjust != nil && len(rows) > 0 {
		raw := make([]float64, len(rows))
		for i, r := range rows {
			raw[i] = r.PValue
		}
		adjusted, err := correction.Adjust(raw, *opts.Adjust)
		if err != nil {
			return nil, fmt.Errorf("adjusting %d p-values: %w", len(raw), err)
		}
		for i := range rows {
			rows[i].PAdjusted = adjusted[i]
		}
		result.AdjustMethod = opts.Adjust.String()
	}

	for i := range rows {
		rows[i].Significance = stats.SignificanceOf(rows[i].PAdjusted)
		rows[i].PFormatted = stats.FormatPValue(rows[i].PAdjusted)
	}
	result.Rows = rows
	return result, nil
}

func compareRows(groups []Group, opts Options) ([]Row, error) {
	var rows []Row
	add := func(name1, name2 string, a, b []float64) error {
		p, err := opts.Method.PValue(opts.Paired, a, b)
		if err != nil {
			return fmt.Errorf("%s vs %s: %w", name1, name2, err)
		}
		rows = append(rows, Row{Group1: name1, Group2: name2, Method: opts.Method, PValue: p, PAdjusted: p})
		return nil
	}

	if opts.Ref == nil {
		for i := range groups {
			for j := 0; j < i; j++ {
				if err := add(groups[i].Name, groups[j].Name, groups[i].Values, groups[j].Values); err != nil {
					return nil, err
				}
			}
		}
		return rows, nil
	}

	var refData []float64
	if opts.Ref.all {
		for _, g := range groups {
			refData = append(refData, g.Values...)
		}
	} else {
		found := false
		for _, g := range groups {
			if g.Name == opts.Ref.name {
				refData, found = g.Values, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", core.ErrGroupNotFound, opts.Ref.name)
		}
	}

	for _, g := range groups {
		if !opts.Ref.all && g.Name == opts.Ref.name {
			continue
		}
		if err := add(opts.Ref.Label(), g.Name, refData, g.Values); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// MarshalJSON renders a missing overall p-value as null
func (c Comparison) MarshalJSON() ([]byte, error) {
	type alias Comparison
	return json.Marshal(struct {
		alias
		OverallPValue *float64 `json:"overall_p_value"`
	}{alias(c), core.FiniteOrNil(c.OverallPValue)})
}
