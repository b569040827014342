package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hypokit/adapters/stats/compare"
	"hypokit/adapters/stats/stages"
	"hypokit/domain/stats"
	"hypokit/internal/profiling"
)

// printer writes either indented JSON or a human-readable rendering
type printer struct {
	json *bool
}

func (p *printer) emit(cmd *cobra.Command, v interface{}, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if p.json != nil && *p.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

// parseFloats reads a comma- or whitespace-separated list of numbers
func parseFloats(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		values = append(values, v)
	}
	return values, nil
}

// parseNamedGroup reads "name=v1,v2,..."
func parseNamedGroup(s string) (compare.Group, error) {
	name, values, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return compare.Group{}, fmt.Errorf("group %q must look like name=v1,v2,...", s)
	}
	parsed, err := parseFloats(values)
	if err != nil {
		return compare.Group{}, fmt.Errorf("group %q: %w", name, err)
	}
	return compare.Group{Name: name, Values: parsed}, nil
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NA"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func printComparison(w io.Writer, c *compare.Comparison) {
	fmt.Fprintf(w, "Overall (%s): p = %s %s\n", c.OverallMethod, c.OverallPFormatted, c.OverallSignificance)
	if len(c.Rows) == 0 {
		return
	}
	if c.AdjustMethod != "" {
		fmt.Fprintf(w, "Adjustment: %s\n", c.AdjustMethod)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP1\tGROUP2\tMETHOD\tP\tP.ADJ\tSIGNIF")
	for _, r := range c.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Group1, r.Group2, r.Method, r.PFormatted, stats.FormatPValue(r.PAdjusted), r.Significance)
	}
	tw.Flush()
}

func printSummaries(w io.Writer, summaries []profiling.GroupSummary, points []profiling.StatPoint) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := "KEY\tN\tMIN\tQ1\tMEDIAN\tQ3\tMAX\tMEAN\tSD\tSE"
	if len(points) > 0 {
		header += "\tPOINT"
	}
	fmt.Fprintln(tw, header)
	for i, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s",
			s.Key, s.Count, formatFloat(s.Min), formatFloat(s.Q1), formatFloat(s.Median), formatFloat(s.Q3),
			formatFloat(s.Max), formatFloat(s.Mean), formatFloat(s.StdDev), formatFloat(s.StdErr))
		if i < len(points) {
			p := points[i]
			fmt.Fprintf(tw, "\t%s [%s, %s]", formatFloat(p.Middle), formatFloat(p.Lower), formatFloat(p.Upper))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

func printPairwise(w io.Writer, result *stages.PairwiseResult, profiles []stages.VariableProfile, top int) {
	m := result.Manifest
	fmt.Fprintf(w, "Run %s over %s (%s, %s)\n", m.RunID, m.Source, m.TestType, m.AdjustMethod)
	fmt.Fprintf(w, "Pairs: %d tested, %d skipped, %d discoveries at alpha %.3g (%d ms)\n",
		m.SuccessfulTests, m.SkippedTests, result.Family.Discoveries, result.Family.Alpha, m.RuntimeMs)

	ranked := slices.Clone(result.Relationships)
	slices.SortStableFunc(ranked, func(a, b *stats.RelationshipArtifact) int {
		switch {
		case a.Metrics.PAdjusted < b.Metrics.PAdjusted:
			return -1
		case a.Metrics.PAdjusted > b.Metrics.PAdjusted:
			return 1
		}
		return 0
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "X\tY\tEFFECT\tN\tP\tP.ADJ\tSIGNIF\tWARNINGS")
	for _, r := range ranked {
		warnings := make([]string, len(r.Warnings))
		for i, code := range r.Warnings {
			warnings[i] = string(code)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s=%s\t%d\t%s\t%s\t%s\t%s\n",
			r.Key.VariableX, r.Key.VariableY, r.Metrics.EffectUnit, formatFloat(r.Metrics.EffectSize),
			r.Metrics.SampleSize, stats.FormatPValue(r.Metrics.PValue), stats.FormatPValue(r.Metrics.PAdjusted),
			r.Significance, strings.Join(warnings, ","))
	}
	tw.Flush()

	for _, s := range result.Skipped {
		fmt.Fprintf(w, "skipped %s ~ %s: %s %s\n", s.Key.VariableX, s.Key.VariableY, s.ReasonCode, s.Detail)
	}
	for _, p := range profiles {
		if p.ZeroVariance || p.HighCardinality {
			fmt.Fprintf(w, "note %s: zero variance=%t, high cardinality=%t\n", p.VariableKey, p.ZeroVariance, p.HighCardinality)
		}
	}
}
