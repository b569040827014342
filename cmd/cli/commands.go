package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hypokit/adapters/excel"
	"hypokit/adapters/stats/compare"
	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/app"
	"hypokit/domain/stats"
	"hypokit/internal"
	"hypokit/internal/config"
	"hypokit/internal/profiling"
	"hypokit/internal/testkit"
)

// openService builds an analysis service over a spreadsheet, with defaults from the environment
func openService(path string) (*app.AnalysisService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.SetLevel(cfg.Logging.Level)
	return app.NewAnalysisService(excel.NewDataReader(path), cfg.Analysis), nil
}

func newKendallCmd(out *printer) *cobra.Command {
	var xs, ys string

	cmd := &cobra.Command{
		Use:   "kendall",
		Short: "Kendall's tau-b between two paired samples",
		Long: `Compute Kendall's tau-b with its tie-corrected z-score and two-tailed p-value.

Example: hypokit kendall --x 1,2,3,4,5 --y 3,1,4,5,2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseFloats(xs)
			if err != nil {
				return err
			}
			y, err := parseFloats(ys)
			if err != nil {
				return err
			}
			result, err := correlation.KendallsTau(x, y)
			if err != nil {
				return err
			}
			return out.emit(cmd, result, func(w io.Writer) {
				fmt.Fprintf(w, "tau = %s\nz   = %s\np   = %s %s\n", formatFloat(result.Tau), formatFloat(result.ZScore),
					stats.FormatPValue(result.PValue), stats.SignificanceOf(result.PValue))
			})
		},
	}

	cmd.Flags().StringVar(&xs, "x", "", "Comma-separated x values")
	cmd.Flags().StringVar(&ys, "y", "", "Comma-separated y values")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func newCorrelateCmd(out *printer) *cobra.Command {
	var xs, ys, file, methodName string

	cmd := &cobra.Command{
		Use:   "correlate [x-column y-column]",
		Short: "Correlate two samples or two columns of a data file",
		Long: `Correlate two samples given inline, or two numeric columns of a data file.
Rows where either column is missing are dropped.

Examples:
  hypokit correlate --method spearman --x 1,2,3,4 --y 2,4,5,9
  hypokit correlate --file shopping.csv visits spend`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var method correlation.Method
			if methodName != "" {
				var err error
				if method, err = correlation.ParseMethod(methodName); err != nil {
					return err
				}
			}

			if file != "" {
				if len(args) != 2 {
					return fmt.Errorf("correlate with --file needs two column names")
				}
				svc, err := openService(file)
				if err != nil {
					return err
				}
				report, err := svc.Correlate(cmd.Context(), args[0], args[1], method)
				if err != nil {
					return err
				}
				return out.emit(cmd, report, func(w io.Writer) {
					fmt.Fprintf(w, "%s ~ %s\n", report.X, report.Y)
					printCorrelation(w, report.Result)
				})
			}

			if method == "" {
				method = correlation.MethodKendall
			}
			x, err := parseFloats(xs)
			if err != nil {
				return err
			}
			y, err := parseFloats(ys)
			if err != nil {
				return err
			}
			result, err := correlation.Correlate(method, x, y)
			if err != nil {
				return err
			}
			return out.emit(cmd, result, func(w io.Writer) { printCorrelation(w, result) })
		},
	}

	cmd.Flags().StringVar(&xs, "x", "", "Comma-separated x values")
	cmd.Flags().StringVar(&ys, "y", "", "Comma-separated y values")
	cmd.Flags().StringVar(&file, "file", "", "Data file (.xlsx, .csv, .tsv)")
	cmd.Flags().StringVar(&methodName, "method", "", "pearson, kendall or spearman (default kendall)")
	return cmd
}

func printCorrelation(w io.Writer, r correlation.Result) {
	fmt.Fprintf(w, "%s coefficient = %s (n = %d)\np = %s %s\n", r.Method, formatFloat(r.Coefficient), r.N,
		stats.FormatPValue(r.PValue), stats.SignificanceOf(r.PValue))
}

func newKruskalCmd(out *printer) *cobra.Command {
	var groups []string
	var file string
	var alpha float64

	cmd := &cobra.Command{
		Use:   "kruskal [value-column by-column]",
		Short: "Kruskal-Wallis H test across groups",
		Long: `Run the Kruskal-Wallis rank test across two or more groups, given inline
or as a value column split by a grouping column of a data file.

Examples:
  hypokit kruskal --group 2.9,3.0,2.5,2.6,3.2 --group 3.8,2.7,4.0,2.4 --group 2.8,3.4,3.7,2.2,2.0
  hypokit kruskal --file shopping.csv visits segment --alpha 0.01`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var labels []string
			var result compare.KruskalWallisResult

			if file != "" {
				if len(args) != 2 {
					return fmt.Errorf("kruskal with --file needs a value column and a grouping column")
				}
				svc, err := openService(file)
				if err != nil {
					return err
				}
				report, err := svc.KruskalWallis(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				labels, result = report.Groups, report.Result
			} else {
				samples := make([][]float64, len(groups))
				for i, g := range groups {
					values, err := parseFloats(g)
					if err != nil {
						return fmt.Errorf("group %d: %w", i+1, err)
					}
					samples[i] = values
					labels = append(labels, fmt.Sprintf("group%d", i+1))
				}
				var err error
				if result, err = compare.KruskalWallisStatistic(samples...); err != nil {
					return err
				}
			}

			type kruskalOutput struct {
				Groups []string `json:"groups"`
				compare.KruskalWallisResult
				Reject *bool `json:"reject,omitempty"`
			}
			payload := kruskalOutput{Groups: labels, KruskalWallisResult: result}
			if cmd.Flags().Changed("alpha") {
				if alpha <= 0 || alpha >= 1 {
					return fmt.Errorf("--alpha must be in (0, 1)")
				}
				reject := result.PValue < alpha
				payload.Reject = &reject
			}

			return out.emit(cmd, payload, func(w io.Writer) {
				fmt.Fprintf(w, "Groups: %s\n", strings.Join(labels, ", "))
				fmt.Fprintf(w, "H = %s, tie correction = %s, df = %d\np = %s %s\n", formatFloat(result.H),
					formatFloat(result.C), result.DF, stats.FormatPValue(result.PValue), stats.SignificanceOf(result.PValue))
				if payload.Reject != nil {
					fmt.Fprintf(w, "Reject equal distributions at alpha %.3g: %t\n", alpha, *payload.Reject)
				}
			})
		},
	}

	cmd.Flags().StringArrayVar(&groups, "group", nil, "Comma-separated values of one group (repeat per group)")
	cmd.Flags().StringVar(&file, "file", "", "Data file (.xlsx, .csv, .tsv)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Report whether the test rejects at this level")
	return cmd
}

func newAdjustCmd(out *printer) *cobra.Command {
	var methodName string

	cmd := &cobra.Command{
		Use:   "adjust p-values...",
		Short: "Adjust p-values for multiple comparisons",
		Long: `Adjust a family of p-values with one of bonferroni, holm, hommel, hochberg, BH or BY.
Values may be given as separate arguments or comma-separated.

Example: hypokit adjust --method BH 0.01 0.02 0.03 0.04 0.05`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := correction.ParseMethod(methodName)
			if err != nil {
				return err
			}
			pValues, err := parseFloats(strings.Join(args, ","))
			if err != nil {
				return err
			}
			adjusted, err := correction.Adjust(pValues, method)
			if err != nil {
				return err
			}

			payload := struct {
				Method   correction.Method `json:"method"`
				PValues  []float64         `json:"p_values"`
				Adjusted []float64         `json:"adjusted"`
			}{method, pValues, adjusted}
			return out.emit(cmd, payload, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "P\t%s\n", strings.ToUpper(string(method)))
				for i, p := range pValues {
					fmt.Fprintf(tw, "%s\t%s\n", formatFloat(p), formatFloat(adjusted[i]))
				}
				tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&methodName, "method", string(correction.BenjaminiHochberg), "Correction method")
	return cmd
}

func newFilterCmd(out *printer) *cobra.Command {
	var fwer float64

	cmd := &cobra.Command{
		Use:   "filter p-values...",
		Short: "Keep the p-values accepted by Holm's step-down procedure",
		Long: `Sort p-values ascending and keep each one while it stays at or below fwer / (m - i),
stopping at the first that does not.

Example: hypokit filter --fwer 0.05 0.001 0.2 0.01 0.04`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fwer < 0 || fwer > 1 {
				return fmt.Errorf("--fwer must be in [0, 1]")
			}
			pValues, err := parseFloats(strings.Join(args, ","))
			if err != nil {
				return err
			}
			accepted := correction.HolmFilterPValues(pValues, fwer)
			payload := struct {
				FWER     float64   `json:"fwer"`
				Accepted []float64 `json:"accepted"`
			}{fwer, accepted}
			return out.emit(cmd, payload, func(w io.Writer) {
				fmt.Fprintf(w, "%d of %d accepted at FWER %.3g\n", len(accepted), len(pValues), fwer)
				for _, p := range accepted {
					fmt.Fprintln(w, formatFloat(p))
				}
			})
		},
	}

	cmd.Flags().Float64Var(&fwer, "fwer", 0.05, "Family-wise error rate")
	return cmd
}

func newCompareCmd(out *printer) *cobra.Command {
	var groups []string
	var file string
	var req app.CompareRequest

	cmd := &cobra.Command{
		Use:   "compare [value-column by-column]",
		Short: "Compare groups with an overall test and adjusted pairwise tests",
		Long: `Run an overall test across groups and a family of group comparisons, either
between every pair or against a reference group ("all" compares against the pooled data).
Groups with fewer than three values are dropped.

Examples:
  hypokit compare --group ctrl=4.17,5.58,5.18,6.11 --group trt1=4.81,4.17,4.41,3.59 --method t-test
  hypokit compare --file shopping.csv spend segment --ref all --adjust holm`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := req.Options()
			if err != nil {
				return err
			}

			if file != "" {
				if len(args) != 2 {
					return fmt.Errorf("compare with --file needs a value column and a grouping column")
				}
				svc, err := openService(file)
				if err != nil {
					return err
				}
				report, err := svc.Compare(cmd.Context(), args[0], args[1], opts)
				if err != nil {
					return err
				}
				return out.emit(cmd, report, func(w io.Writer) {
					fmt.Fprintf(w, "%s by %s\n", report.Value, report.By)
					printComparison(w, report.Comparison)
				})
			}

			parsed := make([]compare.Group, 0, len(groups))
			for _, g := range groups {
				group, err := parseNamedGroup(g)
				if err != nil {
					return err
				}
				parsed = append(parsed, group)
			}
			comparison, err := compare.CompareMeans(parsed, opts)
			if err != nil {
				return err
			}
			return out.emit(cmd, comparison, func(w io.Writer) { printComparison(w, comparison) })
		},
	}

	cmd.Flags().StringArrayVar(&groups, "group", nil, "One group as name=v1,v2,... (repeat per group)")
	cmd.Flags().StringVar(&file, "file", "", "Data file (.xlsx, .csv, .tsv)")
	cmd.Flags().StringVar(&req.Method, "method", "", "wilcoxon, t-test, anova or kruskal-wallis (default wilcoxon)")
	cmd.Flags().BoolVar(&req.Paired, "paired", false, "Use the paired variant of the test")
	cmd.Flags().StringVar(&req.MultipleGroupsMethod, "multiple-groups-method", "", "Overall test for more than two groups (default kruskal-wallis)")
	cmd.Flags().StringVar(&req.Adjust, "adjust", "", `Correction for the comparisons, or "none" (default bonferroni)`)
	cmd.Flags().StringVar(&req.Ref, "ref", "", `Reference group name, or "all" for the pooled data`)
	return cmd
}

func newDescribeCmd(out *printer) *cobra.Command {
	var groups []string
	var file, stat string

	cmd := &cobra.Command{
		Use:   "describe [value-column [by-column]]",
		Short: "Summarize samples with quartiles, mean and spread",
		Long: `Summarize each group with count, quartiles, extremes, mean, standard deviation
and standard error. --stat adds a plotted point per group: mean_se, mean_sd,
mean_range, median_iqr or box.

Examples:
  hypokit describe --group a=1,2,3,4 --group b=2,4,8 --stat median_iqr
  hypokit describe --file shopping.csv spend segment`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			statFunc := profiling.StatFunc(stat)

			if file != "" {
				if len(args) == 0 {
					return fmt.Errorf("describe with --file needs a value column")
				}
				by := ""
				if len(args) == 2 {
					by = args[1]
				}
				svc, err := openService(file)
				if err != nil {
					return err
				}
				report, err := svc.Describe(cmd.Context(), args[0], by, statFunc)
				if err != nil {
					return err
				}
				return out.emit(cmd, report, func(w io.Writer) { printSummaries(w, report.Summaries, report.Points) })
			}

			named := make([]profiling.NamedValues, 0, len(groups))
			for _, g := range groups {
				group, err := parseNamedGroup(g)
				if err != nil {
					return err
				}
				named = append(named, profiling.NamedValues{Key: group.Name, Values: group.Values})
			}
			summaries, err := profiling.DescribeGroups(named)
			if err != nil {
				return err
			}
			var points []profiling.StatPoint
			if statFunc != "" {
				for _, s := range summaries {
					points = append(points, statFunc.Point(s))
				}
			}
			payload := struct {
				Summaries []profiling.GroupSummary `json:"summaries"`
				Points    []profiling.StatPoint    `json:"points,omitempty"`
			}{summaries, points}
			return out.emit(cmd, payload, func(w io.Writer) { printSummaries(w, summaries, points) })
		},
	}

	cmd.Flags().StringArrayVar(&groups, "group", nil, "One group as name=v1,v2,... (repeat per group)")
	cmd.Flags().StringVar(&file, "file", "", "Data file (.xlsx, .csv, .tsv)")
	cmd.Flags().StringVar(&stat, "stat", "", "Point summary per group")
	return cmd
}

func newPairwiseCmd(out *printer) *cobra.Command {
	var file, methodName, adjustName string
	var top int

	cmd := &cobra.Command{
		Use:   "pairwise [columns...]",
		Short: "Correlate every pair of numeric columns and correct the family",
		Long: `Correlate every pair of the given numeric columns (all numeric columns when none
are named) and adjust the resulting p-values as one family. Pairs that cannot be
tested are reported as skipped and left out of the family.

Example: hypokit pairwise --file shopping.csv --method kendall --adjust BH --top 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			var method correlation.Method
			var adjust correction.Method
			var err error
			if methodName != "" {
				if method, err = correlation.ParseMethod(methodName); err != nil {
					return err
				}
			}
			if adjustName != "" {
				if adjust, err = correction.ParseMethod(adjustName); err != nil {
					return err
				}
			}

			svc, err := openService(file)
			if err != nil {
				return err
			}
			report, err := svc.Pairwise(cmd.Context(), args, method, adjust)
			if err != nil {
				return err
			}
			return out.emit(cmd, report, func(w io.Writer) {
				printPairwise(w, report.PairwiseResult, report.Profiles, top)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Data file (.xlsx, .csv, .tsv)")
	cmd.Flags().StringVar(&methodName, "method", "", "Correlation method (default from CORRELATION_METHOD)")
	cmd.Flags().StringVar(&adjustName, "adjust", "", "Correction method (default from P_ADJUST_METHOD)")
	cmd.Flags().IntVar(&top, "top", 20, "Rows to print, ranked by adjusted p-value (0 for all)")
	return cmd
}

func newGenerateCmd(out *printer) *cobra.Command {
	cfg := testkit.DefaultShoppingConfig()
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic shopping dataset with planted relationships",
		Long: `Generate customers with known structure: visits drive spend, spend lowers the
return rate, segment shifts visits and noise is independent of everything.

Example: hypokit generate --out shopping.xlsx --customers 1000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.CustomerCount < 1 {
				return fmt.Errorf("--customers must be at least 1")
			}
			if cfg.MissingRate < 0 || cfg.MissingRate >= 1 {
				return fmt.Errorf("--missing must be in [0, 1)")
			}
			table := testkit.NewShoppingDataGenerator(cfg).GenerateTable()
			if err := excel.WriteTable(output, table); err != nil {
				return err
			}
			payload := struct {
				Path    string   `json:"path"`
				Rows    int      `json:"rows"`
				Columns []string `json:"columns"`
			}{output, len(table.Rows), table.Headers}
			return out.emit(cmd, payload, func(w io.Writer) {
				fmt.Fprintf(w, "Wrote %d rows to %s\n", len(table.Rows), output)
			})
		},
	}

	cmd.Flags().StringVar(&output, "out", "shopping.csv", "Output file (.xlsx, .csv, .tsv)")
	cmd.Flags().IntVar(&cfg.CustomerCount, "customers", cfg.CustomerCount, "Number of customers")
	cmd.Flags().Float64Var(&cfg.MissingRate, "missing", cfg.MissingRate, "Share of discount_pct cells left empty")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	return cmd
}
