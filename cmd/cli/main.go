package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var asJSON bool

	rootCmd := &cobra.Command{
		Use:           "hypokit",
		Short:         "Rank correlation, group comparison and multiple-testing correction",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	out := &printer{json: &asJSON}
	rootCmd.AddCommand(
		newKendallCmd(out),
		newCorrelateCmd(out),
		newKruskalCmd(out),
		newAdjustCmd(out),
		newFilterCmd(out),
		newCompareCmd(out),
		newDescribeCmd(out),
		newPairwiseCmd(out),
		newGenerateCmd(out),
	)
	return rootCmd
}
