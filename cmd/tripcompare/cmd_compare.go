package main

import (
	"fmt"

	"github.com/spboyer/tripcompare/internal/report"
	"github.com/spboyer/tripcompare/internal/scoring"
	"github.com/spf13/cobra"
)

var compareOutputFormat string

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <itinerary1> <itinerary2> [itinerary3 ...]",
		Short: "Compare itineraries side by side",
		Long: `Compare two or more itineraries side by side.

Loads the itinerary files, scores them against each other and prints each
sub-score in its own row with the best value marked, followed by the
recommended itinerary and why it won.`,
		Args: cobra.MinimumNArgs(2),
		RunE: compareCommandE,
	}

	cmd.Flags().StringVarP(&compareOutputFormat, "format", "f", "table", "Output format: table or json")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	if compareOutputFormat != "table" && compareOutputFormat != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", compareOutputFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := scoring.NewEngineWithWeights(cfg.EffectiveWeights())
	if err != nil {
		return err
	}

	items, err := loadInputs(args)
	if err != nil {
		return err
	}

	rep := scoreReport(engine, items)

	if compareOutputFormat == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), rep)
	}
	return report.WriteComparison(cmd.OutOrStdout(), rep)
}
