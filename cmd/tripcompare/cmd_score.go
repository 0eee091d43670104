package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spboyer/tripcompare/internal/cohort"
	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/projectconfig"
	"github.com/spboyer/tripcompare/internal/report"
	"github.com/spboyer/tripcompare/internal/scoring"
	"github.com/spf13/cobra"
)

type scoreOptions struct {
	format       string
	output       string
	title        string
	minBudget    float64
	maxBudget    float64
	minNights    int
	maxNights    int
	destinations []string
}

func newScoreCommand() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score <itinerary|dir> [itinerary|dir ...]",
		Short: "Score and rank itineraries against each other",
		Long: `Score every itinerary against the whole comparison and rank them.

Arguments may be .json, .yaml or .yml itinerary files or directories of them.
Filter flags narrow the comparison before scoring, so cost efficiency is
always relative to the itineraries that remain. Filter defaults come from the
filter section of .tripcompare.yaml.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scoreCommandE(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: table, json, yaml, markdown or html (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&opts.title, "title", "", "Report title for markdown and html output")
	cmd.Flags().Float64Var(&opts.minBudget, "min-budget", 0, "Drop itineraries cheaper than this total")
	cmd.Flags().Float64Var(&opts.maxBudget, "max-budget", 0, "Drop itineraries more expensive than this total")
	cmd.Flags().IntVar(&opts.minNights, "min-nights", 0, "Drop itineraries shorter than this many nights")
	cmd.Flags().IntVar(&opts.maxNights, "max-nights", 0, "Drop itineraries longer than this many nights")
	cmd.Flags().StringSliceVar(&opts.destinations, "destination", nil, "Keep only itineraries visiting one of these destinations (repeatable)")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, args []string, opts *scoreOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(opts.format, cfg)
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

	filter := buildFilter(cmd, cfg, opts)
	selected := filter.Apply(items)
	if len(selected) == 0 {
		return errors.New("no itineraries match the filter")
	}

	rep := scoreReport(engine, selected)
	rep.Title = opts.title

	return writeReport(cmd.OutOrStdout(), opts.output, rep, format)
}

// buildFilter starts from the configured filter and applies any flag the
// user set explicitly.
func buildFilter(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, opts *scoreOptions) cohort.Filter {
	f := cohort.Filter{
		MinBudget:    cfg.Filter.MinBudget,
		MaxBudget:    cfg.Filter.MaxBudget,
		MinNights:    cfg.Filter.MinNights,
		MaxNights:    cfg.Filter.MaxNights,
		Destinations: cfg.Filter.Destinations,
	}
	flags := cmd.Flags()
	if flags.Changed("min-budget") {
		f.MinBudget = opts.minBudget
	}
	if flags.Changed("max-budget") {
		f.MaxBudget = opts.maxBudget
	}
	if flags.Changed("min-nights") {
		f.MinNights = opts.minNights
	}
	if flags.Changed("max-nights") {
		f.MaxNights = opts.maxNights
	}
	if flags.Changed("destination") {
		f.Destinations = opts.destinations
	}
	return f
}

func scoreReport(engine *scoring.Engine, items []*models.Itinerary) *report.Report {
	return report.Build(items, engine.ScoreCohort(items), engine.Weights())
}

// writeReport renders rep to path, or to w when path is empty.
func writeReport(w io.Writer, path string, rep *report.Report, format report.Format) error {
	if path == "" {
		return report.Write(w, rep, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.Write(f, rep, format); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "Report written to %s\n", path) //nolint:errcheck
	return nil
}
