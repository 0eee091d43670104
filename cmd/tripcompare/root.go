package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spboyer/tripcompare/internal/projectconfig"
	"github.com/spboyer/tripcompare/internal/report"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tripcompare",
		Short: "tripcompare - score and rank travel itineraries",
		Long: `tripcompare scores travel packages against each other.

Each itinerary gets four 0-100 sub-scores (cost efficiency, activity
diversity, time optimization and inclusiveness), a weighted total and a
short rationale. The best package of the comparison is recommended.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Path to a "+projectconfig.FileName+" file (default: search upward from the working directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newBatchCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig honours --config when the command runs under the root and
// otherwise searches upward from the working directory.
func loadConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return projectconfig.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded configuration", "format", cfg.Output.Format, "weights", cfg.EffectiveWeights())
	return cfg, nil
}

// resolveFormat picks the flag value when given, else the configured one.
func resolveFormat(flag string, cfg *projectconfig.ProjectConfig) (report.Format, error) {
	f := flag
	if f == "" {
		f = cfg.Output.Format
	}
	if !slices.Contains(projectconfig.OutputFormats, f) {
		return "", fmt.Errorf("unsupported format %q: must be one of %v", f, projectconfig.OutputFormats)
	}
	return report.Format(f), nil
}
