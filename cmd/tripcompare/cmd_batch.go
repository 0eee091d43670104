package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spboyer/tripcompare/internal/cache"
	"github.com/spboyer/tripcompare/internal/ingest"
	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/report"
	"github.com/spboyer/tripcompare/internal/scoring"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBatchCommand() *cobra.Command {
	var (
		format   string
		workers  int
		cacheDir string
	)

	cmd := &cobra.Command{
		Use:   "batch <dir> [dir ...]",
		Short: "Score several independent comparisons at once",
		Long: `Score several independent comparisons concurrently.

Each directory is one comparison: its itinerary files are scored against
each other only. Directories are processed in parallel, limited by
--workers, and reports are printed in argument order.

With --cache-dir, reports are stored by cohort content and weights and
reused when the same directory is scored again unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			f, err := resolveFormat(format, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Batch.Workers
			}
			if !cmd.Flags().Changed("cache-dir") {
				cacheDir = cfg.Batch.CacheDir
			}
			if workers < 1 {
				return fmt.Errorf("--workers must be positive, got %d", workers)
			}
			engine, err := scoring.NewEngineWithWeights(cfg.EffectiveWeights())
			if err != nil {
				return err
			}

			reports, err := scoreDirs(cmd, engine, cache.New(cacheDir), args, workers)
			if err != nil {
				return err
			}
			return writeBatch(cmd.OutOrStdout(), reports, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json, yaml, markdown or html (default from config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Directories scored in parallel (default from config)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Reuse reports of unchanged directories from this cache directory")

	return cmd
}

// scoreDirs scores each directory as its own cohort. Results keep the order
// of dirs regardless of completion order.
func scoreDirs(cmd *cobra.Command, engine *scoring.Engine, c *cache.Cache, dirs []string, workers int) ([]*report.Report, error) {
	reports := make([]*report.Report, len(dirs))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)

	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items, err := ingest.LoadDir(dir)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no itinerary files in %s", dir)
			}

			rep := cachedReport(c, engine, items)
			rep.Title = dir
			reports[i] = rep

			recommended := ""
			if rep.Recommendation != nil {
				recommended = rep.Recommendation.Recommended
			}
			slog.Info("scored cohort", "dir", dir, "itineraries", len(items), "recommended", recommended)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// cachedReport returns the cached report for items when there is one and
// scores them otherwise. Cache failures only cost a rescore.
func cachedReport(c *cache.Cache, engine *scoring.Engine, items []*models.Itinerary) *report.Report {
	if !c.Enabled() {
		return scoreReport(engine, items)
	}

	key, err := cache.Key(items, engine.Weights())
	if err != nil {
		slog.Warn("cache key failed", "error", err)
		return scoreReport(engine, items)
	}
	if rep, ok := c.Get(key); ok {
		slog.Debug("cache hit", "key", key)
		return rep
	}

	rep := scoreReport(engine, items)
	if err := c.Put(key, rep); err != nil {
		slog.Warn("cache write failed", "error", err)
	}
	return rep
}

func writeBatch(w io.Writer, reports []*report.Report, format report.Format) error {
	switch format {
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case report.FormatYAML:
		for _, rep := range reports {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
			if err := report.WriteYAML(w, rep); err != nil {
				return err
			}
		}
		return nil
	}

	for i, rep := range reports {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if format == report.FormatTable {
			if _, err := fmt.Fprintf(w, "%s\n", rep.Title); err != nil {
				return err
			}
		}
		if err := report.Write(w, rep, format); err != nil {
			return err
		}
	}
	return nil
}
