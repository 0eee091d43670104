package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spboyer/tripcompare/internal/ingest"
	"github.com/spboyer/tripcompare/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <itinerary|dir> [itinerary|dir ...]",
		Short: "Check itinerary files against the schema",
		Long: `Check itinerary files against the itinerary schema and report
data-quality warnings such as a missing name or duration.

Exits with code 1 when any file fails the schema. Warnings never fail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateCommandE,
	}
	return cmd
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no itinerary files found")
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, p := range paths {
		if !validateOne(out, p) {
			failed++
		}
	}

	fmt.Fprintf(out, "\n%d file(s) checked, %d failed\n", len(paths), failed) //nolint:errcheck
	if failed > 0 {
		return &ValidationFailedError{
			Message: fmt.Sprintf("%d of %d itinerary file(s) failed validation", failed, len(paths)),
		}
	}
	return nil
}

// validateOne prints the result for a single file and reports whether it
// passed the schema.
func validateOne(out io.Writer, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "✗ %s\n    %v\n", path, err) //nolint:errcheck
		return false
	}

	it, err := ingest.Parse(data, validation.FormatForPath(path))
	if err != nil {
		fmt.Fprintf(out, "✗ %s\n", path) //nolint:errcheck
		var se *ingest.SchemaError
		if errors.As(err, &se) {
			for _, p := range se.Problems {
				fmt.Fprintf(out, "    %s\n", p) //nolint:errcheck
			}
		} else {
			fmt.Fprintf(out, "    %v\n", err) //nolint:errcheck
		}
		return false
	}

	fmt.Fprintf(out, "✓ %s\n", path) //nolint:errcheck
	for _, w := range ingest.Check(it) {
		fmt.Fprintf(out, "    ! %s\n", w) //nolint:errcheck
	}
	return true
}
