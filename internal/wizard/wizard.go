// Package wizard collects .tripcompare.yaml settings interactively.
package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/projectconfig"
	"golang.org/x/term"
)

// Answers holds the raw values collected by the wizard. Empty fields keep
// the base configuration's value.
type Answers struct {
	Format         string
	Port           string
	MaxItineraries string
	Workers        string
	Weights        string
}

// RunConfigWizard asks for each setting, starting from base. A terminal gets
// a huh form; any other reader is read one answer per line.
func RunConfigWizard(in io.Reader, out io.Writer, base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	if base == nil {
		base = projectconfig.New()
	}

	var (
		a   Answers
		err error
	)
	if isTerminal(in) {
		a, err = runForm(in, out, base)
	} else {
		a, err = runPrompts(in, out, base)
	}
	if err != nil {
		return nil, err
	}
	return a.Apply(base)
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runForm(in io.Reader, out io.Writer, base *projectconfig.ProjectConfig) (Answers, error) {
	a := defaultAnswers(base)

	formatOptions := make([]huh.Option[string], 0, len(projectconfig.OutputFormats))
	for _, f := range projectconfig.OutputFormats {
		formatOptions = append(formatOptions, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Description("Default format for score and batch reports").
				Options(formatOptions...).
				Value(&a.Format),
			huh.NewInput().
				Title("Server port").
				Value(&a.Port).
				Validate(validatePositiveInt("port")),
			huh.NewInput().
				Title("Itineraries per session").
				Description("How many uploads the web session accepts").
				Value(&a.MaxItineraries).
				Validate(validatePositiveInt("itineraries per session")),
			huh.NewInput().
				Title("Batch workers").
				Value(&a.Workers).
				Validate(validatePositiveInt("workers")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Scoring weights").
				Description("cost, activities, pacing, inclusions; must sum to 1.0").
				Placeholder("0.35, 0.25, 0.20, 0.20").
				Value(&a.Weights).
				Validate(func(s string) error {
					_, err := ParseWeights(s)
					return err
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	if err := form.Run(); err != nil {
		return Answers{}, fmt.Errorf("wizard failed: %w", err)
	}
	return a, nil
}

// runPrompts reads one line per setting. A blank line keeps the default.
func runPrompts(in io.Reader, out io.Writer, base *projectconfig.ProjectConfig) (Answers, error) {
	def := defaultAnswers(base)
	scanner := bufio.NewScanner(in)

	ask := func(title, fallback string, validate func(string) error) (string, error) {
		fmt.Fprintf(out, "%s [%s]: ", title, fallback) //nolint:errcheck
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", errors.New("unexpected end of input")
		}
		v := strings.TrimSpace(scanner.Text())
		if v == "" {
			return fallback, nil
		}
		if validate != nil {
			if err := validate(v); err != nil {
				return "", err
			}
		}
		return v, nil
	}

	var a Answers
	var err error
	if a.Format, err = ask("Output format ("+strings.Join(projectconfig.OutputFormats, ", ")+")", def.Format, validateFormat); err != nil {
		return Answers{}, err
	}
	if a.Port, err = ask("Server port", def.Port, validatePositiveInt("port")); err != nil {
		return Answers{}, err
	}
	if a.MaxItineraries, err = ask("Itineraries per session", def.MaxItineraries, validatePositiveInt("itineraries per session")); err != nil {
		return Answers{}, err
	}
	if a.Workers, err = ask("Batch workers", def.Workers, validatePositiveInt("workers")); err != nil {
		return Answers{}, err
	}
	if a.Weights, err = ask("Scoring weights (cost, activities, pacing, inclusions)", def.Weights, func(s string) error {
		_, err := ParseWeights(s)
		return err
	}); err != nil {
		return Answers{}, err
	}
	return a, nil
}

func defaultAnswers(base *projectconfig.ProjectConfig) Answers {
	w := base.EffectiveWeights()
	return Answers{
		Format:         base.Output.Format,
		Port:           strconv.Itoa(base.Server.Port),
		MaxItineraries: strconv.Itoa(base.Server.MaxItineraries),
		Workers:        strconv.Itoa(base.Batch.Workers),
		Weights:        FormatWeights(w),
	}
}

// Apply returns a copy of base with the answers applied and validated.
func (a Answers) Apply(base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	cfg := *base
	if base.Scoring.Weights != nil {
		w := *base.Scoring.Weights
		cfg.Scoring.Weights = &w
	}

	if a.Format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(a.Format))
	}
	var err error
	if cfg.Server.Port, err = intOr(a.Port, cfg.Server.Port); err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	if cfg.Server.MaxItineraries, err = intOr(a.MaxItineraries, cfg.Server.MaxItineraries); err != nil {
		return nil, fmt.Errorf("itineraries per session: %w", err)
	}
	if cfg.Batch.Workers, err = intOr(a.Workers, cfg.Batch.Workers); err != nil {
		return nil, fmt.Errorf("workers: %w", err)
	}
	if strings.TrimSpace(a.Weights) != "" {
		w, err := ParseWeights(a.Weights)
		if err != nil {
			return nil, err
		}
		cfg.Scoring.Weights = &w
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseWeights reads four comma-separated weights in the order cost,
// activities, pacing, inclusions.
func ParseWeights(s string) (models.Weights, error) {
	parts := splitAndTrim(s)
	if len(parts) != 4 {
		return models.Weights{}, fmt.Errorf("expected 4 comma-separated weights, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return models.Weights{}, fmt.Errorf("weight %q is not a number", p)
		}
		vals[i] = v
	}
	w := models.Weights{
		CostEfficiency:    vals[0],
		ActivityDiversity: vals[1],
		TimeOptimization:  vals[2],
		Inclusiveness:     vals[3],
	}
	if err := w.Validate(); err != nil {
		return models.Weights{}, err
	}
	return w, nil
}

// FormatWeights is the inverse of ParseWeights.
func FormatWeights(w models.Weights) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f, %.2f", w.CostEfficiency, w.ActivityDiversity, w.TimeOptimization, w.Inclusiveness)
}

func validateFormat(s string) error {
	s = strings.ToLower(s)
	for _, f := range projectconfig.OutputFormats {
		if f == s {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q", s)
}

func validatePositiveInt(field string) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < 1 {
			return fmt.Errorf("%s must be a positive whole number", field)
		}
		return nil
	}
}

func intOr(s string, fallback int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return v, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
