// Package projectconfig provides the ProjectConfig struct and loader for
// .tripcompare.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spboyer/tripcompare/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by Load.
const FileName = ".tripcompare.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultOutputFormat   = "table"
	DefaultServerPort     = 3000
	DefaultMaxItineraries = 3
	DefaultWorkers        = 4
)

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"table", "json", "yaml", "markdown", "html"}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ScoringConfig holds scoring engine settings.
type ScoringConfig struct {
	Weights *models.Weights `yaml:"weights,omitempty"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port           int `yaml:"port,omitempty"`
	MaxItineraries int `yaml:"max_itineraries,omitempty"`
}

// BatchConfig holds batch scoring settings.
type BatchConfig struct {
	Workers  int    `yaml:"workers,omitempty"`
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// FilterConfig is the default cohort filter applied by the score command.
type FilterConfig struct {
	MinBudget    float64  `yaml:"min_budget,omitempty"`
	MaxBudget    float64  `yaml:"max_budget,omitempty"`
	MinNights    int      `yaml:"min_nights,omitempty"`
	MaxNights    int      `yaml:"max_nights,omitempty"`
	Destinations []string `yaml:"destinations,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .tripcompare.yaml.
type ProjectConfig struct {
	Scoring ScoringConfig `yaml:"scoring,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Batch   BatchConfig   `yaml:"batch,omitempty"`
	Filter  FilterConfig  `yaml:"filter,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	w := models.DefaultWeights()
	return &ProjectConfig{
		Scoring: ScoringConfig{Weights: &w},
		Output:  OutputConfig{Format: DefaultOutputFormat},
		Server: ServerConfig{
			Port:           DefaultServerPort,
			MaxItineraries: DefaultMaxItineraries,
		},
		Batch: BatchConfig{Workers: DefaultWorkers},
	}
}

// Load finds .tripcompare.yaml by walking up from startDir (max 10 levels),
// unmarshals it, fills in missing fields with defaults and validates the
// result. If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return parse(data)
}

// LoadFile reads the configuration at an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*ProjectConfig, error) {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .tripcompare.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found and propagates
// real I/O errors.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Scoring.Weights != nil && !src.Scoring.Weights.IsZero() {
		w := *src.Scoring.Weights
		dst.Scoring.Weights = &w
	}

	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}

	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.MaxItineraries != 0 {
		dst.Server.MaxItineraries = src.Server.MaxItineraries
	}

	if src.Batch.Workers != 0 {
		dst.Batch.Workers = src.Batch.Workers
	}
	if src.Batch.CacheDir != "" {
		dst.Batch.CacheDir = src.Batch.CacheDir
	}

	if src.Filter.MinBudget != 0 {
		dst.Filter.MinBudget = src.Filter.MinBudget
	}
	if src.Filter.MaxBudget != 0 {
		dst.Filter.MaxBudget = src.Filter.MaxBudget
	}
	if src.Filter.MinNights != 0 {
		dst.Filter.MinNights = src.Filter.MinNights
	}
	if src.Filter.MaxNights != 0 {
		dst.Filter.MaxNights = src.Filter.MaxNights
	}
	if len(src.Filter.Destinations) > 0 {
		dst.Filter.Destinations = src.Filter.Destinations
	}
}

// Validate checks every section and returns the first problem found.
func (c *ProjectConfig) Validate() error {
	if c.Scoring.Weights != nil {
		if err := c.Scoring.Weights.Validate(); err != nil {
			return fmt.Errorf("%w: scoring.weights: %w", ErrInvalidConfig, err)
		}
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("%w: output.format %q must be one of %v", ErrInvalidConfig, c.Output.Format, OutputFormats)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.MaxItineraries < 1 {
		return fmt.Errorf("%w: server.max_itineraries must be positive", ErrInvalidConfig)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("%w: batch.workers must be positive", ErrInvalidConfig)
	}
	if c.Filter.MaxBudget > 0 && c.Filter.MinBudget > c.Filter.MaxBudget {
		return fmt.Errorf("%w: filter.min_budget exceeds filter.max_budget", ErrInvalidConfig)
	}
	if c.Filter.MaxNights > 0 && c.Filter.MinNights > c.Filter.MaxNights {
		return fmt.Errorf("%w: filter.min_nights exceeds filter.max_nights", ErrInvalidConfig)
	}
	return nil
}

// EffectiveWeights returns the configured weights, or the defaults when
// none are set.
func (c *ProjectConfig) EffectiveWeights() models.Weights {
	if c.Scoring.Weights == nil || c.Scoring.Weights.IsZero() {
		return models.DefaultWeights()
	}
	return *c.Scoring.Weights
}

// Marshal renders the configuration as YAML with a short header.
func (c *ProjectConfig) Marshal() ([]byte, error) {
	body, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	header := "# tripcompare project configuration\n# Scoring weights must be non-negative and sum to 1.0.\n"
	return append([]byte(header), body...), nil
}

// Save writes the configuration to path.
func (c *ProjectConfig) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
