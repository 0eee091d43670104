// Package ingest loads itinerary documents from disk or request bodies,
// checks them against the schema and resolves optional fields once so the
// scoring engine sees a uniform shape.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/validation"
	"gopkg.in/yaml.v3"
)

// SchemaError reports a document that does not match the itinerary schema.
type SchemaError struct {
	Path     string
	Problems []string
}

func (e *SchemaError) Error() string {
	where := e.Path
	if where == "" {
		where = "itinerary"
	}
	return fmt.Sprintf("%s: %d schema problem(s): %s", where, len(e.Problems), strings.Join(e.Problems, "; "))
}

// IsItineraryFile reports whether path has a supported extension. Hidden
// files such as .tripcompare.yaml are never itineraries.
func IsItineraryFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// StripCodeFence removes a surrounding Markdown code fence, which language
// model output often carries, e.g. "```json\n{...}\n```".
func StripCodeFence(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return data
	}
	if nl := bytes.IndexByte(trimmed, '\n'); nl >= 0 {
		trimmed = trimmed[nl+1:]
	} else {
		trimmed = trimmed[3:]
	}
	trimmed = bytes.TrimSpace(trimmed)
	trimmed = bytes.TrimSuffix(trimmed, []byte("```"))
	return bytes.TrimSpace(trimmed)
}

// Parse validates and decodes a raw document.
func Parse(data []byte, format validation.Format) (*models.Itinerary, error) {
	data = StripCodeFence(data)
	if problems := validation.ValidateBytes(data, format); len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}

	var raw map[string]any
	switch format {
	case validation.FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}
	return Decode(raw)
}

// LoadFile reads one itinerary from a .json, .yaml or .yml file. The id
// defaults to the file name without extension. Data-quality warnings are
// logged, never returned as errors.
func LoadFile(path string) (*models.Itinerary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading itinerary file: %w", err)
	}

	it, err := Parse(data, validation.FormatForPath(path))
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			se.Path = path
			return nil, se
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Base(path)
	if it.ID == "" {
		it.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	it.Source = base

	for _, w := range Check(it) {
		slog.Warn("itinerary data quality", "file", path, "warning", w)
	}
	slog.Debug("loaded itinerary", "file", path, "id", it.ID, "days", len(it.DailyItinerary))
	return it, nil
}

// LoadFiles loads every path in order.
func LoadFiles(paths []string) ([]*models.Itinerary, error) {
	items := make([]*models.Itinerary, 0, len(paths))
	for _, p := range paths {
		it, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// LoadDir loads every itinerary file directly inside dir, sorted by name.
func LoadDir(dir string) ([]*models.Itinerary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsItineraryFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return LoadFiles(paths)
}

// Check returns data-quality warnings for fields the extraction step should
// have produced.
func Check(it *models.Itinerary) []string {
	var warnings []string
	if strings.TrimSpace(it.Name) == "" {
		warnings = append(warnings, "Missing package name")
	}
	if it.Overview.Cost.PerPerson == 0 {
		warnings = append(warnings, "Missing per-person cost")
	}
	if it.Overview.Duration.Nights == 0 {
		warnings = append(warnings, "Missing duration")
	}
	if len(it.DailyItinerary) == 0 {
		warnings = append(warnings, "Missing itinerary days")
	}
	return warnings
}
