// Package report renders a scored cohort as a table, Markdown, HTML, JSON
// or YAML.
package report

import (
	"fmt"
	"io"

	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/recommend"
)

// Format names an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Entry is one scored itinerary with the facts a reader needs next to it.
type Entry struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	Source       string             `json:"source,omitempty" yaml:"source,omitempty"`
	Currency     string             `json:"currency" yaml:"currency"`
	TotalCost    float64            `json:"totalCost" yaml:"totalCost"`
	Nights       int                `json:"nights" yaml:"nights"`
	Days         int                `json:"days" yaml:"days"`
	CostPerNight float64            `json:"costPerNight,omitempty" yaml:"costPerNight,omitempty"`
	Destinations []string           `json:"destinations,omitempty" yaml:"destinations,omitempty"`
	Rank         int                `json:"rank" yaml:"rank"`
	Score        models.ScoreResult `json:"score" yaml:"score"`
}

// Report is a scored cohort in cohort order plus its ranking.
type Report struct {
	Title          string          `json:"title,omitempty" yaml:"title,omitempty"`
	Weights        models.Weights  `json:"weights" yaml:"weights"`
	Entries        []Entry         `json:"entries" yaml:"entries"`
	Recommendation *models.Ranking `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// Build pairs each cohort member with its result. cohort and results are
// parallel slices; ids come from models.UniqueIDs so every entry is distinct.
func Build(cohort []*models.Itinerary, results []models.ScoreResult, weights models.Weights) *Report {
	n := min(len(cohort), len(results))
	ids := models.UniqueIDs(cohort[:n])
	entries := make([]Entry, n)
	for i := range n {
		it := cohort[i]
		id := ids[i]

		cpn, _ := it.CostPerNight()
		entries[i] = Entry{
			ID:           id,
			Name:         it.DisplayName(),
			Source:       it.Source,
			Currency:     it.Overview.Cost.Currency,
			TotalCost:    it.Overview.Cost.Total,
			Nights:       it.Overview.Duration.Nights,
			Days:         it.Overview.Duration.Days,
			CostPerNight: cpn,
			Destinations: it.Destinations,
			Score:        results[i],
		}
		if entries[i].Name == "" {
			entries[i].Name = id
		}
	}

	ranking := recommend.Rank(ids, results[:n])
	if ranking != nil {
		ranks := make(map[string]int, len(ranking.Entries))
		for _, e := range ranking.Entries {
			ranks[e.ID] = e.Rank
		}
		for i := range entries {
			entries[i].Rank = ranks[entries[i].ID]
		}
	}

	return &Report{
		Weights:        weights,
		Entries:        entries,
		Recommendation: ranking,
	}
}

// Entry returns the entry with the given id.
func (r *Report) Entry(id string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Write renders r in the given format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatHTML:
		return WriteHTML(w, r)
	default:
		return fmt.Errorf("unsupported format %q: must be table, json, yaml, markdown or html", format)
	}
}
