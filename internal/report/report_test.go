package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spboyer/tripcompare/internal/models"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	cohort := []*models.Itinerary{
		{
			ID:   "deluxe",
			Name: "Andaman | Deluxe",
			Overview: models.Overview{
				Duration: models.Duration{Nights: 5, Days: 6},
				Cost:     models.Cost{Total: 150000, Currency: "INR"},
			},
		},
		{
			ID:   "budget",
			Name: "Havelock Budget Escape",
			Overview: models.Overview{
				Duration: models.Duration{Nights: 5, Days: 6},
				Cost:     models.Cost{Total: 30000, Currency: "INR"},
			},
			Source: "budget.json",
		},
	}
	results := []models.ScoreResult{
		{
			Total:     59,
			Breakdown: models.Breakdown{CostEfficiency: 20, ActivityDiversity: 81, TimeOptimization: 100, Inclusiveness: 60},
			Rationale: models.Rationale{
				Strengths:    []string{"Well-paced itinerary with balanced daily activities"},
				Improvements: []string{"Higher cost compared to alternatives"},
				Unique:       []string{"Premium ferry service"},
			},
		},
		{
			Total:     87,
			Breakdown: models.Breakdown{CostEfficiency: 100, ActivityDiversity: 81, TimeOptimization: 100, Inclusiveness: 60},
			Rationale: models.Rationale{
				Strengths:    []string{"Excellent value at 6000 per night"},
				Improvements: []string{},
				Unique:       []string{},
			},
		},
	}
	return Build(cohort, results, models.DefaultWeights())
}

func TestBuild(t *testing.T) {
	r := sampleReport()

	require.Len(t, r.Entries, 2)
	require.Equal(t, "deluxe", r.Entries[0].ID)
	require.Equal(t, 2, r.Entries[0].Rank)
	require.Equal(t, "budget", r.Entries[1].ID)
	require.Equal(t, 1, r.Entries[1].Rank)
	require.InDelta(t, 6000.0, r.Entries[1].CostPerNight, 1e-9)

	require.NotNil(t, r.Recommendation)
	require.Equal(t, "budget", r.Recommendation.Recommended)
	require.Equal(t, 87, r.Recommendation.Total)
}

func TestBuild_MissingIDsAreNumbered(t *testing.T) {
	cohort := []*models.Itinerary{{Name: "A"}, {}}
	results := []models.ScoreResult{{Total: 40}, {Total: 50}}

	r := Build(cohort, results, models.DefaultWeights())

	require.Equal(t, "1", r.Entries[0].ID)
	require.Equal(t, "A", r.Entries[0].Name)
	require.Equal(t, "2", r.Entries[1].ID)
	require.Equal(t, "2", r.Entries[1].Name)
	require.Equal(t, "2", r.Recommendation.Recommended)
}

func TestBuild_DuplicateIDsStayDistinct(t *testing.T) {
	cohort := []*models.Itinerary{{ID: "trip", Name: "Cheap"}, {ID: "trip", Name: "Pricey"}}
	results := []models.ScoreResult{{Total: 61}, {Total: 33}}

	r := Build(cohort, results, models.DefaultWeights())

	require.Equal(t, "trip", r.Entries[0].ID)
	require.Equal(t, 1, r.Entries[0].Rank)
	require.Equal(t, "trip-2", r.Entries[1].ID)
	require.Equal(t, 2, r.Entries[1].Rank)
	require.Equal(t, "trip", r.Recommendation.Recommended)
	require.Equal(t, "trip-2", r.Recommendation.Entries[1].ID)

	e, ok := r.Entry("trip-2")
	require.True(t, ok)
	require.Equal(t, "Pricey", e.Name)
}

func TestBuild_Empty(t *testing.T) {
	r := Build(nil, nil, models.DefaultWeights())
	require.Empty(t, r.Entries)
	require.Nil(t, r.Recommendation)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, r))
	require.Contains(t, buf.String(), "No itineraries to compare.")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{30000, "INR", "₹30,000"},
		{1234567.4, "USD", "$1,234,567"},
		{999.5, "EUR", "€1,000"},
		{12, "GBP", "£12"},
		{2500, "JPY", "JPY 2,500"},
		{2500, "", "2,500"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, FormatMoney(tt.amount, tt.currency))
		})
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleReport()))
	out := buf.String()

	require.Contains(t, out, "ITINERARY SCORES")
	require.Contains(t, out, "₹30,000")
	require.Contains(t, out, "₹6,000/night")
	require.Contains(t, out, "+ Excellent value at 6000 per night")
	require.Contains(t, out, "- Higher cost compared to alternatives")
	require.Contains(t, out, "★ Premium ferry service")
	require.Contains(t, out, "RECOMMENDED: Havelock Budget Escape (87/100)")

	// Ranked order: the winner is printed first.
	require.Less(t, strings.Index(out, "#1  Havelock"), strings.Index(out, "#2  Andaman"))
}

func TestWriteComparison(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, sampleReport()))
	out := buf.String()

	require.Contains(t, out, "COMPARISON REPORT")
	require.Contains(t, out, "[2] Havelock Budget Escape  (budget.json)")

	var costRow string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  Cost efficiency") {
			costRow = line
			break
		}
	}
	require.NotEmpty(t, costRow)
	require.Contains(t, costRow, "100 *")
	require.NotContains(t, costRow, "20 *")
}

func TestPadRight_WideRunes(t *testing.T) {
	require.Equal(t, "ab  ", padRight("ab", 4))
	require.Equal(t, "₹1 ", padRight("₹1", 3))
	require.Equal(t, "日本 ", padRight("日本", 5))
	require.Equal(t, "toolong", padRight("toolong", 3))
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleReport()))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "# Itinerary comparison\n"))
	require.Contains(t, out, "**Recommended:** Havelock Budget Escape (87/100)")
	require.Contains(t, out, `| 2 | Andaman \| Deluxe | ₹150,000 | 5 | 20 | 81 | 100 | 60 | **59** |`)
	require.Contains(t, out, "## Havelock Budget Escape")
	require.Contains(t, out, "- Premium ferry service")
	require.Contains(t, out, "_Weights: cost 0.35, activities 0.25, pacing 0.20, inclusions 0.20_")
}

func TestWriteHTML(t *testing.T) {
	r := sampleReport()
	r.Title = "Andaman <shortlist>"

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, r))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, "<title>Andaman &lt;shortlist&gt;</title>")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<strong>Recommended:</strong>")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Entries, 2)
	require.Equal(t, "budget", decoded.Recommendation.Recommended)
	require.Contains(t, buf.String(), `"costEfficiency": 100`)
	require.Contains(t, buf.String(), `"costEfficiency": 0.35`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleReport()))

	var decoded Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Entries, 2)
	require.Equal(t, 87, decoded.Recommendation.Total)
}

func TestWrite_Dispatch(t *testing.T) {
	r := sampleReport()
	for _, f := range []Format{"", FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, r, f), "format %q", f)
		require.NotZero(t, buf.Len())
	}

	err := Write(&bytes.Buffer{}, r, "pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unsupported format "pdf"`)
}
