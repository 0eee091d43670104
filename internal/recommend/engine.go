// Package recommend ranks a scored cohort and picks the itinerary to
// recommend.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spboyer/tripcompare/internal/models"
)

// subScore names one breakdown component for reason text.
type subScore struct {
	label string
	value func(models.Breakdown) int
}

var subScores = []subScore{
	{"Cost efficiency", func(b models.Breakdown) int { return b.CostEfficiency }},
	{"Activity diversity", func(b models.Breakdown) int { return b.ActivityDiversity }},
	{"Time optimization", func(b models.Breakdown) int { return b.TimeOptimization }},
	{"Inclusiveness", func(b models.Breakdown) int { return b.Inclusiveness }},
}

// Rank orders results by total, highest first. ids and results are parallel
// slices in cohort order; ties keep cohort order. Returns nil for an empty
// cohort.
func Rank(ids []string, results []models.ScoreResult) *models.Ranking {
	n := min(len(ids), len(results))
	if n == 0 {
		return nil
	}

	entries := make([]models.RankEntry, n)
	for i := range n {
		entries[i] = models.RankEntry{
			ID:        ids[i],
			Total:     results[i].Total,
			Breakdown: results[i].Breakdown,
		}
	}

	// Stable sort keeps cohort order for ties
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Total > entries[b].Total
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	winner := entries[0]
	ranking := &models.Ranking{
		Recommended: winner.ID,
		Total:       winner.Total,
		Entries:     entries,
	}
	if n == 1 {
		ranking.Reason = "Only itinerary in comparison"
		return ranking
	}

	runnerUp := entries[1]
	var margin float64
	if runnerUp.Total > 0 {
		margin = (float64(winner.Total-runnerUp.Total) / float64(runnerUp.Total)) * 100
	}
	ranking.MarginPct = math.Round(margin*10) / 10
	ranking.Reason = buildReason(winner, runnerUp)
	return ranking
}

func buildReason(winner, runnerUp models.RankEntry) string {
	if winner.Total == runnerUp.Total {
		return fmt.Sprintf("Tied with %s; first in comparison order selected", runnerUp.ID)
	}

	var parts []string
	for _, s := range subScores {
		w, r := s.value(winner.Breakdown), s.value(runnerUp.Breakdown)
		if w > r {
			parts = append(parts, fmt.Sprintf("%s: %d vs %d", s.label, w, r))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "Highest weighted score across all components")
	}

	return fmt.Sprintf("%s (total: %d vs %s: %d)",
		strings.Join(parts, "; "), winner.Total, runnerUp.ID, runnerUp.Total)
}
