// Package scoring computes the cohort-relative score of a travel itinerary:
// four 0–100 sub-scores, their weighted total and a short rationale.
//
// Every function here is pure. The same itinerary and cohort always yield
// the same result, and an Engine may be shared across goroutines.
package scoring

import (
	"fmt"
	"math"

	"github.com/spboyer/tripcompare/internal/classify"
	"github.com/spboyer/tripcompare/internal/models"
)

// Default values returned when an input lacks the data a scorer needs.
const (
	DefaultCostScore     = 50
	DefaultActivityScore = 30
	DefaultTimeScore     = 40
)

// Engine aggregates the four scorers into one ScoreResult.
type Engine struct {
	weights    models.Weights
	activities *classify.Classifier
}

// NewEngine creates an engine with the default 0.35/0.25/0.20/0.20 weights.
func NewEngine() *Engine {
	return &Engine{
		weights:    models.DefaultWeights(),
		activities: classify.NewActivityClassifier(),
	}
}

// NewEngineWithWeights creates an engine with custom weights. The weights
// must be non-negative and sum to 1.0.
func NewEngineWithWeights(w models.Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring weights: %w", err)
	}
	e := NewEngine()
	e.weights = w
	return e, nil
}

// Weights returns the weights the engine applies.
func (e *Engine) Weights() models.Weights {
	return e.weights
}

// Score scores it against cohort. An empty cohort means self-comparison.
// The cohort is used as given; callers that want the target counted in the
// cost statistics must include it.
func (e *Engine) Score(it *models.Itinerary, cohort []*models.Itinerary) models.ScoreResult {
	if len(cohort) == 0 {
		cohort = []*models.Itinerary{it}
	}

	b := models.Breakdown{
		CostEfficiency:    CostEfficiency(it, cohort),
		ActivityDiversity: e.activityDiversity(it),
		TimeOptimization:  TimeOptimization(it),
		Inclusiveness:     Inclusiveness(it),
	}

	return models.ScoreResult{
		Total:     e.total(b),
		Breakdown: b,
		Rationale: Rationale(it, b),
	}
}

// ScoreCohort scores every member of cohort against the whole cohort.
// Results are in cohort order.
func (e *Engine) ScoreCohort(cohort []*models.Itinerary) []models.ScoreResult {
	results := make([]models.ScoreResult, len(cohort))
	for i, it := range cohort {
		results[i] = e.Score(it, cohort)
	}
	return results
}

func (e *Engine) total(b models.Breakdown) int {
	sum := float64(b.CostEfficiency)*e.weights.CostEfficiency +
		float64(b.ActivityDiversity)*e.weights.ActivityDiversity +
		float64(b.TimeOptimization)*e.weights.TimeOptimization +
		float64(b.Inclusiveness)*e.weights.Inclusiveness
	return clampRound(sum)
}

// roundHalfUp rounds halves toward +Inf: floor(x+0.5).
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// clampRound rounds x and clamps it to [0, 100].
func clampRound(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	return int(math.Max(0, math.Min(100, roundHalfUp(x))))
}
