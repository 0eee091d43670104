package models

import (
	"fmt"
	"math"
)

// WeightTolerance is how far the weight sum may drift from 1.0.
const WeightTolerance = 0.001

// Breakdown holds the four 0–100 sub-scores of an itinerary.
type Breakdown struct {
	CostEfficiency    int `json:"costEfficiency" yaml:"costEfficiency"`
	ActivityDiversity int `json:"activityDiversity" yaml:"activityDiversity"`
	TimeOptimization  int `json:"timeOptimization" yaml:"timeOptimization"`
	Inclusiveness     int `json:"inclusiveness" yaml:"inclusiveness"`
}

// Rationale is the human-readable explanation attached to a score.
// Strengths holds at most 4 entries, Improvements and Unique at most 2.
type Rationale struct {
	Strengths    []string `json:"strengths" yaml:"strengths"`
	Improvements []string `json:"improvements" yaml:"improvements"`
	Unique       []string `json:"unique" yaml:"unique"`
}

// ScoreResult is the scoring output for one itinerary within a cohort.
type ScoreResult struct {
	Total     int       `json:"total" yaml:"total"`
	Breakdown Breakdown `json:"breakdown" yaml:"breakdown"`
	Rationale Rationale `json:"rationale" yaml:"rationale"`
}

// Weights defines the weighting of each sub-score in the total.
type Weights struct {
	CostEfficiency    float64 `json:"costEfficiency" yaml:"cost_efficiency"`
	ActivityDiversity float64 `json:"activityDiversity" yaml:"activity_diversity"`
	TimeOptimization  float64 `json:"timeOptimization" yaml:"time_optimization"`
	Inclusiveness     float64 `json:"inclusiveness" yaml:"inclusiveness"`
}

// DefaultWeights returns the standard 0.35/0.25/0.20/0.20 split.
func DefaultWeights() Weights {
	return Weights{
		CostEfficiency:    0.35,
		ActivityDiversity: 0.25,
		TimeOptimization:  0.20,
		Inclusiveness:     0.20,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.CostEfficiency + w.ActivityDiversity + w.TimeOptimization + w.Inclusiveness
}

// Validate checks that no weight is negative and that they sum to 1.0.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"cost_efficiency", w.CostEfficiency},
		{"activity_diversity", w.ActivityDiversity},
		{"time_optimization", w.TimeOptimization},
		{"inclusiveness", w.Inclusiveness},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("weight %s is negative: %g", f.name, f.value)
		}
	}
	if math.Abs(w.Sum()-1.0) > WeightTolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// IsZero reports whether no weight has been set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}
