package scoring

import (
	"math"

	"github.com/spboyer/tripcompare/internal/classify"
	"github.com/spboyer/tripcompare/internal/models"
)

const (
	breadthPoints    = 60.0
	volumeCap        = 30.0
	volumePerItem    = 3.0
	imbalancePenalty = 20.0
)

var defaultActivityClassifier = classify.NewActivityClassifier()

// ActivityDiversity scores the breadth and volume of activity categories
// across all days. An itinerary without activities scores
// DefaultActivityScore.
func ActivityDiversity(it *models.Itinerary) int {
	return activityDiversity(it, defaultActivityClassifier)
}

func (e *Engine) activityDiversity(it *models.Itinerary) int {
	return activityDiversity(it, e.activities)
}

func activityDiversity(it *models.Itinerary, c *classify.Classifier) int {
	texts := it.ActivityTexts()
	if len(texts) == 0 {
		return DefaultActivityScore
	}

	counts := c.Tally(texts)
	categories := c.Categories()

	covered, maxCount := 0, 0
	for _, cat := range categories {
		n := counts[cat]
		if n > 0 {
			covered++
		}
		if n > maxCount {
			maxCount = n
		}
	}

	total := len(texts)
	score := float64(covered) / float64(len(categories)) * breadthPoints
	score += math.Min(volumeCap, float64(total)*volumePerItem)

	// Every activity landed in the same single category.
	if maxCount == total && total > 2 {
		score -= imbalancePenalty
	}
	return clampRound(score)
}
