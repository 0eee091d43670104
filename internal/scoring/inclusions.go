package scoring

import (
	"math"

	"github.com/spboyer/tripcompare/internal/classify"
	"github.com/spboyer/tripcompare/internal/models"
)

// Inclusiveness scores what a package covers: inclusions add, exclusions
// subtract, and premium and essential-service keywords earn capped bonuses.
func Inclusiveness(it *models.Itinerary) int {
	score := 50.0
	score += math.Min(30, float64(len(it.Inclusions))*3)
	score -= math.Min(20, float64(len(it.Exclusions))*2)

	premium := classify.CountMatching(it.Inclusions, classify.PremiumKeywords)
	score += math.Min(20, float64(premium)*5)

	essential := classify.CountKeywordsPresent(it.Inclusions, classify.EssentialKeywords)
	score += math.Min(15, float64(essential)*3)

	return clampRound(score)
}
