package scoring

import (
	"math"

	"github.com/spboyer/tripcompare/internal/models"
)

const (
	costFloor        = 20.0
	costSpan         = 80.0
	belowAverageBump = 10.0
)

// CostEfficiency scores the itinerary's cost per night against the cohort.
// The cheapest cohort member maps to 100 and the most expensive to 20; a
// cost strictly below the cohort mean earns +10, capped at 100. A cohort
// with no spread scores 100. Without a positive total and nights the
// result is DefaultCostScore.
func CostEfficiency(it *models.Itinerary, cohort []*models.Itinerary) int {
	cpn, ok := it.CostPerNight()
	if !ok {
		return DefaultCostScore
	}
	if len(cohort) == 0 {
		cohort = []*models.Itinerary{it}
	}

	minCost, maxCost, avgCost := cohortCostStats(cohort)

	score := 100.0
	if maxCost > minCost {
		score = 100 - ((cpn-minCost)/(maxCost-minCost))*costSpan
	}
	if cpn < avgCost {
		score = math.Min(100, score+belowAverageBump)
	}
	return clampRound(score)
}

// memberCostPerNight is total/nights with nights <= 0 treated as 1 so that
// a malformed member cannot push the statistics to Inf or NaN.
func memberCostPerNight(it *models.Itinerary) float64 {
	if it == nil {
		return 0
	}
	nights := it.Overview.Duration.Nights
	if nights <= 0 {
		nights = 1
	}
	return it.Overview.Cost.Total / float64(nights)
}

func cohortCostStats(cohort []*models.Itinerary) (minCost, maxCost, avgCost float64) {
	var sum float64
	for i, it := range cohort {
		c := memberCostPerNight(it)
		if i == 0 || c < minCost {
			minCost = c
		}
		if i == 0 || c > maxCost {
			maxCost = c
		}
		sum += c
	}
	avgCost = sum / float64(len(cohort))
	return minCost, maxCost, avgCost
}
