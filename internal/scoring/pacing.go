package scoring

import (
	"github.com/spboyer/tripcompare/internal/models"
)

// TimeOptimization scores daily pacing. Two to four activities a day on
// average is ideal, and low variance between days earns a bonus. An
// itinerary without day plans scores DefaultTimeScore.
func TimeOptimization(it *models.Itinerary) int {
	if len(it.DailyItinerary) == 0 {
		return DefaultTimeScore
	}

	avg, variance := pacingStats(it.DailyItinerary)

	score := 50.0
	switch {
	case avg >= 2 && avg <= 4:
		score += 30
	case avg > 4:
		score += 15
	default:
		score += 10
	}

	switch {
	case variance < 1:
		score += 20
	case variance < 2:
		score += 10
	}
	return clampRound(score)
}

// averageActivitiesPerDay returns the mean activity count per day, 0 when
// there are no days.
func averageActivitiesPerDay(days []models.DayPlan) float64 {
	avg, _ := pacingStats(days)
	return avg
}

// pacingStats returns the mean and population variance of per-day
// activity counts.
func pacingStats(days []models.DayPlan) (avg, variance float64) {
	if len(days) == 0 {
		return 0, 0
	}
	var sum float64
	for _, d := range days {
		sum += float64(len(d.Activities))
	}
	avg = sum / float64(len(days))

	for _, d := range days {
		diff := float64(len(d.Activities)) - avg
		variance += diff * diff
	}
	variance /= float64(len(days))
	return avg, variance
}
