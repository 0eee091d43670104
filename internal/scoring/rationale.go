package scoring

import (
	"fmt"
	"strings"

	"github.com/spboyer/tripcompare/internal/classify"
	"github.com/spboyer/tripcompare/internal/models"
)

// Limits on rationale entries. Entries are kept in generation order.
const (
	MaxStrengths    = 4
	MaxImprovements = 2
	MaxUnique       = 2
)

// Rationale texts.
const (
	StrengthActivities    = "Well-rounded mix of activities across different categories"
	StrengthPacing        = "Well-paced itinerary with balanced daily activities"
	StrengthInclusions    = "Comprehensive package with many inclusions and few hidden costs"
	ImprovementCost       = "Consider negotiating better pricing or look for package deals"
	ImprovementActivities = "Limited activity diversity - consider adding different experience types"
	ImprovementSparse     = "Itinerary could include more activities per day"
	ImprovementPacked     = "Schedule might be too packed - consider more leisure time"
)

// Rationale derives strengths, improvements and unique highlights from a
// breakdown. It is deterministic and depends only on its arguments.
func Rationale(it *models.Itinerary, b models.Breakdown) models.Rationale {
	var strengths, improvements, unique []string

	switch {
	case b.CostEfficiency > 70:
		strengths = append(strengths, costStrength(it))
	case b.CostEfficiency < 40:
		improvements = append(improvements, ImprovementCost)
	}

	switch {
	case b.ActivityDiversity > 75:
		strengths = append(strengths, StrengthActivities)
	case b.ActivityDiversity < 50:
		improvements = append(improvements, ImprovementActivities)
	}

	switch {
	case b.TimeOptimization > 70:
		strengths = append(strengths, StrengthPacing)
	case b.TimeOptimization < 50:
		if averageActivitiesPerDay(it.DailyItinerary) < 2 {
			improvements = append(improvements, ImprovementSparse)
		} else {
			improvements = append(improvements, ImprovementPacked)
		}
	}

	if b.Inclusiveness > 75 {
		strengths = append(strengths, StrengthInclusions)
	}

	if features := premiumFeatures(it); len(features) > 0 {
		unique = append(unique, "Includes "+strings.Join(features, ", "))
	}
	if n := len(it.Destinations); n > 3 {
		unique = append(unique, fmt.Sprintf("Covers %d destinations", n))
	}

	return models.Rationale{
		Strengths:    truncate(strengths, MaxStrengths),
		Improvements: truncate(improvements, MaxImprovements),
		Unique:       truncate(unique, MaxUnique),
	}
}

func costStrength(it *models.Itinerary) string {
	cpn, ok := it.CostPerNight()
	if !ok {
		return "Excellent value for the price"
	}
	return fmt.Sprintf("Excellent value at %d per night", int(roundHalfUp(cpn)))
}

// premiumFeatures lists premium features in a fixed order: premium ferry,
// luxury accommodations, AC transport.
func premiumFeatures(it *models.Itinerary) []string {
	var features []string
	if strings.EqualFold(it.Transport.FerryClass(), "Premium") {
		features = append(features, "premium ferry")
	}
	if classify.CountMatching(it.Inclusions, []string{"luxury"}) > 0 {
		features = append(features, "luxury accommodations")
	}
	if classify.CountMatching(it.Inclusions, []string{"ac"}) > 0 {
		features = append(features, "AC transport")
	}
	return features
}

func truncate(items []string, limit int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
