// Package cohort selects which itineraries are compared together: a
// budget/duration/destination Filter and an in-memory Session.
package cohort

import (
	"sort"
	"strings"

	"github.com/spboyer/tripcompare/internal/models"
)

// Filter narrows a cohort. Zero bounds are open.
type Filter struct {
	MinBudget    float64  `json:"minBudget,omitempty"`
	MaxBudget    float64  `json:"maxBudget,omitempty"`
	MinNights    int      `json:"minNights,omitempty"`
	MaxNights    int      `json:"maxNights,omitempty"`
	Destinations []string `json:"destinations,omitempty"`
}

// IsZero reports whether the filter keeps everything.
func (f Filter) IsZero() bool {
	return f.MinBudget == 0 && f.MaxBudget == 0 &&
		f.MinNights == 0 && f.MaxNights == 0 &&
		len(f.Destinations) == 0
}

// Match reports whether it passes every bound of the filter. When
// Destinations is set, it must visit at least one of them.
func (f Filter) Match(it *models.Itinerary) bool {
	if it == nil {
		return false
	}
	cost := it.Overview.Cost.Total
	if f.MinBudget > 0 && cost < f.MinBudget {
		return false
	}
	if f.MaxBudget > 0 && cost > f.MaxBudget {
		return false
	}

	nights := it.Overview.Duration.Nights
	if f.MinNights > 0 && nights < f.MinNights {
		return false
	}
	if f.MaxNights > 0 && nights > f.MaxNights {
		return false
	}

	if len(f.Destinations) == 0 {
		return true
	}
	for _, want := range f.Destinations {
		for _, d := range it.Destinations {
			if strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(want)) {
				return true
			}
		}
	}
	return false
}

// Apply returns the items that match, preserving order.
func (f Filter) Apply(items []*models.Itinerary) []*models.Itinerary {
	out := make([]*models.Itinerary, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Destinations returns the sorted unique destinations across items.
func Destinations(items []*models.Itinerary) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		for _, d := range it.Destinations {
			d = strings.TrimSpace(d)
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// BudgetRange returns the lowest and highest total cost across items.
// Both are zero for an empty slice.
func BudgetRange(items []*models.Itinerary) (lo, hi float64) {
	for i, it := range items {
		c := it.Overview.Cost.Total
		if i == 0 || c < lo {
			lo = c
		}
		if i == 0 || c > hi {
			hi = c
		}
	}
	return lo, hi
}
