package webapi

//go:generate go tool mockgen -source=store.go -destination=mock_store_test.go -package=webapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spboyer/tripcompare/internal/cohort"
	"github.com/spboyer/tripcompare/internal/ingest"
	"github.com/spboyer/tripcompare/internal/models"
)

// ErrItineraryNotFound is returned when an ID does not match any stored itinerary.
var ErrItineraryNotFound = cohort.ErrNotFound

// SessionStore holds the itineraries of one comparison session.
type SessionStore interface {
	// Add stores a copy of it and returns the stored itinerary with its assigned ID.
	Add(it *models.Itinerary) (*models.Itinerary, error)
	// Get returns a single itinerary.
	Get(id string) (*models.Itinerary, error)
	// Update replaces the content of an existing itinerary.
	Update(id string, it *models.Itinerary) (*models.Itinerary, error)
	// Remove deletes an itinerary and its selection.
	Remove(id string) error
	// List returns all itineraries in upload order.
	List() []*models.Itinerary
	// ToggleSelection flips whether id is part of the compared subset.
	ToggleSelection(id string) (bool, error)
	// Selected returns the selected IDs in upload order.
	Selected() []string
	// Clear removes everything.
	Clear()
	// Cohort returns the itineraries to score under f.
	Cohort(f cohort.Filter) []*models.Itinerary
	// Capacity is the maximum number of itineraries.
	Capacity() int
}

// Seed loads every itinerary file in dir into store. It stops at the first
// file that fails to load or does not fit.
func Seed(store SessionStore, dir string) (int, error) {
	items, err := ingest.LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for i, it := range items {
		if _, err := store.Add(it); err != nil {
			return i, fmt.Errorf("seeding %s: %w", it.Source, err)
		}
	}
	return len(items), nil
}

func sortItineraries(items []*models.Itinerary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "cost":
			return items[i].Overview.Cost.Total < items[j].Overview.Cost.Total
		case "nights":
			return items[i].Overview.Duration.Nights < items[j].Overview.Duration.Nights
		case "name":
			return strings.ToLower(items[i].DisplayName()) < strings.ToLower(items[j].DisplayName())
		default: // "uploaded" or empty
			return uploadedAt(items[i]) < uploadedAt(items[j])
		}
	}

	if order == "desc" {
		sort.SliceStable(items, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(items, less)
	}
}

func uploadedAt(it *models.Itinerary) int64 {
	if it.UploadedAt == nil {
		return 0
	}
	return it.UploadedAt.UnixNano()
}

// Ensure cohort.Session satisfies SessionStore.
var _ SessionStore = (*cohort.Session)(nil)
