package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spboyer/tripcompare/internal/ingest"
	"github.com/spboyer/tripcompare/internal/models"
)

// expandPaths replaces each directory argument with the itinerary files
// directly inside it, in name order.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", arg, err)
		}
		for _, e := range entries {
			if !e.IsDir() && ingest.IsItineraryFile(e.Name()) {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	return paths, nil
}

// loadInputs loads every itinerary named by args, expanding directories.
// Files sharing a stem, such as a/trip.json and b/trip.json, get distinct
// ids ("trip", "trip-2").
func loadInputs(args []string) ([]*models.Itinerary, error) {
	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}
	items := make([]*models.Itinerary, 0, len(paths))
	for _, p := range paths {
		it, err := ingest.LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", p, err)
		}
		items = append(items, it)
	}
	for i, id := range models.UniqueIDs(items) {
		if items[i].ID != id {
			slog.Debug("renamed duplicate itinerary id", "file", paths[i], "from", items[i].ID, "to", id)
			items[i].ID = id
		}
	}
	return items, nil
}
