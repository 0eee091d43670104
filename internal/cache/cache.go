// Package cache stores scored cohort reports on disk keyed by the content
// of the cohort. Scoring is pure, so a report can be reused whenever the
// same itineraries are scored with the same weights.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/report"
)

// Cache is a directory of JSON-encoded reports. A Cache with an empty
// directory is disabled: Get always misses and Put does nothing.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Enabled reports whether the cache has a directory.
func (c *Cache) Enabled() bool {
	return c != nil && c.dir != ""
}

// Key hashes the weights and every cohort member in order. Reordering the
// cohort changes the key because ties are broken by cohort order.
func Key(cohort []*models.Itinerary, weights models.Weights) (string, error) {
	h := sha256.New()

	for _, w := range []float64{weights.CostEfficiency, weights.ActivityDiversity, weights.TimeOptimization, weights.Inclusiveness} {
		if err := writeString(h, strconv.FormatFloat(w, 'g', -1, 64)); err != nil {
			return "", err
		}
	}

	for i, it := range cohort {
		data, err := json.Marshal(it)
		if err != nil {
			return "", fmt.Errorf("marshaling itinerary %d: %w", i, err)
		}
		if err := writeString(h, string(data)); err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached report for key. Unreadable or corrupt entries are
// misses.
func (c *Cache) Get(key string) (*report.Report, bool) {
	if !c.Enabled() {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, false
	}
	return &rep, true
}

// Put stores rep under key.
func (c *Cache) Put(key string, rep *report.Report) error {
	if !c.Enabled() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Clear removes the cache directory. It refuses to delete a directory that
// holds anything other than cache entries.
func (c *Cache) Clear() error {
	if !c.Enabled() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			return fmt.Errorf("cache directory contains %s, refusing to delete", e.Name())
		}
	}
	return os.RemoveAll(c.dir)
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// writeString writes a length-prefixed string so adjacent values cannot
// run together.
func writeString(w io.Writer, s string) error {
	if _, err := fmt.Fprintf(w, "%d:", len(s)); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}
