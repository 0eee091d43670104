package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trip(id string, total float64) *models.Itinerary {
	return &models.Itinerary{
		ID:   id,
		Name: "Trip " + id,
		Overview: models.Overview{
			Duration: models.Duration{Nights: 4, Days: 5},
			Cost:     models.Cost{Total: total, Currency: "INR"},
		},
		Inclusions: []string{"Breakfast"},
	}
}

func sampleReport() *report.Report {
	return &report.Report{
		Title:   "andaman",
		Weights: models.DefaultWeights(),
		Entries: []report.Entry{{ID: "a", Name: "Trip a", Currency: "INR", TotalCost: 20000, Nights: 4, Rank: 1}},
		Recommendation: &models.Ranking{
			Recommended: "a",
			Total:       80,
			Reason:      "Only itinerary in comparison",
		},
	}
}

func TestKey(t *testing.T) {
	cohort := []*models.Itinerary{trip("a", 20000), trip("b", 30000)}

	key1, err := Key(cohort, models.DefaultWeights())
	require.NoError(t, err)
	assert.Len(t, key1, 64) // SHA256 hex is 64 chars

	key2, err := Key([]*models.Itinerary{trip("a", 20000), trip("b", 30000)}, models.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}

func TestKey_Changes(t *testing.T) {
	base := []*models.Itinerary{trip("a", 20000), trip("b", 30000)}
	baseKey, err := Key(base, models.DefaultWeights())
	require.NoError(t, err)

	tests := []struct {
		name    string
		cohort  []*models.Itinerary
		weights models.Weights
	}{
		{"reordered", []*models.Itinerary{trip("b", 30000), trip("a", 20000)}, models.DefaultWeights()},
		{"price change", []*models.Itinerary{trip("a", 20000), trip("b", 31000)}, models.DefaultWeights()},
		{"member added", []*models.Itinerary{trip("a", 20000), trip("b", 30000), trip("c", 1)}, models.DefaultWeights()},
		{"weights", base, models.Weights{CostEfficiency: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := Key(tt.cohort, tt.weights)
			require.NoError(t, err)
			assert.NotEqual(t, baseKey, key)
		})
	}
}

func TestKey_NoConcatenationCollision(t *testing.T) {
	a := trip("ab", 1)
	b := trip("a", 1)
	b.Name = "Trip ab"

	k1, err := Key([]*models.Itinerary{a}, models.DefaultWeights())
	require.NoError(t, err)
	k2, err := Key([]*models.Itinerary{b}, models.DefaultWeights())
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestCache_GetPut(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "cache"))

	_, ok := c.Get("missing")
	assert.False(t, ok)

	rep := sampleReport()
	require.NoError(t, c.Put("key1", rep))

	got, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, rep, got)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	_, ok := New(dir).Get("bad")
	assert.False(t, ok)
}

func TestCache_Disabled(t *testing.T) {
	c := New("")
	assert.False(t, c.Enabled())
	require.NoError(t, c.Put("key", sampleReport()))
	_, ok := c.Get("key")
	assert.False(t, ok)
	require.NoError(t, c.Clear())

	var nilCache *Cache
	assert.False(t, nilCache.Enabled())
}

func TestCache_Clear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := New(dir)
	require.NoError(t, c.Put("key", sampleReport()))

	require.NoError(t, c.Clear())
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Clearing a missing directory is a no-op.
	require.NoError(t, c.Clear())
}

func TestCache_Clear_SafetyChecks(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{"foreign file", func(t *testing.T, dir string) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))
		}},
		{"subdirectory", func(t *testing.T, dir string) {
			require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			err := New(dir).Clear()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "refusing to delete")
			_, statErr := os.Stat(dir)
			assert.NoError(t, statErr)
		})
	}
}

func TestCache_ConcurrentOperations(t *testing.T) {
	c := New(t.TempDir())

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key%d", i)
			rep := sampleReport()
			rep.Title = key
			assert.NoError(t, c.Put(key, rep))
			got, ok := c.Get(key)
			if assert.True(t, ok) {
				assert.Equal(t, key, got.Title)
			}
		}()
	}
	wg.Wait()
}
