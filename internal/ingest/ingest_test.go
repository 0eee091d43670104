package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/validation"
	"github.com/stretchr/testify/require"
)

const andamanJSON = `{
  "name": "Andaman Escape",
  "overview": {
    "duration": {"nights": 5, "days": 6},
    "cost": {"total": "₹30,000", "perPerson": "15,000"},
    "participants": {"adults": 2}
  },
  "destinations": ["Port Blair", "Havelock"],
  "itinerary": [
    {"day": 1, "activities": ["Beach walk", {"name": "Museum visit"}, {"description": "Sunset cruise"}, null]},
    {"day": "Day 2", "activities": [], "meals": {"breakfast": true}, "accommodation": {"hotel": "Sea Shell"}}
  ],
  "transport": {"ferry": {"class": "Premium"}, "vehicle": {"type": "Sedan", "ac": true}},
  "inclusions": ["Breakfast", "Ferry tickets"],
  "exclusions": ["Flights"]
}`

const goaYAML = `name: Goa Getaway
overview:
  duration: {nights: 3, days: 4}
  cost: {total: 25000, perPerson: 12500, currency: USD}
dailyItinerary:
  - day: 1
    activities:
      - Beach walk
      - name: Fort Aguada
inclusions: [Breakfast]
exclusions: []
`

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"₹30,000", 30000},
		{"30000", 30000},
		{"USD 1,250 per person", 1250},
		{"5 Nights / 6 Days", 5},
		{"12.5", 12},
		{"on request", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestDetectCurrency(t *testing.T) {
	require.Equal(t, "INR", DetectCurrency("₹30,000"))
	require.Equal(t, "USD", DetectCurrency("$1,200"))
	require.Equal(t, "EUR", DetectCurrency("€900"))
	require.Equal(t, "GBP", DetectCurrency("£700"))
	require.Equal(t, "INR", DetectCurrency("30000"))
}

func TestDecode_Lenient(t *testing.T) {
	it, err := Parse([]byte(andamanJSON), validation.FormatJSON)
	require.NoError(t, err)

	require.Equal(t, "Andaman Escape", it.Name)
	require.Equal(t, 30000.0, it.Overview.Cost.Total)
	require.Equal(t, 15000.0, it.Overview.Cost.PerPerson)
	require.Equal(t, "INR", it.Overview.Cost.Currency)
	require.Equal(t, 5, it.Overview.Duration.Nights)
	require.Equal(t, 2, it.Overview.Participants.Adults)

	require.Len(t, it.DailyItinerary, 2)
	require.Equal(t, 2, it.DailyItinerary[1].Day)
	require.Equal(t, []string{"Beach walk", "Museum visit", "Sunset cruise", ""}, it.ActivityTexts())
	require.Equal(t, &models.Meals{Breakfast: true}, it.DailyItinerary[1].Meals)
	require.Equal(t, "Sea Shell", it.DailyItinerary[1].Accommodation.Hotel)

	require.Equal(t, "Premium", it.Transport.FerryClass())
	require.True(t, it.Transport.Vehicle.AC)
}

func TestDecode_YAMLAlias(t *testing.T) {
	it, err := Parse([]byte(goaYAML), validation.FormatYAML)
	require.NoError(t, err)

	require.Equal(t, "USD", it.Overview.Cost.Currency)
	require.Equal(t, []string{"Beach walk", "Fort Aguada"}, it.ActivityTexts())
	require.Equal(t, []string{}, it.Exclusions)
}

func TestDecode_DefaultCurrency(t *testing.T) {
	it, err := Decode(map[string]any{
		"overview": map[string]any{"cost": map[string]any{"total": 1000.0}},
	})
	require.NoError(t, err)
	require.Equal(t, DefaultCurrency, it.Overview.Cost.Currency)

	it, err = Decode(map[string]any{
		"overview": map[string]any{"cost": map[string]any{"total": "$1,000"}},
	})
	require.NoError(t, err)
	require.Equal(t, "USD", it.Overview.Cost.Currency)
	require.Equal(t, 1000.0, it.Overview.Cost.Total)
}

func TestDecode_DoesNotMutateInput(t *testing.T) {
	raw := map[string]any{"dailyItinerary": []any{map[string]any{"day": 1}}}
	_, err := Decode(raw)
	require.NoError(t, err)
	require.Contains(t, raw, "dailyItinerary")
	require.NotContains(t, raw, "itinerary")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```\n", `{"a": 1}`},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, string(StripCodeFence([]byte(tt.in))))
		})
	}
}

func TestParse_FencedLLMOutput(t *testing.T) {
	it, err := Parse([]byte("```json\n"+andamanJSON+"\n```"), validation.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "Andaman Escape", it.Name)
}

func TestParse_SchemaError(t *testing.T) {
	_, err := Parse([]byte(`{"inclusions": "Breakfast"}`), validation.FormatJSON)
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	require.NotEmpty(t, se.Problems)
	require.Contains(t, se.Error(), "/inclusions")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "andaman.json")
	require.NoError(t, os.WriteFile(path, []byte(andamanJSON), 0644))

	it, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "andaman", it.ID)
	require.Equal(t, "andaman.json", it.Source)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestLoadFile_SchemaErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inclusions: Breakfast\n"), 0644))

	_, err := LoadFile(path)
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	require.Equal(t, path, se.Path)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-goa.yaml"), []byte(goaYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-andaman.json"), []byte(andamanJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	items, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a-andaman", items[0].ID)
	require.Equal(t, "b-goa", items[1].ID)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestIsItineraryFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"trip.json", true},
		{"trip.YAML", true},
		{"dir/trip.yml", true},
		{"notes.txt", false},
		{".tripcompare.yaml", false},
		{"dir/.hidden.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, IsItineraryFile(tt.path))
		})
	}
}

func TestCheck(t *testing.T) {
	require.Equal(t, []string{
		"Missing package name",
		"Missing per-person cost",
		"Missing duration",
		"Missing itinerary days",
	}, Check(&models.Itinerary{}))

	it, err := Parse([]byte(andamanJSON), validation.FormatJSON)
	require.NoError(t, err)
	require.Empty(t, Check(it))
}
