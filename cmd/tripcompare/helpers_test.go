package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const budgetJSON = `{
  "name": "Havelock Budget Escape",
  "overview": {
    "duration": {"nights": 5, "days": 6},
    "cost": {"total": "₹30,000", "perPerson": 15000}
  },
  "destinations": ["Port Blair", "Havelock"],
  "itinerary": [
    {"day": 1, "activities": ["Beach walk", "Cellular Jail visit"]},
    {"day": 2, "activities": ["Scuba diving", "Sunset at Radhanagar beach"]}
  ],
  "inclusions": ["Breakfast", "Airport transfers"]
}`

const deluxeYAML = `name: Andaman Deluxe
overview:
  duration: {nights: 5, days: 6}
  cost: {total: 150000, perPerson: 75000, currency: INR}
destinations: [Port Blair, Neil Island]
itinerary:
  - day: 1
    activities: [Beach walk, Museum visit]
  - day: 2
    activities: [Snorkeling, Spa]
transport:
  ferry: {class: Premium}
inclusions: [Breakfast, Dinner, Ferry tickets]
`

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// fixtureDir writes the two standard itineraries into a fresh directory and
// isolates the test from any config file above the working directory.
func fixtureDir(t *testing.T) (dir, budget, deluxe string) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	budget = writeFile(t, dir, "budget.json", budgetJSON)
	deluxe = writeFile(t, dir, "deluxe.yaml", deluxeYAML)
	return dir, budget, deluxe
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
