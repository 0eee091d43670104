package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Itinerary is a single travel package as handed to the scoring engine.
// Upstream extraction owns field presence; missing numeric fields are left at
// their zero value and the scorers fall back to documented defaults.
type Itinerary struct {
	ID             string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string     `json:"name" yaml:"name"`
	Overview       Overview   `json:"overview" yaml:"overview"`
	Destinations   []string   `json:"destinations,omitempty" yaml:"destinations,omitempty"`
	DailyItinerary []DayPlan  `json:"itinerary" yaml:"itinerary"`
	Transport      *Transport `json:"transport,omitempty" yaml:"transport,omitempty"`
	Inclusions     []string   `json:"inclusions" yaml:"inclusions"`
	Exclusions     []string   `json:"exclusions" yaml:"exclusions"`
	UploadedAt     *time.Time `json:"uploadedAt,omitempty" yaml:"uploadedAt,omitempty"`
	Source         string     `json:"source,omitempty" yaml:"source,omitempty"`
}

// Overview groups the headline cost and duration figures of a package.
type Overview struct {
	Duration     Duration     `json:"duration" yaml:"duration"`
	Cost         Cost         `json:"cost" yaml:"cost"`
	Participants Participants `json:"participants,omitempty" yaml:"participants,omitempty"`
}

// Duration is the trip length. Nights is the cost-per-night divisor.
type Duration struct {
	Nights int `json:"nights" yaml:"nights"`
	Days   int `json:"days" yaml:"days"`
}

// Cost is the package price. Total is expected to be >= 0.
type Cost struct {
	Total     float64 `json:"total" yaml:"total"`
	PerPerson float64 `json:"perPerson" yaml:"perPerson"`
	Currency  string  `json:"currency" yaml:"currency"`
}

// Participants is informational only; it does not feed any score.
type Participants struct {
	Adults   int `json:"adults" yaml:"adults"`
	Children int `json:"children" yaml:"children"`
}

// DayPlan is one trip day.
type DayPlan struct {
	Day           int        `json:"day" yaml:"day"`
	Title         string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Activities    []Activity `json:"activities" yaml:"activities"`
	Meals         *Meals     `json:"meals,omitempty" yaml:"meals,omitempty"`
	Accommodation *Stay      `json:"accommodation,omitempty" yaml:"accommodation,omitempty"`
}

// Meals records which meals a day includes.
type Meals struct {
	Breakfast bool `json:"breakfast" yaml:"breakfast"`
	Lunch     bool `json:"lunch" yaml:"lunch"`
	Dinner    bool `json:"dinner" yaml:"dinner"`
}

// Stay is the overnight accommodation for a day.
type Stay struct {
	Hotel    string `json:"hotel,omitempty" yaml:"hotel,omitempty"`
	RoomType string `json:"roomType,omitempty" yaml:"roomType,omitempty"`
}

// Activity is a single scheduled item. Extraction sometimes emits plain
// strings and sometimes objects, so both decode into this type.
type Activity struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Text returns the display text: Name, else Description, else "".
func (a Activity) Text() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Description
}

// UnmarshalJSON accepts either "text" or {"name": ..., "description": ...}.
func (a *Activity) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = Activity{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Activity{Name: s}
		return nil
	}

	type plain Activity
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("activity must be a string or an object: %w", err)
	}
	*a = Activity(p)
	return nil
}

// Transport carries advisory transfer details. Only the ferry class is read
// by the rationale generator.
type Transport struct {
	Ferry     *Ferry       `json:"ferry,omitempty" yaml:"ferry,omitempty"`
	Vehicle   *Vehicle     `json:"vehicle,omitempty" yaml:"vehicle,omitempty"`
	Included  []string     `json:"included,omitempty" yaml:"included,omitempty"`
	Arrival   *TransferLeg `json:"arrival,omitempty" yaml:"arrival,omitempty"`
	Departure *TransferLeg `json:"departure,omitempty" yaml:"departure,omitempty"`
}

// Ferry describes an inter-island ferry leg.
type Ferry struct {
	Class    string `json:"class,omitempty" yaml:"class,omitempty"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`
}

// Vehicle describes ground transport.
type Vehicle struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	AC   bool   `json:"ac,omitempty" yaml:"ac,omitempty"`
}

// TransferLeg is an arrival or departure transfer.
type TransferLeg struct {
	Mode    string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// FerryClass returns the ferry class or "" when any level is absent.
func (t *Transport) FerryClass() string {
	if t == nil || t.Ferry == nil {
		return ""
	}
	return t.Ferry.Class
}

// CostPerNight returns total/nights. ok is false when either value is
// missing or non-positive.
func (it *Itinerary) CostPerNight() (float64, bool) {
	if it == nil || it.Overview.Cost.Total <= 0 || it.Overview.Duration.Nights <= 0 {
		return 0, false
	}
	return it.Overview.Cost.Total / float64(it.Overview.Duration.Nights), true
}

// ActivityTexts flattens every activity of every day into display strings,
// preserving day and activity order.
func (it *Itinerary) ActivityTexts() []string {
	var out []string
	for _, day := range it.DailyItinerary {
		for _, a := range day.Activities {
			out = append(out, a.Text())
		}
	}
	return out
}

// DisplayName returns Name, falling back to ID.
func (it *Itinerary) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID
}

// UniqueIDs returns one id per item, in order. An empty id becomes the
// 1-based position; a repeated id gets the first free "-2", "-3" suffix, so
// two "trip" items become "trip" and "trip-2".
func UniqueIDs(items []*Itinerary) []string {
	base := make([]string, len(items))
	taken := make(map[string]bool, len(items))
	for i, it := range items {
		id := ""
		if it != nil {
			id = it.ID
		}
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		base[i] = id
		taken[id] = true
	}

	ids := make([]string, len(items))
	used := make(map[string]bool, len(items))
	for i, id := range base {
		if used[id] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s-%d", base[i], n)
				if !used[candidate] && !taken[candidate] {
					id = candidate
					break
				}
			}
		}
		used[id] = true
		ids[i] = id
	}
	return ids
}

// DuplicateID returns the first id that appears more than once, if any.
func DuplicateID(items []*Itinerary) (string, bool) {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if seen[it.ID] {
			return it.ID, true
		}
		seen[it.ID] = true
	}
	return "", false
}
