package webapi

import (
	"encoding/json"

	"github.com/spboyer/tripcompare/internal/models"
)

// ItineraryView is an itinerary plus its selection state.
type ItineraryView struct {
	*models.Itinerary
	Selected bool `json:"selected"`
}

// ListResponse is the API response for the itinerary list.
type ListResponse struct {
	Itineraries  []ItineraryView `json:"itineraries"`
	Capacity     int             `json:"capacity"`
	Destinations []string        `json:"destinations"`
	MinBudget    float64         `json:"minBudget"`
	MaxBudget    float64         `json:"maxBudget"`
}

// CreateResponse is returned after an upload.
type CreateResponse struct {
	Itinerary *models.Itinerary `json:"itinerary"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// SelectResponse reports the selection state after a toggle.
type SelectResponse struct {
	ID       string `json:"id"`
	Selected bool   `json:"selected"`
}

// ScoresResponse maps itinerary IDs to their scores within the cohort.
type ScoresResponse struct {
	Cohort  []string                      `json:"cohort"`
	Scores  map[string]models.ScoreResult `json:"scores"`
	Ranking *models.Ranking               `json:"ranking,omitempty"`
}

// ScoreRequest is the body of the stateless scoring endpoint.
type ScoreRequest struct {
	Itineraries []json.RawMessage `json:"itineraries"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}
