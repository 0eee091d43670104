package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/spboyer/tripcompare/internal/cohort"
	"github.com/spboyer/tripcompare/internal/ingest"
	"github.com/spboyer/tripcompare/internal/models"
	"github.com/spboyer/tripcompare/internal/recommend"
	"github.com/spboyer/tripcompare/internal/scoring"
	"github.com/spboyer/tripcompare/internal/validation"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// MaxUploadBytes caps the size of a single request body.
const MaxUploadBytes = 10 << 20

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store  SessionStore
	engine *scoring.Engine
	logger *slog.Logger
}

// NewHandlers creates a new Handlers with the given store. A nil engine
// scores with the default weights.
func NewHandlers(store SessionStore, engine *scoring.Engine) *Handlers {
	if engine == nil {
		engine = scoring.NewEngine()
	}
	return &Handlers{store: store, engine: engine, logger: slog.Default()}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleList returns every stored itinerary with its selection state and the
// filter options derived from them. Optional sort/order query params.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	items := h.store.List()
	sortItineraries(items, r.URL.Query().Get("sort"), r.URL.Query().Get("order"))

	selected := make(map[string]bool)
	for _, id := range h.store.Selected() {
		selected[id] = true
	}

	views := make([]ItineraryView, 0, len(items))
	for _, it := range items {
		views = append(views, ItineraryView{Itinerary: it, Selected: selected[it.ID]})
	}
	lo, hi := cohort.BudgetRange(items)
	dests := cohort.Destinations(items)
	if dests == nil {
		dests = []string{}
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Itineraries:  views,
		Capacity:     h.store.Capacity(),
		Destinations: dests,
		MinBudget:    lo,
		MaxBudget:    hi,
	})
}

// HandleCreate parses an uploaded itinerary document and stores it.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	it, ok := h.readItinerary(w, r)
	if !ok {
		return
	}

	stored, err := h.store.Add(it)
	if err != nil {
		if errors.Is(err, cohort.ErrSessionFull) {
			writeError(w, http.StatusConflict, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	h.logger.Info("itinerary added", "id", stored.ID, "name", stored.Name)
	writeJSON(w, http.StatusCreated, CreateResponse{Itinerary: stored, Warnings: ingest.Check(stored)})
}

// HandleGet returns a single itinerary.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	it, err := h.store.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// HandleUpdate replaces an itinerary's content, keeping its ID.
func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	it, ok := h.readItinerary(w, r)
	if !ok {
		return
	}
	updated, err := h.store.Update(id, it)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes an itinerary.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.Remove(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear removes every itinerary.
func (h *Handlers) HandleClear(w http.ResponseWriter, _ *http.Request) {
	h.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// HandleSelect toggles whether an itinerary is part of the compared subset.
func (h *Handlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	selected, err := h.store.ToggleSelection(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectResponse{ID: id, Selected: selected})
}

// HandleScores scores the session cohort under the filter given by query
// params. Scores are recomputed on every request.
func (h *Handlers) HandleScores(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.scoreCohort(h.store.Cohort(f)))
}

// HandleScore scores the itineraries in the request body without touching
// the session.
func (h *Handlers) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxUploadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Itineraries) == 0 {
		writeError(w, http.StatusBadRequest, "itineraries must not be empty")
		return
	}

	items := make([]*models.Itinerary, 0, len(req.Itineraries))
	for i, raw := range req.Itineraries {
		it, err := ingest.Parse(raw, validation.FormatJSON)
		if err != nil {
			writeParseError(w, fmt.Sprintf("itineraries[%d]", i), err)
			return
		}
		if it.ID == "" {
			it.ID = strconv.Itoa(i + 1)
		}
		items = append(items, it)
	}
	if id, dup := models.DuplicateID(items); dup {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("duplicate itinerary id %q: ids must be unique", id))
		return
	}
	writeJSON(w, http.StatusOK, h.scoreCohort(items))
}

func (h *Handlers) scoreCohort(items []*models.Itinerary) ScoresResponse {
	results := h.engine.ScoreCohort(items)
	ids := models.UniqueIDs(items)
	scores := make(map[string]models.ScoreResult, len(items))
	for i, id := range ids {
		scores[id] = results[i]
	}
	return ScoresResponse{
		Cohort:  ids,
		Scores:  scores,
		Ranking: recommend.Rank(ids, results),
	}
}

func (h *Handlers) readItinerary(w http.ResponseWriter, r *http.Request) (*models.Itinerary, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return nil, false
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		writeError(w, http.StatusBadRequest, "request body is empty")
		return nil, false
	}

	format := validation.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = validation.FormatYAML
	}
	it, err := ingest.Parse(data, format)
	if err != nil {
		writeParseError(w, "itinerary", err)
		return nil, false
	}
	return it, true
}

func parseFilter(r *http.Request) (cohort.Filter, error) {
	q := r.URL.Query()
	var f cohort.Filter
	var err error
	if f.MinBudget, err = floatParam(q.Get("min_budget")); err != nil {
		return f, fmt.Errorf("min_budget: %w", err)
	}
	if f.MaxBudget, err = floatParam(q.Get("max_budget")); err != nil {
		return f, fmt.Errorf("max_budget: %w", err)
	}
	if f.MinNights, err = intParam(q.Get("min_nights")); err != nil {
		return f, fmt.Errorf("min_nights: %w", err)
	}
	if f.MaxNights, err = intParam(q.Get("max_nights")); err != nil {
		return f, fmt.Errorf("max_nights: %w", err)
	}
	for _, d := range q["destination"] {
		if d = strings.TrimSpace(d); d != "" {
			f.Destinations = append(f.Destinations, d)
		}
	}
	return f, nil
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("must be a non-negative number, got %q", s)
	}
	return v, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("must be a non-negative integer, got %q", s)
	}
	return v, nil
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "itinerary id is required")
		return "", false
	}
	return id, true
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store SessionStore, engine *scoring.Engine) {
	h := NewHandlers(store, engine)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/itineraries", h.HandleList)
	mux.HandleFunc("POST /api/itineraries", h.HandleCreate)
	mux.HandleFunc("DELETE /api/itineraries", h.HandleClear)
	mux.HandleFunc("GET /api/itineraries/{id}", h.HandleGet)
	mux.HandleFunc("PUT /api/itineraries/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /api/itineraries/{id}", h.HandleDelete)
	mux.HandleFunc("POST /api/itineraries/{id}/select", h.HandleSelect)
	mux.HandleFunc("GET /api/scores", h.HandleScores)
	mux.HandleFunc("POST /api/score", h.HandleScore)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrItineraryNotFound) {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeParseError(w http.ResponseWriter, what string, err error) {
	var se *ingest.SchemaError
	if errors.As(err, &se) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   what + " does not match the itinerary schema",
			Code:    http.StatusBadRequest,
			Details: se.Problems,
		})
		return
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", what, err))
}
