package cohort

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/tripcompare/internal/models"
)

// DefaultCapacity is the number of itineraries a session holds by default.
const DefaultCapacity = 3

var (
	// ErrNotFound is returned when an id does not match any itinerary in the session.
	ErrNotFound = errors.New("itinerary not found")
	// ErrSessionFull is returned by Add when the session is at capacity.
	ErrSessionFull = errors.New("session is full")
)

// Session holds the itineraries uploaded for one comparison. It is safe for
// concurrent use. It never caches scores; callers rescore the cohort after
// every change.
type Session struct {
	capacity int
	now      func() time.Time
	newID    func() string

	mu       sync.RWMutex
	order    []string
	items    map[string]*models.Itinerary
	selected map[string]bool
}

// NewSession creates an empty session. capacity <= 0 means DefaultCapacity.
func NewSession(capacity int) *Session {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Session{
		capacity: capacity,
		now:      time.Now,
		newID:    uuid.NewString,
		items:    make(map[string]*models.Itinerary),
		selected: make(map[string]bool),
	}
}

// Capacity returns the maximum number of itineraries.
func (s *Session) Capacity() int {
	return s.capacity
}

// Add stores a copy of it under a fresh id and stamps its upload time.
func (s *Session) Add(it *models.Itinerary) (*models.Itinerary, error) {
	if it == nil {
		return nil, errors.New("itinerary is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) >= s.capacity {
		return nil, fmt.Errorf("%w: maximum %d itineraries", ErrSessionFull, s.capacity)
	}

	stored := *it
	stored.ID = s.newID()
	uploaded := s.now().UTC()
	stored.UploadedAt = &uploaded

	s.items[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	out := stored
	return &out, nil
}

// Get returns a copy of the itinerary with the given id.
func (s *Session) Get(id string) (*models.Itinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *it
	return &out, nil
}

// Update replaces the content of an itinerary, keeping its id and upload time.
func (s *Session) Update(id string, it *models.Itinerary) (*models.Itinerary, error) {
	if it == nil {
		return nil, errors.New("itinerary is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated := *it
	updated.ID = existing.ID
	updated.UploadedAt = existing.UploadedAt
	s.items[id] = &updated

	out := updated
	return &out, nil
}

// Remove deletes an itinerary and its selection state.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	delete(s.selected, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of all itineraries in upload order.
func (s *Session) List() []*models.Itinerary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Itinerary, 0, len(s.order))
	for _, id := range s.order {
		it := *s.items[id]
		out = append(out, &it)
	}
	return out
}

// Len returns the number of stored itineraries.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// ToggleSelection flips whether id is selected and returns the new state.
func (s *Session) ToggleSelection(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, ErrNotFound
	}
	if s.selected[id] {
		delete(s.selected, id)
		return false, nil
	}
	s.selected[id] = true
	return true, nil
}

// Selected returns the selected ids in upload order.
func (s *Session) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, id := range s.order {
		if s.selected[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clear removes every itinerary and selection.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.items = make(map[string]*models.Itinerary)
	s.selected = make(map[string]bool)
}

// Cohort returns the itineraries to compare: the selected ones when any are
// selected, otherwise all, then narrowed by f. Order is upload order.
func (s *Session) Cohort(f Filter) []*models.Itinerary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*models.Itinerary, 0, len(s.order))
	for _, id := range s.order {
		if len(s.selected) > 0 && !s.selected[id] {
			continue
		}
		it := *s.items[id]
		items = append(items, &it)
	}
	return f.Apply(items)
}
