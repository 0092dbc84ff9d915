// Package workshopstore holds the client-facing workshop state: the listed
// workshops, the active filter, and the currently selected workshop.
package workshopstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	domain "workshops/internal/domain/workshop"
)

// ErrNoSelection is returned when the selected workshop is read before any successful selection.
var ErrNoSelection = errors.New("no workshop currently selected")

// DetailSource produces the full record for a listed workshop.
// Implementations return domain.ErrNotFound when no detail exists for base.ID.
type DetailSource interface {
	FetchWorkshop(ctx context.Context, base domain.BaseWorkshop) (domain.Workshop[domain.Content], error)
}

// Deps holds dependencies for Store.
type Deps struct {
	Details  DetailSource   // nil means PlaceholderDetails
	Location *time.Location // calendar for month terms; nil means time.Local
}

// Store is the workshop state container.
// INVARIANT: filter never gains a duplicate through AddFilter
// INVARIANT: selected is nil or a workshop whose id matched a listed workshop when selected
type Store struct {
	mu       sync.RWMutex
	all      []domain.BaseWorkshop
	filter   []domain.FilterTerm
	selected *domain.Workshop[domain.Content]

	details DetailSource
	loc     *time.Location
}

// New creates an empty Store.
// PRE: none
// POST: Returns a store with no workshops, no filter, and no selection
func New(deps Deps) *Store {
	s := &Store{details: deps.Details, loc: deps.Location}
	if s.details == nil {
		s.details = PlaceholderDetails{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

// Location returns the calendar used for month terms.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Workshops returns every listed workshop in insertion order.
// POST: Returns a deep copy; mutating it or its Tags does not affect the store
func (s *Store) Workshops() []domain.BaseWorkshop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWorkshops(s.all)
}

// cloneWorkshops copies list including each Tags slice.
func cloneWorkshops(list []domain.BaseWorkshop) []domain.BaseWorkshop {
	out := slices.Clone(list)
	for i := range out {
		out[i].Tags = slices.Clone(out[i].Tags)
	}
	return out
}

// FilteredWorkshops returns the workshops matching every filter term.
// PRE: none
// POST: Returns Workshops() when the filter is empty; otherwise the stable subsequence matching all terms
func (s *Store) FilteredWorkshops() []domain.BaseWorkshop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.filter) == 0 {
		return cloneWorkshops(s.all)
	}
	out := make([]domain.BaseWorkshop, 0, len(s.all))
	for _, w := range s.all {
		if s.matchesAll(w) {
			w.Tags = slices.Clone(w.Tags)
			out = append(out, w)
		}
	}
	return out
}

func (s *Store) matchesAll(w domain.BaseWorkshop) bool {
	for _, term := range s.filter {
		if !term.Matches(w, s.loc) {
			return false
		}
	}
	return true
}

// MatchingQueries returns autocomplete suggestions for query.
// PRE: none
// POST: Each distinct type, place name or tag containing query (case-insensitive) appears once, in first-seen order
func (s *Store) MatchingQueries(query string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := []string{}
	for _, w := range s.all {
		for _, c := range w.Candidates(query) {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// SelectedWorkshop returns the currently selected full workshop.
// PRE: a SelectWorkshop call has succeeded
// POST: Returns ErrNoSelection if nothing has been selected yet
func (s *Store) SelectedWorkshop() (domain.Workshop[domain.Content], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return domain.Workshop[domain.Content]{}, ErrNoSelection
	}
	return *s.selected, nil
}

// HasSelection reports whether a workshop is selected.
func (s *Store) HasSelection() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected != nil
}

// Filter returns the current filter terms in insertion order.
func (s *Store) Filter() []domain.FilterTerm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.filter)
}

// SetFilter replaces the filter wholesale. Duplicates are kept as given.
func (s *Store) SetFilter(terms []domain.FilterTerm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = slices.Clone(terms)
}

// AddFilter appends term unless an equal term is already present.
// POST: term is present exactly as often as before, or once if it was absent
func (s *Store) AddFilter(term domain.FilterTerm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.filter, term) {
		return
	}
	s.filter = append(s.filter, term)
}

// RemoveFilter removes the first occurrence of term. Absent terms are a no-op.
func (s *Store) RemoveFilter(term domain.FilterTerm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.filter, term); i >= 0 {
		s.filter = slices.Delete(s.filter, i, i+1)
	}
}

// AddWorkshop appends a copy of w to the list. Ids are not checked for uniqueness.
func (s *Store) AddWorkshop(w domain.BaseWorkshop) {
	w.Tags = slices.Clone(w.Tags)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, w)
}

func (s *Store) setSelectedWorkshop(w domain.Workshop[domain.Content]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &w
}

// SelectWorkshop loads the full record for id and makes it the selection.
// PRE: ctx is valid
// POST: Returns true and sets the selection on success; returns false with the selection untouched
// when id is not listed or the detail source has no record; other source errors are returned
func (s *Store) SelectWorkshop(ctx context.Context, id int) (bool, error) {
	base, ok := s.find(id)
	if !ok {
		slog.Debug("workshop_select_miss", "id", id)
		return false, nil
	}

	full, err := s.details.FetchWorkshop(ctx, base)
	if errors.Is(err, domain.ErrNotFound) {
		slog.Debug("workshop_detail_missing", "id", id)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch workshop %d: %w", id, err)
	}

	s.setSelectedWorkshop(full)
	slog.Info("workshop_selected", "id", id, "content_kind", contentKind(full.Content))
	return true, nil
}

func (s *Store) find(id int) (domain.BaseWorkshop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.all {
		if w.ID == id {
			return w, true
		}
	}
	return domain.BaseWorkshop{}, false
}

func contentKind(c domain.Content) string {
	if c == nil {
		return ""
	}
	return c.ContentKind()
}
