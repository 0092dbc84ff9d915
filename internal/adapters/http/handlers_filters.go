package web

import (
	"log/slog"
	"net/http"

	domain "workshops/internal/domain/workshop"
)

// handleGetFilters returns the active filter terms as strings and month timestamps.
func handleGetFilters(w http.ResponseWriter, r *http.Request) {
	terms := store.Filter()
	if terms == nil {
		terms = []domain.FilterTerm{}
	}
	writeJSON(w, http.StatusOK, terms)
}

// handleSetFilters replaces the whole filter.
// PRE: body is a JSON array of strings and numbers
// POST: 200 with the new filter; 400 if any term is malformed or empty
func handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var terms []domain.FilterTerm
	if err := strictDecode(r, &terms); err != nil {
		http.Error(w, "invalid filter: "+err.Error(), http.StatusBadRequest)
		return
	}
	for _, t := range terms {
		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	store.SetFilter(terms)
	slog.Debug("filter_set", "count", len(terms))
	handleGetFilters(w, r)
}

// handleAddFilter adds one term unless it is already active.
func handleAddFilter(w http.ResponseWriter, r *http.Request) {
	term, ok := decodeTerm(w, r)
	if !ok {
		return
	}
	store.AddFilter(term)
	handleGetFilters(w, r)
}

// handleRemoveFilter drops the first occurrence of one term.
func handleRemoveFilter(w http.ResponseWriter, r *http.Request) {
	term, ok := decodeTerm(w, r)
	if !ok {
		return
	}
	store.RemoveFilter(term)
	handleGetFilters(w, r)
}

func decodeTerm(w http.ResponseWriter, r *http.Request) (domain.FilterTerm, bool) {
	var term domain.FilterTerm
	if err := strictDecode(r, &term); err != nil {
		http.Error(w, "invalid filter term: "+err.Error(), http.StatusBadRequest)
		return term, false
	}
	if err := term.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return term, false
	}
	return term, true
}
