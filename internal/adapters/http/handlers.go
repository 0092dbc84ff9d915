package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"workshops/internal/application/listutil"
	"workshops/internal/application/workshopstore"
	domain "workshops/internal/domain/workshop"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

func renderTeaser(teaser string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(teaser), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeList sorts and pages list per the query string. Paging metadata goes in headers
// so the body stays a plain array.
func writeList(w http.ResponseWriter, r *http.Request, list []domain.BaseWorkshop) {
	if list == nil {
		list = []domain.BaseWorkshop{}
	}
	q := r.URL.Query()
	listutil.SortWorkshops(list, listutil.ParseSortParams(q))

	if pp := listutil.ParsePageParams(q); pp.Set {
		info := listutil.NewPageInfo(pp.Page, pp.PerPage, len(list))
		w.Header().Set("X-Total-Count", strconv.Itoa(info.Total))
		w.Header().Set("X-Page", strconv.Itoa(info.Page))
		w.Header().Set("X-Total-Pages", strconv.Itoa(info.TotalPages))
		list = listutil.Paginate(list, info)
	}
	writeJSON(w, http.StatusOK, list)
}

// handleListWorkshops returns every listed workshop.
func handleListWorkshops(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, store.Workshops())
}

// handleAddWorkshop validates and lists a new workshop.
// PRE: body is a JSON BaseWorkshop
// POST: 201 with the workshop on success, 400 on a malformed or invalid body
func handleAddWorkshop(w http.ResponseWriter, r *http.Request) {
	var ws domain.BaseWorkshop
	if err := strictDecode(r, &ws); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := ws.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ws.Tags == nil {
		ws.Tags = []string{}
	}
	store.AddWorkshop(ws)
	slog.Info("workshop_added", "id", ws.ID, "type", ws.Type)
	writeJSON(w, http.StatusCreated, ws)
}

func handleFilteredWorkshops(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, store.FilteredWorkshops())
}

// handleSuggestions returns the distinct candidate values containing ?q=.
func handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.MatchingQueries(r.URL.Query().Get("q")))
}

// handleSelectWorkshop selects the workshop named by the path id.
// PRE: {id} is an integer
// POST: 200 with the selection, 404 when the id is not listed or has no detail,
// 400 for a malformed id, 500 when the detail source fails
func handleSelectWorkshop(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid workshop id", http.StatusBadRequest)
		return
	}

	ok, err := store.SelectWorkshop(r.Context(), id)
	if err != nil {
		internalError(w, err)
		return
	}
	if !ok {
		http.Error(w, "workshop not found", http.StatusNotFound)
		return
	}
	writeSelected(w)
}

func handleSelectedWorkshop(w http.ResponseWriter, r *http.Request) {
	writeSelected(w)
}

// selectedResponse is the selected workshop plus rendering hints for clients.
type selectedResponse struct {
	domain.Workshop[domain.Content]
	ContentKind string `json:"contentKind"`
	TeaserHTML  string `json:"teaserHtml"`
}

func writeSelected(w http.ResponseWriter) {
	sel, err := store.SelectedWorkshop()
	if errors.Is(err, workshopstore.ErrNoSelection) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	html, err := renderTeaser(sel.Teaser)
	if err != nil {
		internalError(w, err)
		return
	}
	resp := selectedResponse{Workshop: sel, TeaserHTML: html}
	if sel.Content != nil {
		resp.ContentKind = sel.Content.ContentKind()
	}
	writeJSON(w, http.StatusOK, resp)
}
