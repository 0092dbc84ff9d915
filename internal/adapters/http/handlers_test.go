package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workshops/internal/adapters/http/perf"
	"workshops/internal/application/workshopstore"
	domain "workshops/internal/domain/workshop"
)

type failingDetails struct{}

// FetchWorkshop always fails.
// PRE: none
// POST: Returns a non-NotFound error
func (failingDetails) FetchWorkshop(context.Context, domain.BaseWorkshop) (domain.Workshop[domain.Content], error) {
	return domain.Workshop[domain.Content]{}, errors.New("backend down")
}

func newTestServer(t *testing.T, details workshopstore.DetailSource, opts Options) (http.Handler, *workshopstore.Store) {
	t.Helper()
	s := workshopstore.New(workshopstore.Deps{Details: details, Location: time.UTC})
	s.CreateTestData()
	opts.CSRFKey = make([]byte, 32)
	opts.RateLimitPerSecond = 1000
	return NewMux(Deps{Store: s, Collector: perf.NewCollector(100)}, opts), s
}

func doJSON(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeIDs(t *testing.T, rr *httptest.ResponseRecorder) []int {
	t.Helper()
	var list []domain.BaseWorkshop
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ids := make([]int, len(list))
	for i, w := range list {
		ids[i] = w.ID
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestHealthz responds without timing or auth.
func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t, nil, Options{})
	rr := doJSON(h, "GET", "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

// TestListWorkshops returns the seeded workshops in insertion order.
func TestListWorkshops(t *testing.T) {
	h, _ := newTestServer(t, nil, Options{})
	rr := doJSON(h, "GET", "/api/workshops", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decodeIDs(t, rr); !equalInts(got, []int{24, 1, 33, 31, 93}) {
		t.Fatalf("ids = %v", got)
	}
}

// TestListWorkshops_SortAndPage orders and pages without touching the store order.
func TestListWorkshops_SortAndPage(t *testing.T) {
	h, s := newTestServer(t, nil, Options{})

	rr := doJSON(h, "GET", "/api/workshops?sort=date&page=2&per_page=10", "")
	if got := decodeIDs(t, rr); !equalInts(got, []int{93, 31, 33, 24, 1}) {
		t.Fatalf("page 2 of 1 should clamp to page 1 sorted by date, got %v", got)
	}
	if rr.Header().Get("X-Page") != "1" {
		t.Errorf("X-Page = %q, want 1", rr.Header().Get("X-Page"))
	}

	rr = doJSON(h, "GET", "/api/workshops?sort=upvotes&dir=desc&page=1&per_page=10", "")
	if rr.Header().Get("X-Total-Count") != "5" || rr.Header().Get("X-Total-Pages") != "1" {
		t.Errorf("headers = %v", rr.Header())
	}
	if got := decodeIDs(t, rr); !equalInts(got, []int{24, 33, 31, 93, 1}) {
		t.Fatalf("sorted ids = %v", got)
	}

	if got := s.Workshops(); got[0].ID != 24 || got[1].ID != 1 {
		t.Error("sorting the response must not reorder the store")
	}
}

// TestListWorkshops_EmptyIsArray never answers null.
func TestListWorkshops_EmptyIsArray(t *testing.T) {
	s := workshopstore.New(workshopstore.Deps{})
	h := NewMux(Deps{Store: s}, Options{CSRFKey: make([]byte, 32)})
	rr := doJSON(h, "GET", "/api/workshops/filtered", "")
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("body = %q, want []", rr.Body.String())
	}
}

// TestAddWorkshop validates the body before listing it.
func TestAddWorkshop(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"id":7,"type":"Retro","place":{"name":"Köln"},"date":0,"tags":["x"],"upvotes":0,"teaser":"t"}`, http.StatusCreated},
		{"missing type", `{"id":8,"type":"","place":{"name":"Köln"}}`, http.StatusBadRequest},
		{"missing place", `{"id":9,"type":"Retro","place":{"name":" "}}`, http.StatusBadRequest},
		{"unknown field", `{"id":10,"type":"Retro","place":{"name":"Köln"},"owner":"x"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s := newTestServer(t, nil, Options{})
			rr := doJSON(h, "POST", "/api/workshops", tt.body)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.want, rr.Body.String())
			}
			wantLen := 5
			if tt.want == http.StatusCreated {
				wantLen = 6
			}
			if n := len(s.Workshops()); n != wantLen {
				t.Errorf("listed = %d, want %d", n, wantLen)
			}
		})
	}
}

// TestFilters_AddAndFiltered narrows the filtered list as terms are added.
func TestFilters_AddAndFiltered(t *testing.T) {
	h, _ := newTestServer(t, nil, Options{})

	if rr := doJSON(h, "POST", "/api/filters", `"Berlin"`); rr.Code != http.StatusOK {
		t.Fatalf("add status = %d", rr.Code)
	}
	if got := decodeIDs(t, doJSON(h, "GET", "/api/workshops/filtered", "")); !equalInts(got, []int{1, 33, 31, 93}) {
		t.Fatalf("after Berlin = %v", got)
	}

	doJSON(h, "POST", "/api/filters", `"easda"`)
	doJSON(h, "POST", "/api/filters", `"easda"`)
	if got := decodeIDs(t, doJSON(h, "GET", "/api/workshops/filtered", "")); !equalInts(got, []int{93}) {
		t.Fatalf("after easda = %v", got)
	}

	rr := doJSON(h, "GET", "/api/filters", "")
	var terms []domain.FilterTerm
	if err := json.NewDecoder(rr.Body).Decode(&terms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(terms) != 2 {
		t.Fatalf("terms = %v, want [Berlin easda]", terms)
	}

	doJSON(h, "POST", "/api/filters/remove", `"Berlin"`)
	if got := decodeIDs(t, doJSON(h, "GET", "/api/workshops/filtered", "")); !equalInts(got, []int{93}) {
		t.Fatalf("after remove = %v", got)
	}
}

// TestFilters_Set replaces the filter and accepts month timestamps.
func TestFilters_Set(t *testing.T) {
	h, s := newTestServer(t, nil, Options{})
	month := time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	body, _ := json.Marshal([]any{"Berlin", month})
	rr := doJSON(h, "PUT", "/api/filters", string(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	want := []domain.FilterTerm{domain.TextTerm("Berlin"), domain.MonthTerm(month)}
	got := s.Filter()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("filter = %v, want %v", got, want)
	}
}

// TestFilters_Invalid rejects empty and non-scalar terms.
func TestFilters_Invalid(t *testing.T) {
	h, s := newTestServer(t, nil, Options{})
	for _, body := range []string{`""`, `{"text":"x"}`, `null`, `true`} {
		if rr := doJSON(h, "POST", "/api/filters", body); rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rr.Code)
		}
	}
	if rr := doJSON(h, "PUT", "/api/filters", `["ok", ""]`); rr.Code != http.StatusBadRequest {
		t.Errorf("PUT with empty term: status = %d, want 400", rr.Code)
	}
	if len(s.Filter()) != 0 {
		t.Errorf("filter changed: %v", s.Filter())
	}
}

// TestSuggestions returns distinct candidates in first-seen order.
func TestSuggestions(t *testing.T) {
	h, _ := newTestServer(t, nil, Options{})
	rr := doJSON(h, "GET", "/api/workshops/suggestions?q=berl", "")
	var got []string
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0] != "Berlin" {
		t.Fatalf("suggestions = %v, want [Berlin]", got)
	}

	rr = doJSON(h, "GET", "/api/workshops/suggestions?q=zzz", "")
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("empty suggestions body = %q, want []", rr.Body.String())
	}
}

// TestSelectWorkshop covers every status the select route can return.
func TestSelectWorkshop(t *testing.T) {
	tests := []struct {
		name    string
		details workshopstore.DetailSource
		path    string
		want    int
	}{
		{"found", nil, "/api/workshops/24/select", http.StatusOK},
		{"not listed", nil, "/api/workshops/4711/select", http.StatusNotFound},
		{"bad id", nil, "/api/workshops/abc/select", http.StatusBadRequest},
		{"source error", failingDetails{}, "/api/workshops/24/select", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s := newTestServer(t, tt.details, Options{})
			rr := doJSON(h, "POST", tt.path, "")
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if s.HasSelection() != (tt.want == http.StatusOK) {
				t.Errorf("HasSelection = %v", s.HasSelection())
			}
		})
	}
}

// TestSelectedWorkshop renders the teaser and names the content kind.
func TestSelectedWorkshop(t *testing.T) {
	h, _ := newTestServer(t, nil, Options{})

	if rr := doJSON(h, "GET", "/api/workshops/selected", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("before select: status = %d, want 404", rr.Code)
	}

	doJSON(h, "POST", "/api/workshops/24/select", "")
	rr := doJSON(h, "GET", "/api/workshops/selected", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var got struct {
		ID           int      `json:"id"`
		Facilitators []string `json:"facilitators"`
		Visibility   string   `json:"visibility"`
		ContentKind  string   `json:"contentKind"`
		TeaserHTML   string   `json:"teaserHtml"`
		Content      struct {
			ProblemStatements []domain.ProblemStatement `json:"problemStatements"`
		} `json:"content"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 24 || got.Visibility != "public" || got.ContentKind != domain.ContentKindProblemStatements {
		t.Errorf("selected = %+v", got)
	}
	if len(got.Facilitators) != 2 || len(got.Content.ProblemStatements) != 3 {
		t.Errorf("detail = %+v", got)
	}
	if !strings.HasPrefix(got.TeaserHTML, "<p>") {
		t.Errorf("teaserHtml = %q", got.TeaserHTML)
	}
}

// TestCreateTestData is hidden unless allowed.
func TestCreateTestData(t *testing.T) {
	h, s := newTestServer(t, nil, Options{})
	if rr := doJSON(h, "POST", "/api/testdata", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("disallowed: status = %d, want 404", rr.Code)
	}
	if n := len(s.Workshops()); n != 5 {
		t.Fatalf("listed = %d, want 5", n)
	}

	h, s = newTestServer(t, nil, Options{AllowTestData: true})
	if rr := doJSON(h, "POST", "/api/testdata", ""); rr.Code != http.StatusOK {
		t.Fatalf("allowed: status = %d", rr.Code)
	}
	if n := len(s.Workshops()); n != 10 {
		t.Fatalf("listed = %d, want 10", n)
	}
}

// TestPerf reports the requests made so far.
func TestPerf(t *testing.T) {
	h, _ := newTestServer(t, nil, Options{})
	doJSON(h, "GET", "/api/workshops", "")

	rr := doJSON(h, "GET", "/api/perf?minutes=5", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var snap perf.Snapshot
	if err := json.NewDecoder(rr.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.TotalRecorded < 1 {
		t.Errorf("TotalRecorded = %d", snap.TotalRecorded)
	}

	if rr := doJSON(h, "GET", "/api/perf?minutes=-1", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("bad minutes: status = %d, want 400", rr.Code)
	}
}

// TestBodilessPosts_WithoutContentType serves select and test data to clients that send no body.
func TestBodilessPosts_WithoutContentType(t *testing.T) {
	h, s := newTestServer(t, nil, Options{AllowTestData: true})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/workshops/24/select", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("select status = %d (%s), want 200", rr.Code, rr.Body.String())
	}
	if !s.HasSelection() {
		t.Fatal("workshop 24 should be selected")
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/testdata", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("testdata status = %d (%s), want 200", rr.Code, rr.Body.String())
	}
}
