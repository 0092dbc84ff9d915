package web

import (
	"net/http"
	"strconv"
	"time"
)

// timeNow is a variable for testability.
var timeNow = time.Now

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePerf returns request and query timings from the last ?minutes= (default 15).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}
	minutes := 15
	if v := r.URL.Query().Get("minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid minutes", http.StatusBadRequest)
			return
		}
		minutes = n
	}
	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, 10))
}

// handleCreateTestData appends the sample workshops. Hidden in production.
func handleCreateTestData(w http.ResponseWriter, r *http.Request) {
	if !allowTestData {
		http.NotFound(w, r)
		return
	}
	store.CreateTestData()
	writeJSON(w, http.StatusOK, store.Workshops())
}
