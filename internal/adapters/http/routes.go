package web

import "net/http"

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /api/perf", handlePerf)
	mux.HandleFunc("POST /api/testdata", handleCreateTestData)

	mux.HandleFunc("GET /api/workshops", handleListWorkshops)
	mux.HandleFunc("POST /api/workshops", handleAddWorkshop)
	mux.HandleFunc("GET /api/workshops/filtered", handleFilteredWorkshops)
	mux.HandleFunc("GET /api/workshops/suggestions", handleSuggestions)
	mux.HandleFunc("POST /api/workshops/{id}/select", handleSelectWorkshop)
	mux.HandleFunc("GET /api/workshops/selected", handleSelectedWorkshop)

	mux.HandleFunc("GET /api/filters", handleGetFilters)
	mux.HandleFunc("PUT /api/filters", handleSetFilters)
	mux.HandleFunc("POST /api/filters", handleAddFilter)
	mux.HandleFunc("POST /api/filters/remove", handleRemoveFilter)
}
