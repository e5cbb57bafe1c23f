package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/setunayuki/fukko-portal2/internal/facility"
	mw "github.com/setunayuki/fukko-portal2/internal/middleware"
)

type facilitiesResponse struct {
	Categories []string          `json:"categories"`
	Facilities []facility.Record `json:"facilities"`
}

// handleFacilities serves the whole store. There is no filtering here; clients filter
// locally the same way the page does.
func (a *app) handleFacilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, facilitiesResponse{
		Categories: a.store.Categories(),
		Facilities: a.store.AllRecords(),
	})
}

func (a *app) handleFacility(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.store.Find(chi.URLParam(r, "id"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "facility not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
