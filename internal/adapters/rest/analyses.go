package rest

import (
	"net/http"
	"strconv"
)

// ListAnalyses handles GET /api/analyses?limit=N.
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	list, err := h.svc.ListAnalyses(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetAnalysis handles GET /api/analyses/{id}.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ListGenres handles GET /api/genres.
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Catalog())
}
