package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"reciteflow-backend/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// List returns every chapter in the catalog.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"chapters": h.catalog.Chapters(r.Context()),
	})
}

// Get returns one chapter by number.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chapter id", r))
		return
	}

	chapter, ok := h.catalog.Chapter(r.Context(), id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chapter not found", r))
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}
