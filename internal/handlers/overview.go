package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"reciteflow-backend/internal/schedule"
	"reciteflow-backend/internal/temporal"
)

type OverviewHandler struct {
	assembler *schedule.Assembler
	now       func() time.Time
}

func NewOverviewHandler(assembler *schedule.Assembler) *OverviewHandler {
	return &OverviewHandler{assembler: assembler, now: time.Now}
}

// Get returns the classified schedule: every pending segment with its
// status, the priority segment, and the late/today/next counts.
func (h *OverviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	overview, err := h.assembler.Build(r.Context(), temporal.DayKey(h.now()))
	if err != nil {
		handleLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// Reschedule moves a pending segment to a new planned date and returns the
// rebuilt overview.
func (h *OverviewHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	segmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid segment id", r))
		return
	}

	var req struct {
		PlannedDate string `json:"planned_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if _, err := temporal.ParseDay(req.PlannedDate); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "planned_date must be YYYY-MM-DD", r))
		return
	}

	overview, err := h.assembler.Reschedule(r.Context(), segmentID, req.PlannedDate, temporal.DayKey(h.now()))
	if err != nil {
		handleSubmitError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
