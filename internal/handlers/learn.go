package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"reciteflow-backend/internal/middleware"
	"reciteflow-backend/internal/session"
	"reciteflow-backend/internal/temporal"
)

type LearnHandler struct {
	sessions *session.Manager
	now      func() time.Time
}

func NewLearnHandler(sessions *session.Manager) *LearnHandler {
	return &LearnHandler{sessions: sessions, now: time.Now}
}

// Start opens a memorization session. segment_id zero (or absent) picks
// today's segment: the earliest pending one planned on or before today.
// A session that finds nothing to work on is still a session; the snapshot
// reports not_found.
func (h *LearnHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		SegmentID int64 `json:"segment_id"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	today := temporal.DayKey(h.now())
	s, err := h.sessions.StartLearn(r.Context(), userID, req.SegmentID, today)
	if err != nil {
		handleLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Get returns the current session snapshot.
func (h *LearnHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Learn(middleware.GetUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No active learn session", r))
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Complete marks the loaded segment memorized and seeds its review
// schedule.
func (h *LearnHandler) Complete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Learn(middleware.GetUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No active learn session", r))
		return
	}

	if err := s.Complete(r.Context()); err != nil {
		handleSubmitError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}
