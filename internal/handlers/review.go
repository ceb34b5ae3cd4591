package handlers

import (
	"encoding/json"
	"net/http"

	"reciteflow-backend/internal/middleware"
	"reciteflow-backend/internal/review"
	"reciteflow-backend/internal/session"
)

type ReviewHandler struct {
	sessions *session.Manager
}

func NewReviewHandler(sessions *session.Manager) *ReviewHandler {
	return &ReviewHandler{sessions: sessions}
}

// Start begins a review session in the requested mode and loads the due
// queue. An existing session for the user is superseded.
func (h *ReviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		Mode string `json:"mode"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	mode := review.ModePlain
	switch req.Mode {
	case "", string(review.ModePlain):
	case string(review.ModeQuiz):
		mode = review.ModeQuiz
	default:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Mode must be plain or quiz", r))
		return
	}

	engine, err := h.sessions.StartReview(r.Context(), userID, mode)
	if err != nil {
		handleLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

// Get returns the current session snapshot.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.sessions.Review(middleware.GetUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No active review session", r))
		return
	}
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

// Reload refetches the due queue for the live session.
func (h *ReviewHandler) Reload(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.sessions.Review(middleware.GetUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No active review session", r))
		return
	}
	if err := engine.Load(r.Context()); err != nil {
		handleLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

// Grade submits a recall quality for the current item.
func (h *ReviewHandler) Grade(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.sessions.Review(middleware.GetUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No active review session", r))
		return
	}

	var req struct {
		Quality int `json:"quality"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := engine.Grade(r.Context(), req.Quality); err != nil {
		handleSubmitError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

// Key feeds a keyboard key through the session's keymap.
func (h *ReviewHandler) Key(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.sessions.Review(middleware.GetUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No active review session", r))
		return
	}

	var req struct {
		Key    string `json:"key"`
		Typing bool   `json:"typing"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	handled, err := engine.HandleKey(r.Context(), req.Key, req.Typing)
	if err != nil {
		handleSubmitError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"handled":  handled,
		"snapshot": engine.Snapshot(),
	})
}

// Reveal shows the current item; Hide hides it again.
func (h *ReviewHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, func(e *review.Engine) { e.Reveal() })
}

func (h *ReviewHandler) Hide(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, func(e *review.Engine) { e.Hide() })
}

// Pause freezes the countdown; Resume continues it.
func (h *ReviewHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, func(e *review.Engine) { e.Pause() })
}

func (h *ReviewHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, func(e *review.Engine) { e.Resume() })
}

// End tears the session down.
func (h *ReviewHandler) End(w http.ResponseWriter, r *http.Request) {
	h.sessions.EndReview(middleware.GetUserID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) withEngine(w http.ResponseWriter, r *http.Request, fn func(*review.Engine)) {
	engine, ok := h.sessions.Review(middleware.GetUserID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No active review session", r))
		return
	}
	fn(engine)
	writeJSON(w, http.StatusOK, engine.Snapshot())
}
