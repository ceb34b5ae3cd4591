package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"reciteflow-backend/internal/learn"
	"reciteflow-backend/internal/models"
	"reciteflow-backend/internal/review"
	"reciteflow-backend/internal/scheduler"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handleLoadError maps a failed fetch from the scheduling service onto the
// error envelope.
func handleLoadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, scheduler.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Not found", r))
		return
	}
	writeJSON(w, http.StatusBadGateway, errorResp("LOAD_FAILED", scheduler.RemoteMessage(err), r))
}

// handleSubmitError maps a failed write to the scheduling service, plus the
// client-side validation errors the session engines raise before submitting.
func handleSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *review.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", verr.Message, r))
	case errors.Is(err, review.ErrNoCurrentItem):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No current item to grade", r))
	case errors.Is(err, learn.ErrNoContent):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Segment content is empty", r))
	case errors.Is(err, learn.ErrNotLoaded):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No loaded segment to complete", r))
	case errors.Is(err, scheduler.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Not found", r))
	default:
		writeJSON(w, http.StatusBadGateway, errorResp("SUBMIT_FAILED", scheduler.RemoteMessage(err), r))
	}
}
