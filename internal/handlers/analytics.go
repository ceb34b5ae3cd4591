package handlers

import (
	"net/http"
	"strconv"
	"time"

	"reciteflow-backend/internal/analytics"
	"reciteflow-backend/internal/scheduler"
	"reciteflow-backend/internal/temporal"
)

const defaultHeatmapMonths = 6

type AnalyticsHandler struct {
	scheduler scheduler.Service
	now       func() time.Time
}

func NewAnalyticsHandler(svc scheduler.Service) *AnalyticsHandler {
	return &AnalyticsHandler{scheduler: svc, now: time.Now}
}

// Streak returns the count of consecutive days with review activity ending
// today.
func (h *AnalyticsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	today := temporal.DayKey(h.now())
	since := temporal.AddDays(today, -(analytics.StreakLookbackCap + 1))

	events, err := h.scheduler.FetchReviewEvents(r.Context(), since)
	if err != nil {
		handleLoadError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"streak": analytics.Streak(events, today),
	})
}

// Activity returns the review heatmap for the trailing window. months is
// clamped to 1..12 and defaults to 6.
func (h *AnalyticsHandler) Activity(w http.ResponseWriter, r *http.Request) {
	months := defaultHeatmapMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			months = n
		}
	}
	if months < 1 {
		months = 1
	}
	if months > 12 {
		months = 12
	}

	now := h.now()
	since := temporal.DayKey(now.AddDate(0, -months, 0))
	events, err := h.scheduler.FetchReviewEvents(r.Context(), since)
	if err != nil {
		handleLoadError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"months": months,
		"days":   analytics.Heatmap(events, months, now),
	})
}

// Weekly returns completed segments bucketed by ISO week.
func (h *AnalyticsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	segments, err := h.scheduler.FetchCompletedSegments(r.Context())
	if err != nil {
		handleLoadError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weeks": analytics.WeeklySegments(segments),
	})
}
