// Package analytics derives streak and activity-density views from the
// immutable review-event history.
package analytics

import (
	"reciteflow-backend/internal/models"
	"reciteflow-backend/internal/temporal"
)

// StreakLookbackCap bounds the backward walk as a safety measure against a
// corrupt event history. It is not a domain rule: a genuine streak longer
// than a year is reported as StreakLookbackCap.
const StreakLookbackCap = 365

// Streak counts consecutive calendar days with at least one review event,
// ending at today. A missing today yields 0. Multiple events on the same
// local day count once.
func Streak(events []models.ReviewEvent, today string) int {
	if len(events) == 0 {
		return 0
	}

	days := make(map[string]struct{}, len(events))
	for _, e := range events {
		days[temporal.DayKey(e.OccurredAt)] = struct{}{}
	}

	streak := 0
	cursor := today
	for streak < StreakLookbackCap {
		if _, ok := days[cursor]; !ok {
			break
		}
		streak++
		cursor = temporal.AddDays(cursor, -1)
	}
	return streak
}
