// Package schedule classifies planned work against "today" and assembles the
// in-progress overview from it.
package schedule

import (
	"sort"

	"reciteflow-backend/internal/models"
)

// Status buckets a segment's planned date relative to the caller-supplied
// today: late (planned < today), today (planned == today), next (planned >
// today). Day keys compare lexicographically.
type Status string

const (
	StatusLate  Status = "late"
	StatusToday Status = "today"
	StatusNext  Status = "next"
)

// Classify is a pure function of (plannedDate, today).
func Classify(plannedDate, today string) Status {
	switch {
	case plannedDate < today:
		return StatusLate
	case plannedDate == today:
		return StatusToday
	default:
		return StatusNext
	}
}

// Rank orders statuses by urgency: late before today before next.
func Rank(s Status) int {
	switch s {
	case StatusLate:
		return 0
	case StatusToday:
		return 1
	default:
		return 2
	}
}

// Classified is a pending segment annotated with its derived status.
type Classified struct {
	models.Segment
	Status Status `json:"status"`
	Label  string `json:"label"`
}

// Sort applies the total order used to pick the most urgent item: status rank,
// then planned date ascending, then id ascending. Sorting an already sorted
// list is a no-op.
func Sort(items []Classified) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if r := Rank(a.Status) - Rank(b.Status); r != 0 {
			return r < 0
		}
		if a.PlannedDate != b.PlannedDate {
			return a.PlannedDate < b.PlannedDate
		}
		return a.ID < b.ID
	})
}
