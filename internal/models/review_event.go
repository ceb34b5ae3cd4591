package models

import "time"

// ReviewEvent is an immutable fact appended by the remote scheduler whenever
// a grade is submitted. It is the source of truth for streak and heatmap
// analytics; the client never mutates or deletes these.
type ReviewEvent struct {
	OccurredAt time.Time `json:"occurred_at"`
}
