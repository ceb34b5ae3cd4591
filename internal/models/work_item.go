package models

// WorkItem is a previously learned passage now due for spaced-repetition
// recall. Identity and ordering are assigned by the remote scheduler; the
// engine never re-sorts the queue locally.
type WorkItem struct {
	ID      int64  `json:"id"`
	DueDate string `json:"due_date"` // YYYY-MM-DD
	Content string `json:"content"`
}
