package models

import (
	"fmt"
	"time"
)

// Segment is a contiguous page range of new material planned for a given
// date. CompletedAt == nil means the segment is still pending.
type Segment struct {
	ID          int64      `json:"id"`
	ProgramID   int64      `json:"program_id"`
	PlannedDate string     `json:"planned_date"` // YYYY-MM-DD
	DayIndex    int        `json:"day_index"`
	PageFrom    int        `json:"page_from"`
	PageTo      int        `json:"page_to"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (s Segment) Pending() bool {
	return s.CompletedAt == nil
}

// PagesLabel renders the page range for display ("Page 12" or "Pages 12–14").
func (s Segment) PagesLabel() string {
	if s.PageFrom == s.PageTo {
		return fmt.Sprintf("Page %d", s.PageFrom)
	}
	return fmt.Sprintf("Pages %d–%d", s.PageFrom, s.PageTo)
}

// ContentUnit is a single numbered passage inside a segment's page range.
type ContentUnit struct {
	ID           int64  `json:"id"`
	NumberInUnit int    `json:"number_in_unit"`
	Text         string `json:"text"`
	Page         int    `json:"page"`
}
