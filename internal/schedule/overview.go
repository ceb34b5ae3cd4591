package schedule

import (
	"context"
	"fmt"

	"reciteflow-backend/internal/scheduler"
)

// Overview is the assembled in-progress view: every pending segment classified
// and sorted by urgency, with aggregate counts. Priority is the head of the
// sorted list, the single most urgent item.
type Overview struct {
	Segments []Classified `json:"segments"`
	Priority *Classified  `json:"priority,omitempty"`
	Counts   Counts       `json:"counts"`
}

type Counts struct {
	Late  int `json:"late"`
	Today int `json:"today"`
	Next  int `json:"next"`
	Total int `json:"total"`
}

// Assembler composes classifier output across all pending segments.
type Assembler struct {
	scheduler scheduler.Service
}

func NewAssembler(svc scheduler.Service) *Assembler {
	return &Assembler{scheduler: svc}
}

// Build fetches pending segments and returns them classified, sorted, and
// counted against the supplied today key.
func (a *Assembler) Build(ctx context.Context, today string) (*Overview, error) {
	segments, err := a.scheduler.FetchPendingSegments(ctx)
	if err != nil {
		return nil, err
	}

	classified := make([]Classified, 0, len(segments))
	for _, seg := range segments {
		if !seg.Pending() {
			continue
		}
		status := Classify(seg.PlannedDate, today)
		classified = append(classified, Classified{
			Segment: seg,
			Status:  status,
			Label:   label(status, seg.PlannedDate),
		})
	}
	Sort(classified)

	overview := &Overview{Segments: classified}
	for i := range classified {
		switch classified[i].Status {
		case StatusLate:
			overview.Counts.Late++
		case StatusToday:
			overview.Counts.Today++
		default:
			overview.Counts.Next++
		}
	}
	overview.Counts.Total = len(classified)
	if len(classified) > 0 {
		overview.Priority = &classified[0]
	}
	return overview, nil
}

// Reschedule moves a pending segment to a new planned date, then rebuilds the
// overview so status counts reflect the change immediately.
func (a *Assembler) Reschedule(ctx context.Context, segmentID int64, newPlannedDate, today string) (*Overview, error) {
	if err := a.scheduler.RescheduleSegment(ctx, segmentID, newPlannedDate); err != nil {
		return nil, err
	}
	return a.Build(ctx, today)
}

func label(s Status, plannedDate string) string {
	switch s {
	case StatusLate:
		return fmt.Sprintf("Late since %s", plannedDate)
	case StatusToday:
		return "Today"
	default:
		return fmt.Sprintf("Planned for %s", plannedDate)
	}
}
