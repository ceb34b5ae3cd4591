package learn

import (
	"context"
	"errors"
	"sync"

	"reciteflow-backend/internal/models"
	"reciteflow-backend/internal/scheduler"
)

// State is the lifecycle phase of a memorization session.
type State string

const (
	StateLoading    State = "loading"
	StateNotFound   State = "not_found"
	StateLoaded     State = "loaded"
	StateCompleting State = "completing"
	StateCompleted  State = "completed"
)

// ErrNoContent rejects completion of a segment whose content never loaded;
// marking it done would initialize review scheduling for text the user
// never saw.
var ErrNoContent = errors.New("segment content is empty")

// ErrNotLoaded is returned when Complete is called outside the loaded state.
var ErrNotLoaded = errors.New("no loaded segment to complete")

// Snapshot is a point-in-time view of a session, safe to serialize.
type Snapshot struct {
	State   State                `json:"state"`
	Segment *models.Segment      `json:"segment,omitempty"`
	Content []models.ContentUnit `json:"content,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// Session drives one user's work on a single planned segment, from pick to
// completion. Safe for concurrent use.
type Session struct {
	scheduler scheduler.Service

	mu      sync.Mutex
	state   State
	segment *models.Segment
	content []models.ContentUnit
	lastErr string
	loadGen uint64
}

func NewSession(svc scheduler.Service) *Session {
	return &Session{scheduler: svc, state: StateLoading}
}

// Load resolves the segment to work on and fetches its content. A positive
// segmentID selects that segment explicitly; zero picks the earliest pending
// segment planned on or before today, breaking planned-date ties by day
// index. A Load superseded by a newer Load discards its result.
func (s *Session) Load(ctx context.Context, segmentID int64, today string) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.state = StateLoading
	s.lastErr = ""
	s.mu.Unlock()

	segment, err := s.resolve(ctx, segmentID, today)

	if err == nil && segment != nil {
		var content []models.ContentUnit
		content, err = s.scheduler.FetchSegmentContent(ctx, segment.ID)
		if err == nil {
			return s.finishLoad(gen, segment, content)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		return nil
	}
	if err != nil {
		if errors.Is(err, scheduler.ErrNotFound) {
			s.state = StateNotFound
			return nil
		}
		s.state = StateNotFound
		s.lastErr = scheduler.RemoteMessage(err)
		return err
	}
	// No segment is pending on or before today.
	s.state = StateNotFound
	return nil
}

func (s *Session) finishLoad(gen uint64, segment *models.Segment, content []models.ContentUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		return nil
	}
	s.segment = segment
	s.content = content
	s.state = StateLoaded
	return nil
}

func (s *Session) resolve(ctx context.Context, segmentID int64, today string) (*models.Segment, error) {
	if segmentID > 0 {
		return s.scheduler.FetchSegment(ctx, segmentID)
	}
	pending, err := s.scheduler.FetchPendingSegments(ctx)
	if err != nil {
		return nil, err
	}
	var pick *models.Segment
	for i := range pending {
		seg := &pending[i]
		if !seg.Pending() || seg.PlannedDate > today {
			continue
		}
		if pick == nil ||
			seg.PlannedDate < pick.PlannedDate ||
			(seg.PlannedDate == pick.PlannedDate && seg.DayIndex < pick.DayIndex) {
			pick = seg
		}
	}
	if pick == nil {
		return nil, nil
	}
	segment := *pick
	return &segment, nil
}

// Complete marks the loaded segment memorized and asks the scheduler to
// seed its review intervals. On remote failure the session stays loaded so
// the user can retry.
func (s *Session) Complete(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoaded || s.segment == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if len(s.content) == 0 {
		s.mu.Unlock()
		return ErrNoContent
	}
	segmentID := s.segment.ID
	s.state = StateCompleting
	s.mu.Unlock()

	err := s.scheduler.CompleteSegmentAndInitSchedule(ctx, segmentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateLoaded
		s.lastErr = scheduler.RemoteMessage(err)
		return err
	}
	s.state = StateCompleted
	s.lastErr = ""
	return nil
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State: s.state,
		Error: s.lastErr,
	}
	if s.segment != nil {
		segment := *s.segment
		snap.Segment = &segment
	}
	if len(s.content) > 0 {
		snap.Content = make([]models.ContentUnit, len(s.content))
		copy(snap.Content, s.content)
	}
	return snap
}
