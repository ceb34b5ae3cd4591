package learn

import (
	"context"
	"errors"
	"testing"
	"time"

	"reciteflow-backend/internal/models"
	"reciteflow-backend/internal/scheduler"
)

type fakeService struct {
	segments    []models.Segment
	content     map[int64][]models.ContentUnit
	fetchErr    error
	completeErr error
	completed   []int64
}

func (f *fakeService) FetchDueWorkItems(ctx context.Context, asOfDate string, limit int) ([]models.WorkItem, error) {
	return nil, nil
}

func (f *fakeService) SubmitGrade(ctx context.Context, itemID int64, quality int) error {
	return nil
}

func (f *fakeService) CompleteSegmentAndInitSchedule(ctx context.Context, segmentID int64) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed = append(f.completed, segmentID)
	return nil
}

func (f *fakeService) FetchReviewEvents(ctx context.Context, sinceDate string) ([]models.ReviewEvent, error) {
	return nil, nil
}

func (f *fakeService) FetchPendingSegments(ctx context.Context) ([]models.Segment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.segments, nil
}

func (f *fakeService) FetchCompletedSegments(ctx context.Context) ([]models.Segment, error) {
	return nil, nil
}

func (f *fakeService) FetchSegment(ctx context.Context, id int64) (*models.Segment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	for i := range f.segments {
		if f.segments[i].ID == id {
			segment := f.segments[i]
			return &segment, nil
		}
	}
	return nil, scheduler.ErrNotFound
}

func (f *fakeService) FetchSegmentContent(ctx context.Context, segmentID int64) ([]models.ContentUnit, error) {
	return f.content[segmentID], nil
}

func (f *fakeService) RescheduleSegment(ctx context.Context, segmentID int64, newPlannedDate string) error {
	return nil
}

func units(id int64) map[int64][]models.ContentUnit {
	return map[int64][]models.ContentUnit{
		id: {{ID: 100, NumberInUnit: 1, Text: "first line", Page: 3}},
	}
}

func TestSession_LoadExplicitSegment(t *testing.T) {
	svc := &fakeService{
		segments: []models.Segment{{ID: 4, PlannedDate: "2024-01-09"}},
		content:  units(4),
	}
	s := NewSession(svc)

	if err := s.Load(context.Background(), 4, "2024-01-10"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	snap := s.Snapshot()
	if snap.State != StateLoaded {
		t.Fatalf("Expected state loaded, got %q", snap.State)
	}
	if snap.Segment == nil || snap.Segment.ID != 4 {
		t.Errorf("Expected segment 4, got %+v", snap.Segment)
	}
	if len(snap.Content) != 1 {
		t.Errorf("Expected content loaded, got %d units", len(snap.Content))
	}
}

func TestSession_LoadExplicitNotFound(t *testing.T) {
	s := NewSession(&fakeService{})
	if err := s.Load(context.Background(), 99, "2024-01-10"); err != nil {
		t.Fatalf("Missing segment should not be an error: %v", err)
	}
	if snap := s.Snapshot(); snap.State != StateNotFound {
		t.Errorf("Expected state not_found, got %q", snap.State)
	}
}

func TestSession_LoadPicksEarliestPending(t *testing.T) {
	today := "2024-01-10"
	done := time.Now()
	svc := &fakeService{
		segments: []models.Segment{
			{ID: 1, PlannedDate: "2024-01-08", DayIndex: 8, CompletedAt: &done}, // already done
			{ID: 2, PlannedDate: "2024-01-11", DayIndex: 11},                    // future
			{ID: 3, PlannedDate: "2024-01-09", DayIndex: 9},
			{ID: 4, PlannedDate: "2024-01-09", DayIndex: 7}, // same date, lower day index
		},
		content: units(4),
	}
	s := NewSession(svc)

	if err := s.Load(context.Background(), 0, today); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	snap := s.Snapshot()
	if snap.Segment == nil || snap.Segment.ID != 4 {
		t.Fatalf("Expected segment 4 picked, got %+v", snap.Segment)
	}
}

func TestSession_LoadNothingPending(t *testing.T) {
	svc := &fakeService{
		segments: []models.Segment{{ID: 2, PlannedDate: "2024-02-01"}},
	}
	s := NewSession(svc)

	if err := s.Load(context.Background(), 0, "2024-01-10"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap := s.Snapshot(); snap.State != StateNotFound {
		t.Errorf("Expected state not_found, got %q", snap.State)
	}
}

func TestSession_LoadFetchError(t *testing.T) {
	svc := &fakeService{fetchErr: errors.New("connection reset")}
	s := NewSession(svc)
	if err := s.Load(context.Background(), 0, "2024-01-10"); err == nil {
		t.Error("Expected fetch error to propagate")
	}
}

func TestSession_Complete(t *testing.T) {
	svc := &fakeService{
		segments: []models.Segment{{ID: 4, PlannedDate: "2024-01-09"}},
		content:  units(4),
	}
	s := NewSession(svc)
	s.Load(context.Background(), 4, "2024-01-10")

	if err := s.Complete(context.Background()); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if snap := s.Snapshot(); snap.State != StateCompleted {
		t.Errorf("Expected state completed, got %q", snap.State)
	}
	if len(svc.completed) != 1 || svc.completed[0] != 4 {
		t.Errorf("Expected segment 4 completed remotely, got %v", svc.completed)
	}
}

func TestSession_CompleteRejectsEmptyContent(t *testing.T) {
	svc := &fakeService{
		segments: []models.Segment{{ID: 4, PlannedDate: "2024-01-09"}},
	}
	s := NewSession(svc)
	s.Load(context.Background(), 4, "2024-01-10")

	if err := s.Complete(context.Background()); !errors.Is(err, ErrNoContent) {
		t.Fatalf("Expected ErrNoContent, got %v", err)
	}
	if len(svc.completed) != 0 {
		t.Error("Empty-content completion must not reach the scheduler")
	}
}

func TestSession_CompleteRemoteFailureStaysLoaded(t *testing.T) {
	svc := &fakeService{
		segments:    []models.Segment{{ID: 4, PlannedDate: "2024-01-09"}},
		content:     units(4),
		completeErr: errors.New("rpc failed"),
	}
	s := NewSession(svc)
	s.Load(context.Background(), 4, "2024-01-10")

	if err := s.Complete(context.Background()); err == nil {
		t.Fatal("Expected remote failure to surface")
	}
	snap := s.Snapshot()
	if snap.State != StateLoaded {
		t.Errorf("Expected session to stay loaded for retry, got %q", snap.State)
	}
	if snap.Error == "" {
		t.Error("Expected error message in snapshot")
	}
}

func TestSession_CompleteBeforeLoad(t *testing.T) {
	s := NewSession(&fakeService{})
	if err := s.Complete(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded, got %v", err)
	}
}
