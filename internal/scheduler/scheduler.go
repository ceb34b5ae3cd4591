// Package scheduler defines the contract with the remote scheduling service.
// The service owns the spaced-repetition algorithm: it stores due dates,
// recomputes them from submitted grades, and appends review events. This
// client never calculates intervals.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"reciteflow-backend/internal/models"
)

// Service is the remote scheduling API consumed by the session engines.
type Service interface {
	// FetchDueWorkItems returns items with dueDate <= asOfDate, ascending by
	// due date with remote-assigned tie order, capped at limit.
	FetchDueWorkItems(ctx context.Context, asOfDate string, limit int) ([]models.WorkItem, error)

	// SubmitGrade reports a recall quality for a work item. The service
	// recomputes the item's due date; on success the item no longer appears
	// in due fetches until it comes due again.
	SubmitGrade(ctx context.Context, itemID int64, quality int) error

	// CompleteSegmentAndInitSchedule marks a segment learned and creates its
	// initial review schedule. New work items become eligible for future
	// FetchDueWorkItems calls.
	CompleteSegmentAndInitSchedule(ctx context.Context, segmentID int64) error

	// FetchReviewEvents returns review events, optionally since a day key
	// (empty string fetches all).
	FetchReviewEvents(ctx context.Context, sinceDate string) ([]models.ReviewEvent, error)

	// FetchPendingSegments returns all segments with no completion timestamp.
	FetchPendingSegments(ctx context.Context) ([]models.Segment, error)

	// FetchCompletedSegments returns all segments that carry a completion
	// timestamp.
	FetchCompletedSegments(ctx context.Context) ([]models.Segment, error)

	// FetchSegment returns one segment by id. Missing segments yield
	// ErrNotFound.
	FetchSegment(ctx context.Context, id int64) (*models.Segment, error)

	// FetchSegmentContent returns the passages covered by a segment's page
	// range, in reading order.
	FetchSegmentContent(ctx context.Context, segmentID int64) ([]models.ContentUnit, error)

	// RescheduleSegment moves a pending segment's planned date. The
	// completion timestamp is untouched.
	RescheduleSegment(ctx context.Context, segmentID int64, newPlannedDate string) error
}

// ErrNotFound marks a legitimate empty result (no such segment), not a
// transport failure.
var ErrNotFound = errors.New("scheduler: not found")

// RequestError is a failed remote call with the human-readable message the
// service returned, surfaced to the user as-is.
type RequestError struct {
	Op      string
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("scheduler: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("scheduler: %s: status %d", e.Op, e.Status)
}

// RemoteMessage extracts the service's message from err, falling back to
// err.Error() for transport-level failures.
func RemoteMessage(err error) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return err.Error()
}
