package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"reciteflow-backend/internal/models"
)

const requestTimeout = 10 * time.Second

// Client talks JSON over HTTP to the scheduling service.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) FetchDueWorkItems(ctx context.Context, asOfDate string, limit int) ([]models.WorkItem, error) {
	q := url.Values{}
	q.Set("as_of", asOfDate)
	q.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Items []models.WorkItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/work-items/due?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) SubmitGrade(ctx context.Context, itemID int64, quality int) error {
	body := map[string]interface{}{
		"item_id": itemID,
		"quality": quality,
	}
	return c.do(ctx, http.MethodPost, "/v1/reviews", body, nil)
}

func (c *Client) CompleteSegmentAndInitSchedule(ctx context.Context, segmentID int64) error {
	path := fmt.Sprintf("/v1/segments/%d/complete", segmentID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) FetchReviewEvents(ctx context.Context, sinceDate string) ([]models.ReviewEvent, error) {
	path := "/v1/review-events"
	if sinceDate != "" {
		path += "?since=" + url.QueryEscape(sinceDate)
	}

	var resp struct {
		Events []models.ReviewEvent `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) FetchPendingSegments(ctx context.Context) ([]models.Segment, error) {
	var resp struct {
		Segments []models.Segment `json:"segments"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/segments?pending=true", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Segments, nil
}

func (c *Client) FetchCompletedSegments(ctx context.Context) ([]models.Segment, error) {
	var resp struct {
		Segments []models.Segment `json:"segments"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/segments?completed=true", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Segments, nil
}

func (c *Client) FetchSegment(ctx context.Context, id int64) (*models.Segment, error) {
	var resp struct {
		Segment models.Segment `json:"segment"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/segments/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Segment, nil
}

func (c *Client) FetchSegmentContent(ctx context.Context, segmentID int64) ([]models.ContentUnit, error) {
	var resp struct {
		Units []models.ContentUnit `json:"units"`
	}
	path := fmt.Sprintf("/v1/segments/%d/content", segmentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Units, nil
}

func (c *Client) RescheduleSegment(ctx context.Context, segmentID int64, newPlannedDate string) error {
	body := map[string]string{"planned_date": newPlannedDate}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/segments/%d", segmentID), body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("scheduler: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("scheduler: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: method + " " + path, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return c.decodeError(method+" "+path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("scheduler: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) decodeError(op string, resp *http.Response) error {
	var envelope models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		return &RequestError{
			Op:      op,
			Status:  resp.StatusCode,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}
	return &RequestError{Op: op, Status: resp.StatusCode}
}
