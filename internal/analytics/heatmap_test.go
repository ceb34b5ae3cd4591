package analytics

import (
	"testing"
	"time"

	"reciteflow-backend/internal/models"
	"reciteflow-backend/internal/temporal"
)

func TestHeatmap_WindowIsContiguous(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	out := Heatmap(nil, 6, today)

	if len(out) == 0 {
		t.Fatal("Expected non-empty window")
	}
	if out[0].Day != "2023-12-15" {
		t.Errorf("Expected window start '2023-12-15', got %q", out[0].Day)
	}
	if out[len(out)-1].Day != "2024-06-15" {
		t.Errorf("Expected window end '2024-06-15', got %q", out[len(out)-1].Day)
	}

	// Every consecutive pair must be exactly one day apart: no gaps.
	for i := 1; i < len(out); i++ {
		if temporal.AddDays(out[i-1].Day, 1) != out[i].Day {
			t.Fatalf("Gap between %q and %q", out[i-1].Day, out[i].Day)
		}
	}

	// Roughly windowMonths worth of days.
	if len(out) < 180 || len(out) > 185 {
		t.Errorf("Unexpected window length %d", len(out))
	}
}

func TestHeatmap_ZeroCountDaysPresentAtLevelZero(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	events := []models.ReviewEvent{eventOn("2024-06-15")}

	out := Heatmap(events, 1, today)
	for _, d := range out {
		if d.Count == 0 && d.Level != 0 {
			t.Errorf("Zero-count day %q has level %d", d.Day, d.Level)
		}
	}
}

func TestHeatmap_Quantization(t *testing.T) {
	// max = 8; thresholds at 2, 4, 6 (inclusive-lower).
	tests := []struct {
		count, max, expected int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{2, 8, 2},
		{3, 8, 2},
		{4, 8, 3},
		{5, 8, 3},
		{6, 8, 4},
		{8, 8, 4},
		{0, 0, 0},
		{1, 1, 4},
	}
	for _, tc := range tests {
		if got := level(tc.count, tc.max); got != tc.expected {
			t.Errorf("level(%d, %d): expected %d, got %d", tc.count, tc.max, tc.expected, got)
		}
	}
}

func TestHeatmap_CountsPerDay(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	events := []models.ReviewEvent{
		eventOn("2024-06-14"),
		eventOn("2024-06-14"),
		eventOn("2024-06-15"),
	}

	out := Heatmap(events, 1, today)
	byDay := make(map[string]DayCount, len(out))
	for _, d := range out {
		byDay[d.Day] = d
	}

	if byDay["2024-06-14"].Count != 2 {
		t.Errorf("Expected count 2 on 2024-06-14, got %d", byDay["2024-06-14"].Count)
	}
	if byDay["2024-06-15"].Count != 1 {
		t.Errorf("Expected count 1 on 2024-06-15, got %d", byDay["2024-06-15"].Count)
	}
	// max is 2, so the 2-count day is top level and the 1-count day is mid.
	if byDay["2024-06-14"].Level != 4 {
		t.Errorf("Expected level 4 for max day, got %d", byDay["2024-06-14"].Level)
	}
	if byDay["2024-06-15"].Level != 3 {
		t.Errorf("Expected level 3 for half-max day, got %d", byDay["2024-06-15"].Level)
	}
}

func TestWeeklySegments(t *testing.T) {
	at := func(day string) *time.Time {
		parsed, _ := temporal.ParseDay(day)
		shifted := parsed.Add(10 * time.Hour)
		return &shifted
	}

	segments := []models.Segment{
		{ID: 1, CompletedAt: at("2024-07-01")}, // W27
		{ID: 2, CompletedAt: at("2024-07-03")}, // W27
		{ID: 3, CompletedAt: at("2024-07-08")}, // W28
		{ID: 4},                                // pending, ignored
	}

	out := WeeklySegments(segments)
	if len(out) != 2 {
		t.Fatalf("Expected 2 weeks, got %d", len(out))
	}
	if out[0].Week != "2024-W27" || out[0].Count != 2 {
		t.Errorf("Unexpected first bucket: %+v", out[0])
	}
	if out[1].Week != "2024-W28" || out[1].Count != 1 {
		t.Errorf("Unexpected second bucket: %+v", out[1])
	}
}
