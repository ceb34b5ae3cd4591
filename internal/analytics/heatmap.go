package analytics

import (
	"sort"
	"time"

	"reciteflow-backend/internal/models"
	"reciteflow-backend/internal/temporal"
)

// HeatmapLevels is the number of intensity buckets, level 0 meaning no
// activity.
const HeatmapLevels = 5

// DayCount is one calendar day in the heatmap window.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
	Level int    `json:"level"` // 0..4
}

// Heatmap buckets review events per local calendar day over
// [today - windowMonths, today] inclusive. Every day in the window is
// present, zero-count days included. Levels quantize against the window's
// maximum count with inclusive-lower thresholds at max/4, max/2 and 3·max/4;
// a zero-count day is always level 0.
func Heatmap(events []models.ReviewEvent, windowMonths int, today time.Time) []DayCount {
	counts := make(map[string]int, len(events))
	for _, e := range events {
		counts[temporal.DayKey(e.OccurredAt)]++
	}

	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	start := end.AddDate(0, -windowMonths, 0)

	max := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c := counts[temporal.DayKey(d)]; c > max {
			max = c
		}
	}

	var out []DayCount
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := temporal.DayKey(d)
		c := counts[key]
		out = append(out, DayCount{Day: key, Count: c, Level: level(c, max)})
	}
	return out
}

func level(count, max int) int {
	if count == 0 || max == 0 {
		return 0
	}
	switch {
	case 4*count >= 3*max:
		return 4
	case 2*count >= max:
		return 3
	case 4*count >= max:
		return 2
	default:
		return 1
	}
}

// WeekCount is one ISO week of completed segments.
type WeekCount struct {
	Week  string `json:"week"` // YYYY-Www
	Count int    `json:"count"`
}

// WeeklySegments buckets completed segments by ISO week of their completion
// time, sorted by week key ascending. Pending segments are ignored.
func WeeklySegments(segments []models.Segment) []WeekCount {
	counts := make(map[string]int)
	for _, s := range segments {
		if s.CompletedAt == nil {
			continue
		}
		counts[temporal.WeekKey(*s.CompletedAt)]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]WeekCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, WeekCount{Week: k, Count: counts[k]})
	}
	return out
}
