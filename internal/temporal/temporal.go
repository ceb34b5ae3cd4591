// Package temporal provides the calendar bucketing shared by the status
// classifier and the activity analytics. All keys are computed in local
// calendar time: two timestamps on the same local day map to the same key.
package temporal

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// DayKey returns the canonical YYYY-MM-DD key for t in local calendar time.
func DayKey(t time.Time) string {
	return t.Local().Format(dayLayout)
}

// WeekKey returns the ISO-8601 week identifier (YYYY-Www) for t, with
// Monday–Sunday week boundaries. The ISO year may differ from the calendar
// year around January 1st.
func WeekKey(t time.Time) string {
	year, week := t.Local().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseDay parses a YYYY-MM-DD key back into a local midnight time.
func ParseDay(key string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, key, time.Local)
}

// AddDays shifts a day key by n calendar days. Invalid keys are returned
// unchanged so callers comparing keys lexicographically stay deterministic.
func AddDays(key string, n int) string {
	t, err := ParseDay(key)
	if err != nil {
		return key
	}
	return DayKey(t.AddDate(0, 0, n))
}
