package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - Calendar bucket for hour and salary aggregation
// =============================================================================

// Period is a calendar bucket: a day, an ISO week, or a YYYY-MM month.
// Periods of the same granularity are built from disjoint date ranges, so a
// task can never land in two buckets.
//
// The range is half-open: Start inclusive, End exclusive.
type Period struct {
	Key   string // "2023-03-10", "2023-W10", or "2023-03"
	Start time.Time
	End   time.Time
}

// Contains reports whether a date falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(p.Start) && d.Before(p.End)
}

func (p Period) String() string { return p.Key }

// DayPeriod returns the single-day period containing t.
func DayPeriod(t time.Time) Period {
	start := DateOf(t)
	return Period{
		Key:   start.Format("2006-01-02"),
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

// WeekPeriod returns the ISO week (Monday through Sunday) containing t.
func WeekPeriod(t time.Time) Period {
	start := WeekStart(t)
	year, week := start.ISOWeek()
	return Period{
		Key:   fmt.Sprintf("%04d-W%02d", year, week),
		Start: start,
		End:   start.AddDate(0, 0, 7),
	}
}

// WeekStart returns the Monday (midnight UTC) of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// MonthPeriod parses a YYYY-MM key into its month period.
// A malformed key is an input error, reported before any computation.
func MonthPeriod(key string) (Period, error) {
	start, err := parseMonth(key)
	if err != nil {
		return Period{}, err
	}
	return Period{
		Key:   key,
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}, nil
}

func parseMonth(key string) (time.Time, error) {
	if len(key) != len("2006-01") {
		return time.Time{}, &InvalidPeriodError{Key: key}
	}
	t, err := time.ParseInLocation("2006-01", key, time.UTC)
	if err != nil {
		return time.Time{}, &InvalidPeriodError{Key: key}
	}
	return t, nil
}

// =============================================================================
// MONTH WINDOW - The evaluated range of salary months
// =============================================================================

// MonthWindow is the ordered (ascending) list of months a salary evaluation
// covers. The latest month of the window is the one treated as not yet paid.
type MonthWindow []string

// WindowEnding builds a window of `months` consecutive months ending at the
// given YYYY-MM key.
func WindowEnding(end string, months int) (MonthWindow, error) {
	last, err := parseMonth(end)
	if err != nil {
		return nil, err
	}
	if months < 1 {
		months = 1
	}
	w := make(MonthWindow, months)
	for i := 0; i < months; i++ {
		w[i] = last.AddDate(0, i-months+1, 0).Format("2006-01")
	}
	return w, nil
}

// Latest returns the most recent month in the window, or "" when empty.
func (w MonthWindow) Latest() string {
	if len(w) == 0 {
		return ""
	}
	return w[len(w)-1]
}

// Contains reports whether the window covers the given month key.
func (w MonthWindow) Contains(month string) bool {
	for _, m := range w {
		if m == month {
			return true
		}
	}
	return false
}
