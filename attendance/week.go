package attendance

import (
	"time"

	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// WEEK VIEW - Business days from Monday through today
// =============================================================================

// BusinessDaysThisWeek returns the workdays (weekends excluded) from the
// Monday of the week containing now, up to and including today. No date is
// fabricated for the future.
func BusinessDaysThisWeek(now time.Time) []time.Time {
	today := engine.DateOf(now)
	start := engine.WeekStart(now)

	var days []time.Time
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		if engine.IsWeekend(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// BusinessDaysInMonth returns the workdays of a month period, clamped to
// today when the month is still in progress.
func BusinessDaysInMonth(period engine.Period, now time.Time) []time.Time {
	today := engine.DateOf(now)
	end := period.End // exclusive
	if end.After(today.AddDate(0, 0, 1)) {
		end = today.AddDate(0, 0, 1)
	}

	var days []time.Time
	for d := period.Start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if engine.IsWeekend(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}
