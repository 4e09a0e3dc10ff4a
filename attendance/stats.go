/*
stats.go - Monthly attendance statistics

PURPOSE:
  Rolls a month of day records, plus the user's task log, into the summary
  the stats screen consumes: present/late/early-leave/absent day counts,
  overtime days and hours, and the attendance rate.

LATE AND EARLY LEAVE:
  Judged against the configured workday window (default 09:00-18:00 UTC).
  A clock-in after the window opens is late; a completed day whose
  clock-out precedes the window close is an early leave.

OVERTIME:
  Overtime days and hours come from the task log, not from clock events:
  they count completed overtime-typed tasks in the month. This keeps the
  attendance view consistent with what payroll actually pays.
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// WORKDAY POLICY
// =============================================================================

// WorkdayPolicy is the expected daily attendance window.
type WorkdayPolicy struct {
	StartHour int // clock-in at or before this hour is on time
	EndHour   int // clock-out at or after this hour is a full day
}

// DefaultWorkday is the conventional 09:00-18:00 window.
func DefaultWorkday() WorkdayPolicy {
	return WorkdayPolicy{StartHour: 9, EndHour: 18}
}

func (p WorkdayPolicy) lateAfter(date time.Time) time.Time {
	d := engine.DateOf(date)
	return time.Date(d.Year(), d.Month(), d.Day(), p.StartHour, 0, 0, 0, time.UTC)
}

func (p WorkdayPolicy) earlyBefore(date time.Time) time.Time {
	d := engine.DateOf(date)
	return time.Date(d.Year(), d.Month(), d.Day(), p.EndHour, 0, 0, 0, time.UTC)
}

// =============================================================================
// STATS
// =============================================================================

// Stats summarizes one user's attendance for a month period.
type Stats struct {
	Period         string // YYYY-MM
	TotalDays      int    // workdays elapsed in the period
	PresentDays    int    // days with a clock-in
	LateDays       int
	EarlyLeaveDays int
	AbsentDays     int
	OvertimeDays   int
	OvertimeHours  decimal.Decimal
	AttendanceRate float64 // PresentDays / TotalDays
}

// ComputeStats folds day records and the user's tasks into monthly stats.
// The records are expected to cover the month's elapsed workdays, one per
// day, as produced by Service.MonthStats.
func ComputeStats(period engine.Period, records []DayRecord, tasks []engine.Task, userID engine.UserID, policy WorkdayPolicy) Stats {
	stats := Stats{
		Period:        period.Key,
		TotalDays:     len(records),
		OvertimeHours: decimal.Zero,
	}

	for _, r := range records {
		switch r.Status {
		case StatusAbsent:
			stats.AbsentDays++
			continue
		case StatusPending:
			continue
		}

		stats.PresentDays++
		if r.ClockInTime != nil && r.ClockInTime.After(policy.lateAfter(r.Date)) {
			stats.LateDays++
		}
		if r.ClockOutTime != nil && r.ClockOutTime.Before(policy.earlyBefore(r.Date)) {
			stats.EarlyLeaveDays++
		}
	}

	overtimeDates := map[string]bool{}
	for _, t := range tasks {
		if t.UserID != userID || t.Type != engine.TaskOvertime || !t.Completed {
			continue
		}
		if !period.Contains(t.StartDate) {
			continue
		}
		overtimeDates[t.StartDate.Format("2006-01-02")] = true
		stats.OvertimeHours = stats.OvertimeHours.Add(t.ActualHours)
	}
	stats.OvertimeDays = len(overtimeDates)

	if stats.TotalDays > 0 {
		stats.AttendanceRate = float64(stats.PresentDays) / float64(stats.TotalDays)
	}

	return stats
}
