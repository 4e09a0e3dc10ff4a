/*
hours.go - Work-hour aggregation: period bucketing and the overtime split

PURPOSE:
  Buckets a user's task log into a calendar period and splits the worked
  hours into regular vs. overtime. This is the input side of every salary
  computation.

THE SPLIT RULE:
  A completed task's hours count as overtime iff its type is "overtime".
  Every other completed task - including "urgent" - counts as regular time.
  Tasks are partitioned, never double-counted:

    Regular + Overtime == sum of actual hours of completed tasks in period

INCOMPLETE TASKS:
  An incomplete task contributes zero hours regardless of its recorded
  ActualHours. Those hours are estimates until the task completes.

SEE ALSO:
  - period.go: Period construction (day, ISO week, month)
  - salary.go: Turns an HourSplit into a salary record
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// HOUR SPLIT - Regular vs. overtime hours for one user and period
// =============================================================================

// HourSplit is the result of bucketing a task log into a period.
type HourSplit struct {
	Regular  decimal.Decimal
	Overtime decimal.Decimal
}

// Total returns regular + overtime hours.
func (s HourSplit) Total() decimal.Decimal {
	return s.Regular.Add(s.Overtime)
}

// ZeroSplit is the aggregate of an empty task list.
func ZeroSplit() HourSplit {
	return HourSplit{Regular: decimal.Zero, Overtime: decimal.Zero}
}

// =============================================================================
// WORK-HOUR AGGREGATOR
// =============================================================================

// HoursFor buckets the given tasks for one user into a period and splits the
// hours into regular and overtime. An empty task list yields a zero split,
// not an error; a task with negative actual hours is an input error.
func HoursFor(tasks []Task, userID UserID, period Period) (HourSplit, error) {
	split := ZeroSplit()

	for _, task := range tasks {
		if task.UserID != userID || !period.Contains(task.StartDate) {
			continue
		}
		if task.ActualHours.IsNegative() {
			return ZeroSplit(), &NegativeHoursError{TaskID: task.ID, Hours: task.ActualHours}
		}

		hours := task.Hours()
		if hours.IsZero() {
			continue
		}
		if task.Type == TaskOvertime {
			split.Overtime = split.Overtime.Add(hours)
		} else {
			split.Regular = split.Regular.Add(hours)
		}
	}

	return split, nil
}

// MonthHours is a convenience wrapper for the common case: hours for one
// user in a YYYY-MM month.
func MonthHours(tasks []Task, userID UserID, month string) (HourSplit, error) {
	period, err := MonthPeriod(month)
	if err != nil {
		return ZeroSplit(), err
	}
	return HoursFor(tasks, userID, period)
}
