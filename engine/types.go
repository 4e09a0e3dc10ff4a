/*
Package engine provides the core work-hour and salary aggregation engine.

PURPOSE:
  This package contains the pure calculation layer of the workforce system.
  Given immutable snapshots of users and their task logs, it buckets worked
  hours into calendar periods, splits them into regular vs. overtime, and
  derives canonical salary records and yearly rollups.

KEY CONCEPTS IN THIS FILE (types.go):
  - User: Pay parameters supplied by the HR backend (base salary, hourly rate)
  - Task: A single work-log unit with completion state and actual hours
  - Money: A currency amount backed by decimal.Decimal

DESIGN PRINCIPLES:
  1. Purity: Every calculation is a function of its inputs; the engine holds
     no state and reaches into no singleton store.
  2. Precision: Uses decimal.Decimal for money and hours to avoid
     floating-point errors in payroll math.
  3. Explicit entities: Pay and time-tracking fields are first-class typed
     attributes constructed once at the provider boundary, never ad hoc
     augmentation of fetched records.

USAGE:
  split, err := engine.HoursFor(tasks, "u1", period)
  record, err := engine.ComputeSalary(user, tasks, "2023-03", false)

SEE ALSO:
  - period.go: Calendar period buckets (day, ISO week, month)
  - hours.go: Work-hour aggregation and the regular/overtime split
  - salary.go: Salary records and yearly rollups
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type TaskID string

// =============================================================================
// USER - Pay parameters from the HR backend
// =============================================================================

// User carries the pay parameters the salary engine needs. It is immutable
// for the duration of a computation and owned by the entity provider.
type User struct {
	ID         UserID
	Name       string
	BaseSalary Money
	HourlyRate Money
}

// =============================================================================
// TASK - Work-log unit
// =============================================================================

// TaskType classifies how a task's hours are paid.
type TaskType string

const (
	TaskRegular  TaskType = "regular"
	TaskUrgent   TaskType = "urgent"
	TaskOvertime TaskType = "overtime"
)

// Task is a single work-log entry. ActualHours is meaningful only when
// Completed is true; incomplete tasks contribute zero hours everywhere.
// EstimatedHours is the planning figure carried from the work log; it is
// never an input to any aggregate.
type Task struct {
	ID             TaskID
	UserID         UserID
	Title          string
	StartDate      time.Time // midnight UTC
	Completed      bool
	EstimatedHours decimal.Decimal
	ActualHours    decimal.Decimal
	Type           TaskType
}

// Hours returns the task's contribution to any aggregate:
// actual hours when completed, zero otherwise.
func (t Task) Hours() decimal.Decimal {
	if !t.Completed {
		return decimal.Zero
	}
	return t.ActualHours
}

// =============================================================================
// DATE HELPERS
// =============================================================================

// DateOf truncates a timestamp to its calendar date (midnight UTC).
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthOf returns the YYYY-MM key of the month containing t.
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
