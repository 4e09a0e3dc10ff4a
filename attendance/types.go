/*
Package attendance derives attendance state from raw clock events.

PURPOSE:
  Converts the sequence of clock-in/clock-out events recorded for one user
  and day into a day record with a status, aggregates day records into week
  views, and computes per-month attendance statistics.

THE STATE MACHINE:
  pending ──ClockIn──> in_progress ──ClockOut──> completed

  A past day that ends still pending is retroactively absent. Any other
  transition is a state violation (see errors.go) - deterministic, never
  worth retrying.

GEOFENCE:
  Whether a clock event happened inside the permitted radius is a
  precondition the caller establishes; events arrive tagged with an
  InRange flag and the deriver records it without computing geodesics.

SEE ALSO:
  - state.go:   Transition rules and duration math
  - week.go:    Business-day collection for the current week
  - stats.go:   Monthly attendance statistics
  - service.go: The facade wiring event logs and task logs together
*/
package attendance

import (
	"time"

	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// DAY RECORD - One attendance entry per user per calendar date
// =============================================================================

// Status of a day record. Pure function of the two timestamps and calendar
// time: no clock-in yet is pending (or absent once the day has passed),
// clock-in only is in_progress, both is completed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbsent     Status = "absent"
)

// DayRecord holds at most one clock-in and one clock-out per (user, date).
type DayRecord struct {
	ID           string // "{userID}-{YYYYMMDD}"
	UserID       engine.UserID
	Date         time.Time // midnight UTC
	ClockInTime  *time.Time
	ClockOutTime *time.Time
	Status       Status
}

// RecordID builds the canonical day-record identifier.
func RecordID(userID engine.UserID, date time.Time) string {
	return string(userID) + "-" + engine.DateOf(date).Format("20060102")
}

// =============================================================================
// CLOCK EVENTS
// =============================================================================

type EventType string

const (
	EventClockIn  EventType = "clock_in"
	EventClockOut EventType = "clock_out"
)

// ClockEvent is one raw punch as recorded by the event log.
type ClockEvent struct {
	ID       string
	UserID   engine.UserID
	Type     EventType
	At       time.Time
	Location string
	InRange  bool // caller-supplied geofence verdict
}
