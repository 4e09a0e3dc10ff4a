/*
state.go - The clock state machine and day-record derivation

PURPOSE:
  Two views of the same rules:

  1. Apply: the write-path transition. Validates a single clock event
     against the current record and either advances it or rejects with a
     ClockStateError. This is what ClockIn/ClockOut run before an event is
     allowed into the log.

  2. DeriveDay: the read-path fold. Replays a day's accepted events into a
     record. Because Apply guards the log, replay never encounters an
     invalid transition; any stray out-of-order event is skipped rather
     than corrupting the derived state.

ABSENT:
  Absence is assigned retroactively at derivation time: a day strictly in
  the past that never saw a clock-in is absent. The write path never stores
  an "absent" event.
*/
package attendance

import (
	"sort"
	"time"

	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// TRANSITIONS (write path)
// =============================================================================

// NewDayRecord returns the initial (pending) record for a user and date.
func NewDayRecord(userID engine.UserID, date time.Time) DayRecord {
	return DayRecord{
		ID:     RecordID(userID, date),
		UserID: userID,
		Date:   engine.DateOf(date),
		Status: StatusPending,
	}
}

// Apply validates one clock event against the record and returns the
// advanced record. Rejections carry a ClockStateError.
func (r DayRecord) Apply(event ClockEvent) (DayRecord, error) {
	switch event.Type {
	case EventClockIn:
		if r.Status != StatusPending {
			return r, r.reject(event)
		}
		at := event.At.UTC()
		r.ClockInTime = &at
		r.Status = StatusInProgress
		return r, nil

	case EventClockOut:
		switch r.Status {
		case StatusInProgress:
			at := event.At.UTC()
			r.ClockOutTime = &at
			r.Status = StatusCompleted
			return r, nil
		default:
			return r, r.reject(event)
		}

	default:
		return r, r.reject(event)
	}
}

func (r DayRecord) reject(event ClockEvent) error {
	err := &ClockStateError{
		UserID: r.UserID,
		Date:   r.Date,
		Status: r.Status,
		Event:  event.Type,
	}
	switch {
	case event.Type == EventClockIn:
		err.Err = ErrDuplicateClockIn
	case r.Status == StatusCompleted:
		err.Err = ErrAlreadyClockedOut
	default:
		err.Err = ErrMissingClockIn
	}
	return err
}

// =============================================================================
// DERIVATION (read path)
// =============================================================================

// DeriveDay folds a day's clock events into a record. Events are replayed
// chronologically; an event that would be an invalid transition is skipped.
// A past day that ends without a clock-in is absent.
func DeriveDay(userID engine.UserID, date time.Time, events []ClockEvent, now time.Time) DayRecord {
	record := NewDayRecord(userID, date)

	sorted := make([]ClockEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	for _, e := range sorted {
		next, err := record.Apply(e)
		if err != nil {
			continue
		}
		record = next
	}

	if record.Status == StatusPending && record.Date.Before(engine.DateOf(now)) {
		record.Status = StatusAbsent
	}

	return record
}

// WorkedDuration returns (clockOut ?? now) - clockIn, floored to whole
// seconds. Records without a clock-in report zero.
func (r DayRecord) WorkedDuration(now time.Time) time.Duration {
	if r.ClockInTime == nil {
		return 0
	}
	end := now.UTC()
	if r.ClockOutTime != nil {
		end = *r.ClockOutTime
	}
	d := end.Sub(*r.ClockInTime)
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}
