package attendance

import (
	"errors"
	"fmt"
	"time"

	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateClockIn is returned for a clock-in while already
	// in_progress or completed.
	ErrDuplicateClockIn = errors.New("already clocked in")

	// ErrMissingClockIn is returned for a clock-out before any clock-in.
	ErrMissingClockIn = errors.New("no clock-in recorded")

	// ErrAlreadyClockedOut is returned for a clock-out on a completed day.
	ErrAlreadyClockedOut = errors.New("already clocked out")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ClockStateError reports a rejected clock event with the state it hit.
type ClockStateError struct {
	UserID engine.UserID
	Date   time.Time
	Status Status
	Event  EventType
	Err    error // one of the sentinels above
}

func (e *ClockStateError) Error() string {
	return fmt.Sprintf("%s rejected for %s on %s: %v (status %s)",
		e.Event, e.UserID, e.Date.Format("2006-01-02"), e.Err, e.Status)
}

func (e *ClockStateError) Unwrap() error { return e.Err }

// IsStateViolation returns true for deterministic clock-machine rejections.
// These must not be retried: the same event against the same state always
// fails the same way.
func IsStateViolation(err error) bool {
	return errors.Is(err, ErrDuplicateClockIn) ||
		errors.Is(err, ErrMissingClockIn) ||
		errors.Is(err, ErrAlreadyClockedOut)
}
