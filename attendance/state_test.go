package attendance_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-engine/attendance"
	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// june14 is a Wednesday.
func june14(hour, min int) time.Time {
	return time.Date(2023, time.June, 14, hour, min, 0, 0, time.UTC)
}

func clockEvent(id string, eventType attendance.EventType, at time.Time) attendance.ClockEvent {
	return attendance.ClockEvent{
		ID:       id,
		UserID:   "u1",
		Type:     eventType,
		At:       at,
		Location: "HQ lobby",
		InRange:  true,
	}
}

// =============================================================================
// TRANSITIONS
// =============================================================================

func TestApply_ClockIn_FromPending(t *testing.T) {
	record := attendance.NewDayRecord("u1", june14(0, 0))
	require.Equal(t, attendance.StatusPending, record.Status)

	next, err := record.Apply(clockEvent("e1", attendance.EventClockIn, june14(9, 10)))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusInProgress, next.Status)
	require.NotNil(t, next.ClockInTime)
	assert.Equal(t, june14(9, 10), *next.ClockInTime)
	assert.Nil(t, next.ClockOutTime)
}

func TestApply_ClockOut_FromInProgress(t *testing.T) {
	record := attendance.NewDayRecord("u1", june14(0, 0))
	record, err := record.Apply(clockEvent("e1", attendance.EventClockIn, june14(9, 10)))
	require.NoError(t, err)

	next, err := record.Apply(clockEvent("e2", attendance.EventClockOut, june14(18, 5)))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCompleted, next.Status)
	require.NotNil(t, next.ClockOutTime)
	assert.Equal(t, june14(18, 5), *next.ClockOutTime)
}

func TestApply_DuplicateClockIn_Rejected(t *testing.T) {
	record := attendance.NewDayRecord("u1", june14(0, 0))
	record, err := record.Apply(clockEvent("e1", attendance.EventClockIn, june14(9, 0)))
	require.NoError(t, err)

	unchanged, err := record.Apply(clockEvent("e2", attendance.EventClockIn, june14(9, 30)))
	assert.ErrorIs(t, err, attendance.ErrDuplicateClockIn)
	assert.True(t, attendance.IsStateViolation(err))

	var stateErr *attendance.ClockStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, attendance.StatusInProgress, stateErr.Status)
	assert.Equal(t, attendance.EventClockIn, stateErr.Event)

	// The record the caller saw is untouched.
	assert.Equal(t, record, unchanged)
}

func TestApply_ClockOutWithoutClockIn_Rejected(t *testing.T) {
	record := attendance.NewDayRecord("u1", june14(0, 0))

	_, err := record.Apply(clockEvent("e1", attendance.EventClockOut, june14(18, 0)))
	assert.ErrorIs(t, err, attendance.ErrMissingClockIn)
}

func TestApply_ClockOutTwice_Rejected(t *testing.T) {
	record := attendance.NewDayRecord("u1", june14(0, 0))
	record, err := record.Apply(clockEvent("e1", attendance.EventClockIn, june14(9, 0)))
	require.NoError(t, err)
	record, err = record.Apply(clockEvent("e2", attendance.EventClockOut, june14(18, 0)))
	require.NoError(t, err)

	_, err = record.Apply(clockEvent("e3", attendance.EventClockOut, june14(19, 0)))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestApply_ClockInAfterCompletion_Rejected(t *testing.T) {
	record := attendance.NewDayRecord("u1", june14(0, 0))
	record, err := record.Apply(clockEvent("e1", attendance.EventClockIn, june14(9, 0)))
	require.NoError(t, err)
	record, err = record.Apply(clockEvent("e2", attendance.EventClockOut, june14(18, 0)))
	require.NoError(t, err)

	_, err = record.Apply(clockEvent("e3", attendance.EventClockIn, june14(19, 0)))
	assert.ErrorIs(t, err, attendance.ErrDuplicateClockIn)
}

// =============================================================================
// DERIVATION
// =============================================================================

func TestDeriveDay_ReplaysEventsChronologically(t *testing.T) {
	// Events arrive out of order; replay still yields a completed day.
	events := []attendance.ClockEvent{
		clockEvent("e2", attendance.EventClockOut, june14(18, 5)),
		clockEvent("e1", attendance.EventClockIn, june14(9, 10)),
	}

	record := attendance.DeriveDay("u1", june14(0, 0), events, june14(20, 0))

	assert.Equal(t, attendance.StatusCompleted, record.Status)
	assert.Equal(t, "u1-20230614", record.ID)
	require.NotNil(t, record.ClockInTime)
	require.NotNil(t, record.ClockOutTime)
}

func TestDeriveDay_NoEvents_TodayStaysPending(t *testing.T) {
	record := attendance.DeriveDay("u1", june14(0, 0), nil, june14(8, 0))
	assert.Equal(t, attendance.StatusPending, record.Status)
}

func TestDeriveDay_NoEvents_PastDayIsAbsent(t *testing.T) {
	monday := time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC)
	record := attendance.DeriveDay("u1", monday, nil, june14(12, 0))
	assert.Equal(t, attendance.StatusAbsent, record.Status)
}

func TestDeriveDay_StrayEventIsSkipped(t *testing.T) {
	// A clock-out before any clock-in cannot corrupt the derived state.
	events := []attendance.ClockEvent{
		clockEvent("e1", attendance.EventClockOut, june14(7, 0)),
		clockEvent("e2", attendance.EventClockIn, june14(9, 0)),
	}

	record := attendance.DeriveDay("u1", june14(0, 0), events, june14(12, 0))

	assert.Equal(t, attendance.StatusInProgress, record.Status)
	assert.Nil(t, record.ClockOutTime)
}

// =============================================================================
// WORKED DURATION
// =============================================================================

func TestWorkedDuration_CompletedDay(t *testing.T) {
	events := []attendance.ClockEvent{
		clockEvent("e1", attendance.EventClockIn, june14(9, 10)),
		clockEvent("e2", attendance.EventClockOut, june14(18, 5)),
	}
	record := attendance.DeriveDay("u1", june14(0, 0), events, june14(20, 0))

	assert.Equal(t, 8*time.Hour+55*time.Minute, record.WorkedDuration(june14(20, 0)))
}

func TestWorkedDuration_InProgress_RunsAgainstNow(t *testing.T) {
	events := []attendance.ClockEvent{
		clockEvent("e1", attendance.EventClockIn, june14(9, 0)),
	}
	record := attendance.DeriveDay("u1", june14(0, 0), events, june14(12, 30))

	assert.Equal(t, 3*time.Hour+30*time.Minute, record.WorkedDuration(june14(12, 30)))
}

func TestWorkedDuration_NoClockIn_Zero(t *testing.T) {
	record := attendance.NewDayRecord("u1", june14(0, 0))
	assert.Equal(t, time.Duration(0), record.WorkedDuration(june14(12, 0)))
}

// =============================================================================
// RECORD IDS
// =============================================================================

func TestRecordID_UserAndCompactDate(t *testing.T) {
	id := attendance.RecordID(engine.UserID("u7"), june14(15, 45))
	assert.Equal(t, "u7-20230614", id)
}
