/*
service.go - The attendance facade

PURPOSE:
  Wires the clock state machine to an event log and the task log. All reads
  re-derive state from raw events on every call; nothing is cached, so the
  derived record can never drift from the log.

WRITE PATH:
  ClockIn/ClockOut first derive today's record, validate the transition
  through the state machine, and only then append the event. A rejected
  event never reaches the log.

CONCURRENCY:
  The service holds no mutable state of its own. Calls for different users
  share nothing; the event log is the only synchronization point and each
  implementation handles its own.
*/
package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/engine"
	"github.com/warp/workforce-engine/provider"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// EventLog supplies and records raw clock events.
type EventLog interface {
	// EventsForDay returns all events for one user and date, any order.
	EventsForDay(ctx context.Context, userID engine.UserID, date time.Time) ([]ClockEvent, error)

	// AppendEvent records one validated event.
	AppendEvent(ctx context.Context, event ClockEvent) error
}

// ApplicationStore persists leave/overtime/outwork applications.
type ApplicationStore interface {
	SaveApplication(ctx context.Context, app Application) error
	ListApplications(ctx context.Context, userID engine.UserID) ([]Application, error)
}

// =============================================================================
// SERVICE
// =============================================================================

// Service is the attendance read/write facade.
type Service struct {
	Events       EventLog
	Tasks        provider.TaskLog
	Applications ApplicationStore
	Policy       WorkdayPolicy

	// Now is the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

func NewService(events EventLog, tasks provider.TaskLog, apps ApplicationStore) *Service {
	return &Service{
		Events:       events,
		Tasks:        tasks,
		Applications: apps,
		Policy:       DefaultWorkday(),
		Now:          time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// =============================================================================
// READS
// =============================================================================

// Day derives the attendance record for one user and date.
func (s *Service) Day(ctx context.Context, userID engine.UserID, date time.Time) (DayRecord, error) {
	events, err := s.Events.EventsForDay(ctx, userID, date)
	if err != nil {
		return DayRecord{}, provider.Upstream("load clock events", err)
	}
	return DeriveDay(userID, date, events, s.now()), nil
}

// Today derives the attendance record for the current date.
func (s *Service) Today(ctx context.Context, userID engine.UserID) (DayRecord, error) {
	return s.Day(ctx, userID, s.now())
}

// Week derives one record per business day from the start of the current
// week through today. Future dates are never fabricated.
func (s *Service) Week(ctx context.Context, userID engine.UserID) ([]DayRecord, error) {
	days := BusinessDaysThisWeek(s.now())
	records := make([]DayRecord, 0, len(days))
	for _, day := range days {
		record, err := s.Day(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// MonthStats computes attendance statistics for a YYYY-MM month.
func (s *Service) MonthStats(ctx context.Context, userID engine.UserID, month string) (Stats, error) {
	period, err := engine.MonthPeriod(month)
	if err != nil {
		return Stats{}, err
	}

	now := s.now()
	days := BusinessDaysInMonth(period, now)
	records := make([]DayRecord, 0, len(days))
	for _, day := range days {
		record, err := s.Day(ctx, userID, day)
		if err != nil {
			return Stats{}, err
		}
		records = append(records, record)
	}

	tasks, err := s.Tasks.ListTasks(ctx, userID)
	if err != nil {
		return Stats{}, provider.Upstream("list tasks", err)
	}

	return ComputeStats(period, records, tasks, userID, s.Policy), nil
}

// =============================================================================
// WRITES - Clock events
// =============================================================================

// Punch is the caller-supplied context of a clock event. InRange is the
// geofence verdict computed by the caller.
type Punch struct {
	Location string
	InRange  bool
}

// ClockIn records a clock-in at the given time. Accepted only while the
// day is still pending; otherwise ErrDuplicateClockIn.
func (s *Service) ClockIn(ctx context.Context, userID engine.UserID, at time.Time, punch Punch) (DayRecord, error) {
	return s.punch(ctx, userID, ClockEvent{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     EventClockIn,
		At:       at.UTC(),
		Location: punch.Location,
		InRange:  punch.InRange,
	})
}

// ClockOut records a clock-out at the given time. Accepted only while
// in_progress; ErrMissingClockIn from pending, ErrAlreadyClockedOut from
// completed.
func (s *Service) ClockOut(ctx context.Context, userID engine.UserID, at time.Time, punch Punch) (DayRecord, error) {
	return s.punch(ctx, userID, ClockEvent{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     EventClockOut,
		At:       at.UTC(),
		Location: punch.Location,
		InRange:  punch.InRange,
	})
}

func (s *Service) punch(ctx context.Context, userID engine.UserID, event ClockEvent) (DayRecord, error) {
	events, err := s.Events.EventsForDay(ctx, userID, event.At)
	if err != nil {
		return DayRecord{}, provider.Upstream("load clock events", err)
	}

	record := DeriveDay(userID, event.At, events, s.now())
	next, err := record.Apply(event)
	if err != nil {
		return record, err
	}

	if err := s.Events.AppendEvent(ctx, event); err != nil {
		return record, provider.Upstream("append clock event", err)
	}
	return next, nil
}

// =============================================================================
// WRITES - Applications
// =============================================================================

// ApplyLeave files a pending leave application.
func (s *Service) ApplyLeave(ctx context.Context, userID engine.UserID, kind LeaveKind, reason string, start, end time.Time) (Application, error) {
	app := NewLeaveApplication(userID, kind, reason, start, end, s.now())
	if err := s.Applications.SaveApplication(ctx, app); err != nil {
		return Application{}, provider.Upstream("save application", err)
	}
	return app, nil
}

// ApplyOvertime files a pending overtime application.
func (s *Service) ApplyOvertime(ctx context.Context, userID engine.UserID, date time.Time, hours decimal.Decimal, reason string) (Application, error) {
	app := NewOvertimeApplication(userID, date, hours, reason, s.now())
	if err := s.Applications.SaveApplication(ctx, app); err != nil {
		return Application{}, provider.Upstream("save application", err)
	}
	return app, nil
}

// ApplyOutwork files a pending outwork application.
func (s *Service) ApplyOutwork(ctx context.Context, userID engine.UserID, date time.Time, location, reason string) (Application, error) {
	app := NewOutworkApplication(userID, date, location, reason, s.now())
	if err := s.Applications.SaveApplication(ctx, app); err != nil {
		return Application{}, provider.Upstream("save application", err)
	}
	return app, nil
}

// UserApplications lists one user's applications, newest first.
func (s *Service) UserApplications(ctx context.Context, userID engine.UserID) ([]Application, error) {
	apps, err := s.Applications.ListApplications(ctx, userID)
	if err != nil {
		return nil, provider.Upstream("list applications", err)
	}
	return apps, nil
}
