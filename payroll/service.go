/*
Package payroll is the salary query facade.

PURPOSE:
  Read-only projections over the entity providers and the engine: generate
  the salary records for the evaluated window, one user's history, the
  calendar-current month, and yearly totals. No logic of its own beyond
  window iteration - every number comes from engine.ComputeSalary.

FRESHNESS:
  Every call re-fetches users and tasks from the providers and recomputes.
  Nothing is cached here; a caller that adds a cache owns invalidating it
  whenever source data changes.

TOTALITY:
  Read paths never fail for "no data": an unknown user yields an empty
  list (or nil record), not an error. Genuine input errors (malformed
  month/year) and upstream fetch failures do surface.
*/
package payroll

import (
	"context"
	"time"

	"github.com/warp/workforce-engine/engine"
	"github.com/warp/workforce-engine/provider"
)

// =============================================================================
// SERVICE
// =============================================================================

// Service computes salary projections over a month window.
type Service struct {
	Users  provider.UserDirectory
	Tasks  provider.TaskLog
	Window engine.MonthWindow

	// Now is the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

func NewService(users provider.UserDirectory, tasks provider.TaskLog, window engine.MonthWindow) *Service {
	return &Service{
		Users:  users,
		Tasks:  tasks,
		Window: window,
		Now:    time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// =============================================================================
// PROJECTIONS
// =============================================================================

// GenerateSalaryRecords derives the salary records for every window month,
// for all users or - when userID is non-empty - a single user. An unknown
// user yields an empty list. Records come back ascending by month, grouped
// per user in directory order.
func (s *Service) GenerateSalaryRecords(ctx context.Context, userID engine.UserID) ([]engine.SalaryRecord, error) {
	users, err := s.users(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []engine.SalaryRecord{}, nil
	}

	tasks, err := s.Tasks.ListTasks(ctx, userID)
	if err != nil {
		return nil, provider.Upstream("list tasks", err)
	}

	latest := s.Window.Latest()
	records := make([]engine.SalaryRecord, 0, len(users)*len(s.Window))
	for _, user := range users {
		for _, month := range s.Window {
			record, err := engine.ComputeSalary(user, tasks, month, month == latest)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

// SalaryHistory returns one user's records for the whole window, newest
// last. Unchanged task data yields structurally identical lists.
func (s *Service) SalaryHistory(ctx context.Context, userID engine.UserID) ([]engine.SalaryRecord, error) {
	return s.GenerateSalaryRecords(ctx, userID)
}

// CurrentMonthSalary derives the record for the calendar-current month, or
// nil when the month is outside the window, the user is unknown, or the
// user's tasks contribute zero hours this month. The zero-hours case covers
// both an empty task log and a log of only incomplete tasks: incomplete
// hours are estimates, so neither yields a record. "Not found" is not an
// error.
func (s *Service) CurrentMonthSalary(ctx context.Context, userID engine.UserID) (*engine.SalaryRecord, error) {
	month := engine.MonthOf(s.now())
	if !s.Window.Contains(month) {
		return nil, nil
	}

	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, provider.Upstream("get user", err)
	}
	if user == nil {
		return nil, nil
	}

	tasks, err := s.Tasks.ListTasks(ctx, userID)
	if err != nil {
		return nil, provider.Upstream("list tasks", err)
	}

	split, err := engine.MonthHours(tasks, userID, month)
	if err != nil {
		return nil, err
	}
	if split.Total().IsZero() {
		return nil, nil
	}

	record, err := engine.ComputeSalary(*user, tasks, month, month == s.Window.Latest())
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// YearlySalary folds the user's window records for one year into a summary.
// The fold is order-independent; MonthlySalaries stays ascending.
func (s *Service) YearlySalary(ctx context.Context, userID engine.UserID, year string) (engine.YearlySummary, error) {
	if !engine.ValidYear(year) {
		return engine.YearlySummary{}, &engine.InvalidPeriodError{Key: year}
	}

	records, err := s.SalaryHistory(ctx, userID)
	if err != nil {
		return engine.YearlySummary{}, err
	}
	return engine.ComputeYearly(year, records)
}

func (s *Service) users(ctx context.Context, userID engine.UserID) ([]engine.User, error) {
	if userID == "" {
		users, err := s.Users.ListUsers(ctx)
		if err != nil {
			return nil, provider.Upstream("list users", err)
		}
		return users, nil
	}

	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, provider.Upstream("get user", err)
	}
	if user == nil {
		return nil, nil
	}
	return []engine.User{*user}, nil
}
