/*
Package sqlite provides a SQLite-backed implementation of the entity providers.

PURPOSE:
  Persists users, task logs, clock events, and applications, and serves
  them through the provider and attendance interfaces. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  provider.UserDirectory:      User records with pay parameters
  provider.TaskLog:            Work-log entries
  attendance.EventLog:         Raw clock events (append-only)
  attendance.ApplicationStore: Leave/overtime/outwork applications

CLOCK EVENTS ARE APPEND-ONLY:
  Attendance state is always re-derived from raw events; there is no
  stored day-record row that could drift from the event log. The events
  table therefore has no UPDATE path.

PRECISION:
  Money and hours are stored as TEXT decimal strings and parsed back with
  shopspring/decimal, never as REAL.

WAL MODE:
  SQLite is opened with WAL for better read concurrency; multiple readers
  do not block while the single writer runs.

USAGE:
  store, err := sqlite.New("./data/workforce.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - provider/provider.go: Interface definitions
  - provider/memory:      In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/attendance"
	"github.com/warp/workforce-engine/engine"
)

// Store implements the entity-provider interfaces using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		base_salary TEXT NOT NULL,
		hourly_rate TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT,
		start_date TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		estimated_hours TEXT NOT NULL DEFAULT '0',
		actual_hours TEXT NOT NULL DEFAULT '0',
		task_type TEXT NOT NULL DEFAULT 'regular'
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_user
		ON tasks(user_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_user_start
		ON tasks(user_id, start_date);

	-- Raw clock punches. Append-only: attendance state is re-derived
	-- from these rows on every read.
	CREATE TABLE IF NOT EXISTS clock_events (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		at TEXT NOT NULL,
		day TEXT NOT NULL,
		location TEXT,
		in_range INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_clock_events_user_day
		ON clock_events(user_id, day);

	CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		app_type TEXT NOT NULL,
		leave_kind TEXT,
		reason TEXT,
		start_date TEXT,
		end_date TEXT,
		day TEXT,
		hours TEXT,
		location TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_applications_user
		ON applications(user_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Reset clears all data. Demo scenarios call this before loading.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"users", "tasks", "clock_events", "applications"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// provider.UserDirectory
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, user engine.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, base_salary, hourly_rate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			base_salary = excluded.base_salary,
			hourly_rate = excluded.hourly_rate`,
		string(user.ID), user.Name, user.BaseSalary.String(), user.HourlyRate.String())
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]engine.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, base_salary, hourly_rate FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []engine.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, id engine.UserID) (*engine.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, base_salary, hourly_rate FROM users WHERE id = ?`, string(id))

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (engine.User, error) {
	var id, name, baseSalary, hourlyRate string
	if err := row.Scan(&id, &name, &baseSalary, &hourlyRate); err != nil {
		return engine.User{}, err
	}
	return engine.User{
		ID:         engine.UserID(id),
		Name:       name,
		BaseSalary: engine.MustParseMoney(baseSalary),
		HourlyRate: engine.MustParseMoney(hourlyRate),
	}, nil
}

// =============================================================================
// provider.TaskLog
// =============================================================================

func (s *Store) SaveTask(ctx context.Context, task engine.Task) error {
	completed := 0
	if task.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, start_date, completed, estimated_hours, actual_hours, task_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			start_date = excluded.start_date,
			completed = excluded.completed,
			estimated_hours = excluded.estimated_hours,
			actual_hours = excluded.actual_hours,
			task_type = excluded.task_type`,
		string(task.ID), string(task.UserID), task.Title,
		task.StartDate.Format("2006-01-02"), completed,
		task.EstimatedHours.String(), task.ActualHours.String(), string(task.Type))
	return err
}

func (s *Store) ListTasks(ctx context.Context, userID engine.UserID) ([]engine.Task, error) {
	query := `SELECT id, user_id, title, start_date, completed, estimated_hours, actual_hours, task_type
		FROM tasks`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, string(userID))
	}
	query += ` ORDER BY start_date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []engine.Task
	for rows.Next() {
		var id, uid, title, startDate, estimatedHours, actualHours, taskType string
		var completed int
		if err := rows.Scan(&id, &uid, &title, &startDate, &completed, &estimatedHours, &actualHours, &taskType); err != nil {
			return nil, err
		}
		start, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad start_date %q: %w", id, startDate, err)
		}
		estimated, err := decimal.NewFromString(estimatedHours)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad estimated_hours %q: %w", id, estimatedHours, err)
		}
		actual, err := decimal.NewFromString(actualHours)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad actual_hours %q: %w", id, actualHours, err)
		}
		tasks = append(tasks, engine.Task{
			ID:             engine.TaskID(id),
			UserID:         engine.UserID(uid),
			Title:          title,
			StartDate:      start,
			Completed:      completed != 0,
			EstimatedHours: estimated,
			ActualHours:    actual,
			Type:           engine.TaskType(taskType),
		})
	}
	return tasks, rows.Err()
}

// =============================================================================
// attendance.EventLog
// =============================================================================

func (s *Store) AppendEvent(ctx context.Context, event attendance.ClockEvent) error {
	inRange := 0
	if event.InRange {
		inRange = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clock_events (id, user_id, event_type, at, day, location, in_range)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, string(event.UserID), string(event.Type),
		event.At.UTC().Format(time.RFC3339),
		engine.DateOf(event.At).Format("2006-01-02"),
		event.Location, inRange)
	return err
}

func (s *Store) EventsForDay(ctx context.Context, userID engine.UserID, date time.Time) ([]attendance.ClockEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, event_type, at, location, in_range
		FROM clock_events
		WHERE user_id = ? AND day = ?
		ORDER BY at`,
		string(userID), engine.DateOf(date).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []attendance.ClockEvent
	for rows.Next() {
		var id, uid, eventType, at, location string
		var inRange int
		if err := rows.Scan(&id, &uid, &eventType, &at, &location, &inRange); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("clock event %s: bad timestamp %q: %w", id, at, err)
		}
		events = append(events, attendance.ClockEvent{
			ID:       id,
			UserID:   engine.UserID(uid),
			Type:     attendance.EventType(eventType),
			At:       ts,
			Location: location,
			InRange:  inRange != 0,
		})
	}
	return events, rows.Err()
}

// =============================================================================
// attendance.ApplicationStore
// =============================================================================

func (s *Store) SaveApplication(ctx context.Context, app attendance.Application) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications
			(id, user_id, app_type, leave_kind, reason, start_date, end_date, day, hours, location, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID, string(app.UserID), string(app.Type), string(app.Kind), app.Reason,
		dateOrEmpty(app.StartDate), dateOrEmpty(app.EndDate), dateOrEmpty(app.Date),
		app.Hours.String(), app.Location, string(app.Status),
		app.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) ListApplications(ctx context.Context, userID engine.UserID) ([]attendance.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, app_type, leave_kind, reason, start_date, end_date, day, hours, location, status, created_at
		FROM applications
		WHERE user_id = ?
		ORDER BY created_at DESC`,
		string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []attendance.Application
	for rows.Next() {
		var id, uid, appType, kind, reason, startDate, endDate, day, hours, location, status, createdAt string
		if err := rows.Scan(&id, &uid, &appType, &kind, &reason, &startDate, &endDate, &day, &hours, &location, &status, &createdAt); err != nil {
			return nil, err
		}
		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("application %s: bad created_at %q: %w", id, createdAt, err)
		}
		h, err := decimal.NewFromString(hours)
		if err != nil {
			h = decimal.Zero
		}
		apps = append(apps, attendance.Application{
			ID:        id,
			UserID:    engine.UserID(uid),
			Type:      attendance.ApplicationType(appType),
			Kind:      attendance.LeaveKind(kind),
			Reason:    reason,
			StartDate: parseDateOrZero(startDate),
			EndDate:   parseDateOrZero(endDate),
			Date:      parseDateOrZero(day),
			Hours:     h,
			Location:  location,
			Status:    attendance.ApplicationStatus(status),
			CreatedAt: created,
		})
	}
	return apps, rows.Err()
}

func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return engine.DateOf(t).Format("2006-01-02")
}

func parseDateOrZero(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
