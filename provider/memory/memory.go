// Package memory provides in-memory entity providers for tests and demos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/workforce-engine/attendance"
	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store implements provider.UserDirectory, provider.TaskLog,
// attendance.EventLog, and attendance.ApplicationStore.
type Store struct {
	mu           sync.RWMutex
	users        []engine.User
	tasks        []engine.Task
	events       map[dayKey][]attendance.ClockEvent
	applications map[engine.UserID][]attendance.Application
}

type dayKey struct {
	UserID engine.UserID
	Date   string // YYYY-MM-DD
}

func NewStore() *Store {
	return &Store{
		events:       make(map[dayKey][]attendance.ClockEvent),
		applications: make(map[engine.UserID][]attendance.Application),
	}
}

// =============================================================================
// FIXTURE WRITES
// =============================================================================

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.tasks = nil
	s.events = make(map[dayKey][]attendance.ClockEvent)
	s.applications = make(map[engine.UserID][]attendance.Application)
	return nil
}

func (s *Store) SaveUser(_ context.Context, user engine.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = user
			return nil
		}
	}
	s.users = append(s.users, user)
	return nil
}

func (s *Store) SaveTask(_ context.Context, task engine.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			return nil
		}
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// =============================================================================
// provider.UserDirectory
// =============================================================================

func (s *Store) ListUsers(_ context.Context) ([]engine.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]engine.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) GetUser(_ context.Context, id engine.UserID) (*engine.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// =============================================================================
// provider.TaskLog
// =============================================================================

func (s *Store) ListTasks(_ context.Context, userID engine.UserID) ([]engine.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []engine.Task
	for _, t := range s.tasks {
		if userID == "" || t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// =============================================================================
// attendance.EventLog
// =============================================================================

func (s *Store) EventsForDay(_ context.Context, userID engine.UserID, date time.Time) ([]attendance.ClockEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k := dayKey{UserID: userID, Date: engine.DateOf(date).Format("2006-01-02")}
	out := make([]attendance.ClockEvent, len(s.events[k]))
	copy(out, s.events[k])
	return out, nil
}

func (s *Store) AppendEvent(_ context.Context, event attendance.ClockEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := dayKey{UserID: event.UserID, Date: engine.DateOf(event.At).Format("2006-01-02")}
	s.events[k] = append(s.events[k], event)
	return nil
}

// =============================================================================
// attendance.ApplicationStore
// =============================================================================

func (s *Store) SaveApplication(_ context.Context, app attendance.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[app.UserID] = append(s.applications[app.UserID], app)
	return nil
}

func (s *Store) ListApplications(_ context.Context, userID engine.UserID) ([]attendance.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]attendance.Application, len(s.applications[userID]))
	copy(out, s.applications[userID])
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
