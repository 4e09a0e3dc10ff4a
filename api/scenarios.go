/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
  Pre-built fixtures that populate the store with users, task logs, and
  clock events. The backing HR system supplies this data in production;
  scenarios stand in for it during demos. All generation is deterministic
  (fixed seed) so reloading a scenario reproduces the same numbers.

AVAILABLE SCENARIOS:
  small-team:     Three users with mixed task logs across the window
  single-earner:  One user, hand-picked tasks with a known salary outcome
  heavy-overtime: One user whose log is dominated by overtime tasks

HOW SCENARIOS WORK:
 1. Reset the store (clear all data)
 2. Save users with their pay parameters
 3. Save tasks spread over the payroll window
 4. Append clock events for the current week's business days

NOTE:
  Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - provider/memory, store/sqlite: FixtureStore implementations
*/
package api

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/attendance"
	"github.com/warp/workforce-engine/engine"
)

// FixtureStore is the write surface scenarios need. Both the memory and
// sqlite stores implement it.
type FixtureStore interface {
	Reset(ctx context.Context) error
	SaveUser(ctx context.Context, user engine.User) error
	SaveTask(ctx context.Context, task engine.Task) error
	AppendEvent(ctx context.Context, event attendance.ClockEvent) error
}

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team",
		Name:        "Small Team",
		Description: "Three users with mixed regular/urgent/overtime task logs",
	},
	{
		ID:          "single-earner",
		Name:        "Single Earner",
		Description: "One user with a hand-picked log and a known salary outcome",
	},
	{
		ID:          "heavy-overtime",
		Name:        "Heavy Overtime",
		Description: "One user whose hours are dominated by overtime tasks",
	},
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Loaded ID missing from the list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:   h.currentScenario,
		Name: h.currentScenario,
	})
}

// LoadScenario resets the store and loads the requested fixture.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scenario request", err)
		return
	}

	ctx := r.Context()
	if err := h.Fixtures.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "small-team":
		err = h.loadSmallTeam(ctx)
	case "single-earner":
		err = h.loadSingleEarner(ctx)
	case "heavy-overtime":
		err = h.loadHeavyOvertime(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// ResetStore clears all fixture data.
func (h *Handler) ResetStore(w http.ResponseWriter, r *http.Request) {
	if err := h.Fixtures.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSmallTeam(ctx context.Context) error {
	users := []engine.User{
		{ID: "u1", Name: "Alice Zhang", BaseSalary: engine.NewMoneyFromInt(5000), HourlyRate: engine.NewMoneyFromInt(20)},
		{ID: "u2", Name: "Bob Ferreira", BaseSalary: engine.NewMoneyFromInt(6200), HourlyRate: engine.NewMoneyFromInt(25)},
		{ID: "u3", Name: "Chen Wei", BaseSalary: engine.NewMoneyFromInt(5500), HourlyRate: engine.NewMoneyFromInt(30)},
	}
	for _, u := range users {
		if err := h.Fixtures.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	// Deterministic task spread: same seed, same data on every load.
	rng := rand.New(rand.NewSource(42))
	types := []engine.TaskType{engine.TaskRegular, engine.TaskUrgent, engine.TaskOvertime}

	for _, u := range users {
		for _, month := range h.Payroll.Window {
			period, err := engine.MonthPeriod(month)
			if err != nil {
				return err
			}
			n := 3 + rng.Intn(4)
			for i := 0; i < n; i++ {
				day := period.Start.AddDate(0, 0, rng.Intn(28))
				hours := decimal.NewFromInt(int64(1 + rng.Intn(8)))
				task := engine.Task{
					ID:             engine.TaskID(uuid.NewString()),
					UserID:         u.ID,
					Title:          fmt.Sprintf("%s task %d", month, i+1),
					StartDate:      day,
					Completed:      rng.Float64() < 0.8,
					EstimatedHours: hours,
					ActualHours:    hours,
					Type:           types[rng.Intn(len(types))],
				}
				if err := h.Fixtures.SaveTask(ctx, task); err != nil {
					return err
				}
			}
		}
	}

	return h.seedWeekClockEvents(ctx, users, rng)
}

func (h *Handler) loadSingleEarner(ctx context.Context) error {
	user := engine.User{ID: "u1", Name: "Alice Zhang", BaseSalary: engine.NewMoneyFromInt(5000), HourlyRate: engine.NewMoneyFromInt(20)}
	if err := h.Fixtures.SaveUser(ctx, user); err != nil {
		return err
	}

	month := h.Payroll.Window.Latest()
	period, err := engine.MonthPeriod(month)
	if err != nil {
		return err
	}

	// One regular 8h task, one overtime 4h task, one incomplete task that
	// must contribute nothing.
	tasks := []engine.Task{
		{ID: "t-reg", UserID: user.ID, Title: "Quarterly report", StartDate: period.Start.AddDate(0, 0, 4), Completed: true, EstimatedHours: decimal.NewFromInt(6), ActualHours: decimal.NewFromInt(8), Type: engine.TaskRegular},
		{ID: "t-ot", UserID: user.ID, Title: "Release hotfix", StartDate: period.Start.AddDate(0, 0, 10), Completed: true, EstimatedHours: decimal.NewFromInt(4), ActualHours: decimal.NewFromInt(4), Type: engine.TaskOvertime},
		{ID: "t-wip", UserID: user.ID, Title: "Migration draft", StartDate: period.Start.AddDate(0, 0, 12), Completed: false, EstimatedHours: decimal.NewFromInt(10), ActualHours: decimal.NewFromInt(10), Type: engine.TaskOvertime},
	}
	for _, t := range tasks {
		if err := h.Fixtures.SaveTask(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadHeavyOvertime(ctx context.Context) error {
	user := engine.User{ID: "u9", Name: "Dana Okafor", BaseSalary: engine.NewMoneyFromInt(7000), HourlyRate: engine.NewMoneyFromInt(35)}
	if err := h.Fixtures.SaveUser(ctx, user); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(7))
	for _, month := range h.Payroll.Window {
		period, err := engine.MonthPeriod(month)
		if err != nil {
			return err
		}
		for i := 0; i < 6; i++ {
			taskType := engine.TaskOvertime
			if i%3 == 0 {
				taskType = engine.TaskRegular
			}
			hours := decimal.NewFromInt(int64(2 + rng.Intn(4)))
			task := engine.Task{
				ID:             engine.TaskID(uuid.NewString()),
				UserID:         user.ID,
				Title:          fmt.Sprintf("%s overtime batch %d", month, i+1),
				StartDate:      period.Start.AddDate(0, 0, rng.Intn(28)),
				Completed:      true,
				EstimatedHours: hours,
				ActualHours:    hours,
				Type:           taskType,
			}
			if err := h.Fixtures.SaveTask(ctx, task); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedWeekClockEvents adds completed punches for past business days this
// week and a lone clock-in for today.
func (h *Handler) seedWeekClockEvents(ctx context.Context, users []engine.User, rng *rand.Rand) error {
	now := h.Attendance.Now()
	today := engine.DateOf(now)

	for _, u := range users {
		for _, day := range attendance.BusinessDaysThisWeek(now) {
			in := day.Add(time.Duration(9)*time.Hour + time.Duration(rng.Intn(15))*time.Minute)
			if err := h.Fixtures.AppendEvent(ctx, attendance.ClockEvent{
				ID: uuid.NewString(), UserID: u.ID, Type: attendance.EventClockIn,
				At: in, Location: "HQ", InRange: true,
			}); err != nil {
				return err
			}

			if day.Equal(today) {
				continue // still in progress
			}
			out := day.Add(time.Duration(18)*time.Hour + time.Duration(30+rng.Intn(30))*time.Minute)
			if err := h.Fixtures.AppendEvent(ctx, attendance.ClockEvent{
				ID: uuid.NewString(), UserID: u.ID, Type: attendance.EventClockOut,
				At: out, Location: "HQ", InRange: true,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
