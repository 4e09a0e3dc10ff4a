/*
handlers.go - HTTP API handlers for the workforce engine

PURPOSE:
  Exposes the salary and attendance facades via REST. Handles HTTP
  request/response, JSON serialization, and delegates every decision to
  the domain packages.

ENDPOINTS:
  Users:
    GET  /api/users                      List all users
    GET  /api/users/{id}                 Get one user
    GET  /api/users/{id}/tasks           The user's task log

  Salary:
    GET  /api/salary/records             All salary records (?user_id= filter)
    GET  /api/users/{id}/salary          Salary history, newest last
    GET  /api/users/{id}/salary/current  Calendar-current month (404 if none)
    GET  /api/users/{id}/salary/yearly   Yearly summary (?year=YYYY)

  Attendance:
    GET  /api/users/{id}/attendance/today
    GET  /api/users/{id}/attendance/week
    GET  /api/users/{id}/attendance/stats      (?month=YYYY-MM)
    POST /api/users/{id}/attendance/clock-in
    POST /api/users/{id}/attendance/clock-out
    GET  /api/users/{id}/applications
    POST /api/users/{id}/applications/leave
    POST /api/users/{id}/applications/overtime
    POST /api/users/{id}/applications/outwork

  Scenarios:
    GET  /api/scenarios                  List demo scenarios
    GET  /api/scenarios/current          Currently loaded scenario (or null)
    POST /api/scenarios/load             Load a demo scenario
    POST /api/scenarios/reset            Clear the store

ERROR HANDLING:
  - 400: malformed input (bad period keys, validation failures)
  - 404: missing user / no current-month record
  - 409: clock state violations (deterministic, not retryable)
  - 502: upstream provider failure (caller owns retry policy)
  - 500: everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/attendance"
	"github.com/warp/workforce-engine/engine"
	"github.com/warp/workforce-engine/payroll"
	"github.com/warp/workforce-engine/provider"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Payroll    *payroll.Service
	Attendance *attendance.Service
	Users      provider.UserDirectory
	Tasks      provider.TaskLog
	Fixtures   FixtureStore

	validate *validator.Validate

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler wires the facades and the fixture store together.
func NewHandler(pay *payroll.Service, att *attendance.Service, users provider.UserDirectory, tasks provider.TaskLog, fixtures FixtureStore) *Handler {
	return &Handler{
		Payroll:    pay,
		Attendance: att,
		Users:      users,
		Tasks:      tasks,
		Fixtures:   fixtures,
		validate:   validator.New(),
	}
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to list users", provider.Upstream("list users", err))
		return
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUser returns a single user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := engine.UserID(chi.URLParam(r, "id"))

	user, err := h.Users.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get user", provider.Upstream("get user", err))
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// ListUserTasks returns one user's task log.
func (h *Handler) ListUserTasks(w http.ResponseWriter, r *http.Request) {
	id := engine.UserID(chi.URLParam(r, "id"))

	tasks, err := h.Tasks.ListTasks(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to list tasks", provider.Upstream("list tasks", err))
		return
	}

	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SALARY HANDLERS
// =============================================================================

// GenerateSalaryRecords returns the records for the whole window,
// optionally filtered to one user via ?user_id=.
func (h *Handler) GenerateSalaryRecords(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(r.URL.Query().Get("user_id"))

	records, err := h.Payroll.GenerateSalaryRecords(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to generate salary records", err)
		return
	}
	writeJSON(w, http.StatusOK, toSalaryRecordDTOs(records))
}

// GetSalaryHistory returns one user's salary records, newest last.
func (h *Handler) GetSalaryHistory(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	records, err := h.Payroll.SalaryHistory(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to load salary history", err)
		return
	}
	writeJSON(w, http.StatusOK, toSalaryRecordDTOs(records))
}

// GetCurrentMonthSalary returns the calendar-current month's record.
// "No record" is a 404, not a server error.
func (h *Handler) GetCurrentMonthSalary(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	record, err := h.Payroll.CurrentMonthSalary(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to compute current month salary", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "No salary record for the current month", nil)
		return
	}
	writeJSON(w, http.StatusOK, toSalaryRecordDTO(*record))
}

// GetYearlySalary returns the yearly rollup (?year=YYYY, defaults to the
// latest window month's year).
func (h *Handler) GetYearlySalary(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))
	year := r.URL.Query().Get("year")
	if year == "" && len(h.Payroll.Window.Latest()) >= 4 {
		year = h.Payroll.Window.Latest()[:4]
	}

	summary, err := h.Payroll.YearlySalary(r.Context(), userID, year)
	if err != nil {
		writeDomainError(w, "Failed to compute yearly salary", err)
		return
	}
	writeJSON(w, http.StatusOK, toYearlySummaryDTO(summary))
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// GetTodayAttendance returns today's derived day record.
func (h *Handler) GetTodayAttendance(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	record, err := h.Attendance.Today(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to derive attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, toDayRecordDTO(record, h.Attendance.Now()))
}

// GetWeekAttendance returns one record per business day this week.
func (h *Handler) GetWeekAttendance(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	records, err := h.Attendance.Week(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to derive week attendance", err)
		return
	}

	now := h.Attendance.Now()
	dtos := make([]DayRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toDayRecordDTO(rec, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAttendanceStats returns monthly stats (?month=YYYY-MM, defaults to
// the current month).
func (h *Handler) GetAttendanceStats(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))
	month := r.URL.Query().Get("month")
	if month == "" {
		month = engine.MonthOf(h.Attendance.Now())
	}

	stats, err := h.Attendance.MonthStats(r.Context(), userID, month)
	if err != nil {
		writeDomainError(w, "Failed to compute attendance stats", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(stats))
}

// ClockIn records a clock-in punch for the user.
func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.Attendance.ClockIn)
}

// ClockOut records a clock-out punch for the user.
func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.Attendance.ClockOut)
}

type punchFunc func(ctx context.Context, userID engine.UserID, at time.Time, punch attendance.Punch) (attendance.DayRecord, error)

func (h *Handler) punch(w http.ResponseWriter, r *http.Request, do punchFunc) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	var req ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid clock request", err)
		return
	}

	at := h.Attendance.Now()
	if req.Time != "" {
		parsed, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid time (use RFC3339)", err)
			return
		}
		at = parsed
	}

	inRange := true
	if req.InRange != nil {
		inRange = *req.InRange
	}

	record, err := do(r.Context(), userID, at, attendance.Punch{Location: req.Location, InRange: inRange})
	if err != nil {
		writeDomainError(w, "Clock event rejected", err)
		return
	}
	writeJSON(w, http.StatusOK, toDayRecordDTO(record, h.Attendance.Now()))
}

// =============================================================================
// APPLICATION HANDLERS
// =============================================================================

// ApplyLeave files a leave application.
func (h *Handler) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	var req LeaveRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave request", err)
		return
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "endDate precedes startDate", nil)
		return
	}

	app, err := h.Attendance.ApplyLeave(r.Context(), userID, attendance.LeaveKind(req.Kind), req.Reason, start, end)
	if err != nil {
		writeDomainError(w, "Failed to file leave application", err)
		return
	}
	writeJSON(w, http.StatusCreated, toApplicationDTO(app))
}

// ApplyOvertime files an overtime application.
func (h *Handler) ApplyOvertime(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	var req OvertimeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid overtime request", err)
		return
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	app, err := h.Attendance.ApplyOvertime(r.Context(), userID, date, decimal.NewFromFloat(req.Hours), req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to file overtime application", err)
		return
	}
	writeJSON(w, http.StatusCreated, toApplicationDTO(app))
}

// ApplyOutwork files an outwork application.
func (h *Handler) ApplyOutwork(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	var req OutworkRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid outwork request", err)
		return
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	app, err := h.Attendance.ApplyOutwork(r.Context(), userID, date, req.Location, req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to file outwork application", err)
		return
	}
	writeJSON(w, http.StatusCreated, toApplicationDTO(app))
}

// ListApplications returns one user's applications, newest first.
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "id"))

	apps, err := h.Attendance.UserApplications(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to list applications", err)
		return
	}

	dtos := make([]ApplicationDTO, len(apps))
	for i, a := range apps {
		dtos[i] = toApplicationDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps a domain error onto the taxonomy's status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, domainStatus(err), message, err)
}

func domainStatus(err error) int {
	switch {
	case engine.IsInputValidation(err):
		return http.StatusBadRequest
	case attendance.IsStateViolation(err):
		return http.StatusConflict
	case errors.Is(err, provider.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
