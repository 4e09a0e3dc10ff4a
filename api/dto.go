/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the external contract. Money and hours cross
  the wire as float64 for client convenience; all internal math stays on
  decimal.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator tags; handlers run the
  shared validator instance before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Route definitions
*/
package api

import (
	"time"

	"github.com/warp/workforce-engine/attendance"
	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type UserDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	BaseSalary float64 `json:"baseSalary"`
	HourlyRate float64 `json:"hourlyRate"`
}

func toUserDTO(u engine.User) UserDTO {
	return UserDTO{
		ID:         string(u.ID),
		Name:       u.Name,
		BaseSalary: u.BaseSalary.Float64(),
		HourlyRate: u.HourlyRate.Float64(),
	}
}

type TaskDTO struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Title          string  `json:"title,omitempty"`
	StartDate      string  `json:"startDate"`
	Completed      bool    `json:"completed"`
	EstimatedHours float64 `json:"estimatedHours"`
	ActualHours    float64 `json:"actualHours"`
	TaskType       string  `json:"taskType"`
}

func toTaskDTO(t engine.Task) TaskDTO {
	estimated, _ := t.EstimatedHours.Float64()
	actual, _ := t.ActualHours.Float64()
	return TaskDTO{
		ID:             string(t.ID),
		UserID:         string(t.UserID),
		Title:          t.Title,
		StartDate:      t.StartDate.Format("2006-01-02"),
		Completed:      t.Completed,
		EstimatedHours: estimated,
		ActualHours:    actual,
		TaskType:       string(t.Type),
	}
}

type SalaryRecordDTO struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	UserName      string  `json:"userName"`
	Month         string  `json:"month"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	BaseSalary    float64 `json:"baseSalary"`
	OvertimePay   float64 `json:"overtimePay"`
	TotalSalary   float64 `json:"totalSalary"`
	Paid          bool    `json:"paid"`
	PayDate       *string `json:"payDate"`
}

func toSalaryRecordDTO(r engine.SalaryRecord) SalaryRecordDTO {
	regular, _ := r.RegularHours.Float64()
	overtime, _ := r.OvertimeHours.Float64()
	dto := SalaryRecordDTO{
		ID:            r.ID,
		UserID:        string(r.UserID),
		UserName:      r.UserName,
		Month:         r.Month,
		RegularHours:  regular,
		OvertimeHours: overtime,
		BaseSalary:    r.BaseSalary.Float64(),
		OvertimePay:   r.OvertimePay.Float64(),
		TotalSalary:   r.TotalSalary.Float64(),
		Paid:          r.Paid,
	}
	if r.PayDate != nil {
		s := r.PayDate.UTC().Format(time.RFC3339)
		dto.PayDate = &s
	}
	return dto
}

func toSalaryRecordDTOs(records []engine.SalaryRecord) []SalaryRecordDTO {
	dtos := make([]SalaryRecordDTO, len(records))
	for i, r := range records {
		dtos[i] = toSalaryRecordDTO(r)
	}
	return dtos
}

type YearlySummaryDTO struct {
	Year             string            `json:"year"`
	TotalBaseSalary  float64           `json:"totalBaseSalary"`
	TotalOvertimePay float64           `json:"totalOvertimePay"`
	TotalSalary      float64           `json:"totalSalary"`
	MonthlySalaries  []SalaryRecordDTO `json:"monthlySalaries"`
}

func toYearlySummaryDTO(s engine.YearlySummary) YearlySummaryDTO {
	return YearlySummaryDTO{
		Year:             s.Year,
		TotalBaseSalary:  s.TotalBaseSalary.Float64(),
		TotalOvertimePay: s.TotalOvertimePay.Float64(),
		TotalSalary:      s.TotalSalary.Float64(),
		MonthlySalaries:  toSalaryRecordDTOs(s.MonthlySalaries),
	}
}

type DayRecordDTO struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	Date          string  `json:"date"`
	ClockInTime   *string `json:"clockInTime"`
	ClockOutTime  *string `json:"clockOutTime"`
	Status        string  `json:"status"`
	WorkedSeconds int64   `json:"workedSeconds"`
}

func toDayRecordDTO(r attendance.DayRecord, now time.Time) DayRecordDTO {
	dto := DayRecordDTO{
		ID:            r.ID,
		UserID:        string(r.UserID),
		Date:          r.Date.Format("2006-01-02"),
		Status:        string(r.Status),
		WorkedSeconds: int64(r.WorkedDuration(now).Seconds()),
	}
	if r.ClockInTime != nil {
		s := r.ClockInTime.UTC().Format(time.RFC3339)
		dto.ClockInTime = &s
	}
	if r.ClockOutTime != nil {
		s := r.ClockOutTime.UTC().Format(time.RFC3339)
		dto.ClockOutTime = &s
	}
	return dto
}

type StatsDTO struct {
	Period         string  `json:"period"`
	TotalDays      int     `json:"totalDays"`
	PresentDays    int     `json:"presentDays"`
	LateDays       int     `json:"lateDays"`
	EarlyLeaveDays int     `json:"earlyLeaveDays"`
	AbsentDays     int     `json:"absentDays"`
	OvertimeDays   int     `json:"overtimeDays"`
	OvertimeHours  float64 `json:"overtimeHours"`
	AttendanceRate float64 `json:"attendanceRate"`
}

func toStatsDTO(s attendance.Stats) StatsDTO {
	overtime, _ := s.OvertimeHours.Float64()
	return StatsDTO{
		Period:         s.Period,
		TotalDays:      s.TotalDays,
		PresentDays:    s.PresentDays,
		LateDays:       s.LateDays,
		EarlyLeaveDays: s.EarlyLeaveDays,
		AbsentDays:     s.AbsentDays,
		OvertimeDays:   s.OvertimeDays,
		OvertimeHours:  overtime,
		AttendanceRate: s.AttendanceRate,
	}
}

type ApplicationDTO struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Type      string  `json:"type"`
	Kind      string  `json:"kind,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
	Date      string  `json:"date,omitempty"`
	Hours     float64 `json:"hours,omitempty"`
	Location  string  `json:"location,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

func toApplicationDTO(a attendance.Application) ApplicationDTO {
	hours, _ := a.Hours.Float64()
	dto := ApplicationDTO{
		ID:        a.ID,
		UserID:    string(a.UserID),
		Type:      string(a.Type),
		Kind:      string(a.Kind),
		Reason:    a.Reason,
		Hours:     hours,
		Location:  a.Location,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !a.StartDate.IsZero() {
		dto.StartDate = a.StartDate.Format("2006-01-02")
	}
	if !a.EndDate.IsZero() {
		dto.EndDate = a.EndDate.Format("2006-01-02")
	}
	if !a.Date.IsZero() {
		dto.Date = a.Date.Format("2006-01-02")
	}
	return dto
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ClockRequest is the body of clock-in/clock-out. Time defaults to now;
// InRange is the caller's geofence verdict and defaults to true.
type ClockRequest struct {
	Time     string `json:"time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Location string `json:"location" validate:"required"`
	InRange  *bool  `json:"inRange"`
}

type LeaveRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=annual sick personal"`
	Reason    string `json:"reason"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type OvertimeRequest struct {
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Hours  float64 `json:"hours" validate:"required,gt=0"`
	Reason string  `json:"reason"`
}

type OutworkRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Location string `json:"location" validate:"required"`
	Reason   string `json:"reason"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
