package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// APPLICATIONS - Leave, overtime, and outwork requests
// =============================================================================
// Applications are created pending and listed per user. Approval routing
// lives with the HR backend, not here.

type ApplicationType string

const (
	ApplicationLeave    ApplicationType = "leave"
	ApplicationOvertime ApplicationType = "overtime"
	ApplicationOutwork  ApplicationType = "outwork"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// LeaveKind classifies leave applications.
type LeaveKind string

const (
	LeaveAnnual   LeaveKind = "annual"
	LeaveSick     LeaveKind = "sick"
	LeavePersonal LeaveKind = "personal"
)

// Application is a single leave/overtime/outwork request.
// StartDate/EndDate apply to leave; Date/Hours to overtime; Date/Location
// to outwork.
type Application struct {
	ID        string
	UserID    engine.UserID
	Type      ApplicationType
	Kind      LeaveKind // leave only
	Reason    string
	StartDate time.Time
	EndDate   time.Time
	Date      time.Time
	Hours     decimal.Decimal
	Location  string
	Status    ApplicationStatus
	CreatedAt time.Time
}

// NewLeaveApplication builds a pending leave request.
func NewLeaveApplication(userID engine.UserID, kind LeaveKind, reason string, start, end time.Time, now time.Time) Application {
	return Application{
		ID:        "leave-" + uuid.NewString(),
		UserID:    userID,
		Type:      ApplicationLeave,
		Kind:      kind,
		Reason:    reason,
		StartDate: engine.DateOf(start),
		EndDate:   engine.DateOf(end),
		Status:    ApplicationPending,
		CreatedAt: now.UTC(),
	}
}

// NewOvertimeApplication builds a pending overtime request.
func NewOvertimeApplication(userID engine.UserID, date time.Time, hours decimal.Decimal, reason string, now time.Time) Application {
	return Application{
		ID:        "overtime-" + uuid.NewString(),
		UserID:    userID,
		Type:      ApplicationOvertime,
		Reason:    reason,
		Date:      engine.DateOf(date),
		Hours:     hours,
		Status:    ApplicationPending,
		CreatedAt: now.UTC(),
	}
}

// NewOutworkApplication builds a pending outwork (off-site work) request.
func NewOutworkApplication(userID engine.UserID, date time.Time, location, reason string, now time.Time) Application {
	return Application{
		ID:        "outwork-" + uuid.NewString(),
		UserID:    userID,
		Type:      ApplicationOutwork,
		Reason:    reason,
		Date:      engine.DateOf(date),
		Location:  location,
		Status:    ApplicationPending,
		CreatedAt: now.UTC(),
	}
}
