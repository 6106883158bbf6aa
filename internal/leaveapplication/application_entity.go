package leaveapplication

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-leavehub/internal/workingdays"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// LeaveApplication is one leave request. working_days is fixed at
// creation time and is the exact amount the ledger deducts on approval
// and restores on cancellation.
type LeaveApplication struct {
	ID                uuid.UUID
	ApplicationNumber string
	EmployeeID        uuid.UUID
	LeaveTypeID       uuid.UUID

	StartDate    time.Time
	EndDate      time.Time
	DurationType workingdays.DurationType
	WorkingDays  decimal.Decimal

	Reason        string
	AttachmentURL *string
	Comments      *string

	Status     string
	ApprovedBy *uuid.UUID
	CreatedBy  uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

func durationTypeOf(v string) workingdays.DurationType {
	switch workingdays.DurationType(v) {
	case workingdays.DurationFullDay, workingdays.DurationFirstHalf, workingdays.DurationSecondHalf:
		return workingdays.DurationType(v)
	default:
		return workingdays.DurationFullDay
	}
}

// normalizeStatus lowercases the input and returns "" when it is not
// one of the four known states.
func normalizeStatus(s string) string {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return v
	default:
		return ""
	}
}
