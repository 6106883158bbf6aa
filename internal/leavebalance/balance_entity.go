package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is the per (employee, leave type, year) ledger row.
// Remaining days are always derived as allocated - used at read time
// and never stored.
type LeaveBalance struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	LeaveTypeID uuid.UUID
	Year        int

	AllocatedDays decimal.Decimal
	UsedDays      decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining computes the derived balance.
func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.AllocatedDays.Sub(b.UsedDays)
}
