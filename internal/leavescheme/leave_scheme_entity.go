package leavescheme

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-leavehub/internal/leavetype"
)

type LeaveScheme struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Name     string `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_schemes_name"`
	IsActive bool   `gorm:"not null;default:true;index:idx_leave_schemes_active"`

	LeaveTypes []SchemeLeaveType `gorm:"foreignKey:SchemeID"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SchemeLeaveType grants days of one leave type to scheme members.
// One row per (scheme, leave type) pair.
type SchemeLeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchemeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_scheme_leave_type"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_scheme_leave_type"`

	DaysAllowed decimal.Decimal `gorm:"type:numeric(5,1);not null"`
	IsPaid      *bool           // overrides the leave type default when set

	LeaveType *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
