package leavetype

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Name    string `gorm:"type:varchar(100);not null"`
	Code    string `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_types_code"`
	MaxDays int    `gorm:"type:int;not null;default:0"`
	Color   string `gorm:"type:varchar(20)"`
	IsPaid  bool   `gorm:"not null;default:true"`

	// Soft delete. A type referenced by balances or applications is
	// deactivated, never removed.
	IsActive bool `gorm:"not null;default:true;index:idx_leave_types_active"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
