package schemeassignment

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeLeaveScheme is one interval of scheme membership. EffectiveTo
// nil means open-ended.
type EmployeeLeaveScheme struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_schemes_employee"`
	SchemeID   uuid.UUID `gorm:"type:uuid;not null"`

	EffectiveFrom time.Time  `gorm:"type:date;not null;index:idx_employee_schemes_employee"`
	EffectiveTo   *time.Time `gorm:"type:date"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
