package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_user"`

	FullName       string `gorm:"type:varchar(150);not null"`
	Email          string `gorm:"type:varchar(150);not null;uniqueIndex:uq_employee_email"`
	EmployeeNumber string `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_number"`

	EmploymentStatus string `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
