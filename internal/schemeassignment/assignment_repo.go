package schemeassignment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-leavehub/internal/shared/scope"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *EmployeeLeaveScheme) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]EmployeeLeaveScheme, error)
	FindByID(ctx context.Context, id string) (*EmployeeLeaveScheme, error)
	Update(ctx context.Context, a *EmployeeLeaveScheme) error
	Delete(ctx context.Context, id string) error

	// FindCurrent resolves the scheme governing the employee on asOf:
	// one query, most recent effective_from wins. Returns nil when no
	// interval matches; an unassigned employee is not an error.
	FindCurrent(ctx context.Context, employeeID string, asOf time.Time) (*EmployeeLeaveScheme, error)

	HasOverlap(ctx context.Context, employeeID string, from time.Time, to *time.Time, excludeID *string) (bool, error)
	SchemeActive(ctx context.Context, schemeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *EmployeeLeaveScheme) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]EmployeeLeaveScheme, error) {
	var assignments []EmployeeLeaveScheme
	err := r.db.WithContext(ctx).
		Scopes(scope.ForEmployee(employeeID)).
		Order("effective_from DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeLeaveScheme, error) {
	var a EmployeeLeaveScheme
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *EmployeeLeaveScheme) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&EmployeeLeaveScheme{}, "id = ?", id).Error
}

func (r *repository) FindCurrent(ctx context.Context, employeeID string, asOf time.Time) (*EmployeeLeaveScheme, error) {
	var a EmployeeLeaveScheme
	err := r.db.WithContext(ctx).
		Scopes(scope.ForEmployee(employeeID)).
		Where("effective_from <= ?", asOf).
		Where("effective_to IS NULL OR effective_to >= ?", asOf).
		Order("effective_from DESC").
		Limit(1).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) HasOverlap(ctx context.Context, employeeID string, from time.Time, to *time.Time, excludeID *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&EmployeeLeaveScheme{}).
		Scopes(scope.ForEmployee(employeeID)).
		Where("effective_to IS NULL OR effective_to >= ?", from)

	if to != nil {
		q = q.Where("effective_from <= ?", *to)
	}
	if excludeID != nil && *excludeID != "" {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) SchemeActive(ctx context.Context, schemeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_schemes").
		Where("id = ?", schemeID).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}
