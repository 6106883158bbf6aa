package leavetype

import (
	"context"

	"gorm.io/gorm"

	"go-leavehub/internal/shared/scope"
)

//go:generate mockgen -source=leave_type_repo.go -destination=mock/leave_type_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, lt *LeaveType) error
	FindAll(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
	Delete(ctx context.Context, id string) error
	IsInUse(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]LeaveType, error) {
	var types []LeaveType
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Scopes(scope.ActiveOnly())
	}
	err := q.Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveType{}, "id = ?", id).Error
}

// IsInUse reports whether any scheme attachment, balance row or
// application still references the type.
func (r *repository) IsInUse(ctx context.Context, id string) (bool, error) {
	for _, table := range []string{"scheme_leave_types", "leave_balances", "leave_applications"} {
		var count int64
		err := r.db.WithContext(ctx).
			Table(table).
			Where("leave_type_id = ?", id).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
