package leavescheme

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_scheme_repo.go -destination=mock/leave_scheme_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, s *LeaveScheme) error
	FindAll(ctx context.Context) ([]LeaveScheme, error)
	FindByID(ctx context.Context, id string) (*LeaveScheme, error)
	Update(ctx context.Context, s *LeaveScheme) error
	Delete(ctx context.Context, id string) error
	IsAssigned(ctx context.Context, schemeID string) (bool, error)
	LeaveTypeActive(ctx context.Context, leaveTypeID string) (bool, error)

	AddLeaveType(ctx context.Context, slt *SchemeLeaveType) error
	FindSchemeLeaveType(ctx context.Context, schemeID, leaveTypeID string) (*SchemeLeaveType, error)
	UpdateSchemeLeaveType(ctx context.Context, slt *SchemeLeaveType) error
	RemoveLeaveType(ctx context.Context, schemeID, leaveTypeID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *LeaveScheme) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveScheme, error) {
	var schemes []LeaveScheme
	err := r.db.WithContext(ctx).
		Preload("LeaveTypes").
		Preload("LeaveTypes.LeaveType").
		Order("name ASC").
		Find(&schemes).Error
	return schemes, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveScheme, error) {
	var s LeaveScheme
	err := r.db.WithContext(ctx).
		Preload("LeaveTypes").
		Preload("LeaveTypes.LeaveType").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *LeaveScheme) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&SchemeLeaveType{}, "scheme_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&LeaveScheme{}, "id = ?", id).Error
	})
}

func (r *repository) IsAssigned(ctx context.Context, schemeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employee_leave_schemes").
		Where("scheme_id = ?", schemeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) LeaveTypeActive(ctx context.Context, leaveTypeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_types").
		Where("id = ?", leaveTypeID).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) AddLeaveType(ctx context.Context, slt *SchemeLeaveType) error {
	return r.db.WithContext(ctx).Create(slt).Error
}

func (r *repository) FindSchemeLeaveType(ctx context.Context, schemeID, leaveTypeID string) (*SchemeLeaveType, error) {
	var slt SchemeLeaveType
	err := r.db.WithContext(ctx).
		Where("scheme_id = ?", schemeID).
		Where("leave_type_id = ?", leaveTypeID).
		First(&slt).Error
	return &slt, err
}

func (r *repository) UpdateSchemeLeaveType(ctx context.Context, slt *SchemeLeaveType) error {
	return r.db.WithContext(ctx).Save(slt).Error
}

func (r *repository) RemoveLeaveType(ctx context.Context, schemeID, leaveTypeID string) error {
	return r.db.WithContext(ctx).
		Where("scheme_id = ?", schemeID).
		Where("leave_type_id = ?", leaveTypeID).
		Delete(&SchemeLeaveType{}).Error
}
