// Package employee exposes the employee directory the leave subsystem
// validates references against. Employee administration itself lives
// outside this service.
package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Directory interface {
	ExistsByID(ctx context.Context, employeeID string) (bool, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &directory{db: db}
}

func (d *directory) ExistsByID(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", employeeID).
		Where("employment_status = ?", "ACTIVE").
		Count(&count).Error
	return count > 0, err
}

func (d *directory) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var e Employee
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *directory) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := d.db.WithContext(ctx).
		Model(&Employee{}).
		Where("employment_status = ?", "ACTIVE").
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
