package leaveapplication

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=application_repo.go -destination=mock/application_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, a *LeaveApplication) error
	FindAll(ctx context.Context, status *string) ([]LeaveApplication, error)
	FindAllByEmployee(ctx context.Context, employeeID string, status *string) ([]LeaveApplication, error)
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)

	// FindByIDForUpdate locks the application row for the duration of
	// the surrounding transaction. Must be called through WithTx.
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error)

	UpdateDetails(ctx context.Context, a *LeaveApplication) error
	UpdateStatus(ctx context.Context, a *LeaveApplication) error
	Delete(ctx context.Context, id string) error

	LeaveTypeInScheme(ctx context.Context, schemeID, leaveTypeID string) (bool, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type querier interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const applicationColumns = `
	id, application_number, employee_id, leave_type_id,
	start_date, end_date, duration_type, working_days,
	reason, attachment_url, comments,
	status, approved_by, created_by,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, a *LeaveApplication) error {
	query := `
INSERT INTO leave_applications (
	id, application_number, employee_id, leave_type_id,
	start_date, end_date, duration_type, working_days,
	reason, attachment_url, status, created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err := r.q().ExecContext(ctx, query,
		a.ID, a.ApplicationNumber, a.EmployeeID, a.LeaveTypeID,
		a.StartDate, a.EndDate, string(a.DurationType), a.WorkingDays,
		a.Reason, a.AttachmentURL, a.Status, a.CreatedBy,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context, status *string) ([]LeaveApplication, error) {
	query := `SELECT ` + applicationColumns + `
FROM leave_applications
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC`

	rows, err := r.q().QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, status *string) ([]LeaveApplication, error) {
	query := `SELECT ` + applicationColumns + `
FROM leave_applications
WHERE employee_id = $1
	AND ($2::text IS NULL OR status = $2)
ORDER BY created_at DESC`

	rows, err := r.q().QueryContext(ctx, query, employeeID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	query := `SELECT ` + applicationColumns + `
FROM leave_applications
WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error) {
	query := `SELECT ` + applicationColumns + `
FROM leave_applications
WHERE id = $1
FOR UPDATE`
	return r.findOne(ctx, query, id)
}

func (r *repository) findOne(ctx context.Context, query, id string) (*LeaveApplication, error) {
	var a LeaveApplication
	var durationType string
	err := r.q().QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ApplicationNumber, &a.EmployeeID, &a.LeaveTypeID,
		&a.StartDate, &a.EndDate, &durationType, &a.WorkingDays,
		&a.Reason, &a.AttachmentURL, &a.Comments,
		&a.Status, &a.ApprovedBy, &a.CreatedBy,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.DurationType = durationTypeOf(durationType)
	return &a, nil
}

func (r *repository) UpdateDetails(ctx context.Context, a *LeaveApplication) error {
	query := `
UPDATE leave_applications
SET
	start_date = $2,
	end_date = $3,
	duration_type = $4,
	working_days = $5,
	reason = $6,
	attachment_url = $7,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.q().ExecContext(ctx, query,
		a.ID, a.StartDate, a.EndDate, string(a.DurationType),
		a.WorkingDays, a.Reason, a.AttachmentURL,
	)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, a *LeaveApplication) error {
	query := `
UPDATE leave_applications
SET
	status = $2,
	approved_by = $3,
	comments = $4,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.q().ExecContext(ctx, query, a.ID, a.Status, a.ApprovedBy, a.Comments)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.q().ExecContext(ctx, `DELETE FROM leave_applications WHERE id = $1`, id)
	return err
}

func (r *repository) LeaveTypeInScheme(ctx context.Context, schemeID, leaveTypeID string) (bool, error) {
	query := `
SELECT COUNT(1)
FROM scheme_leave_types
WHERE scheme_id = $1 AND leave_type_id = $2
`
	var count int
	if err := r.q().QueryRowContext(ctx, query, schemeID, leaveTypeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanApplications(rows *sql.Rows) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	for rows.Next() {
		var a LeaveApplication
		var durationType string
		if err := rows.Scan(
			&a.ID, &a.ApplicationNumber, &a.EmployeeID, &a.LeaveTypeID,
			&a.StartDate, &a.EndDate, &durationType, &a.WorkingDays,
			&a.Reason, &a.AttachmentURL, &a.Comments,
			&a.Status, &a.ApprovedBy, &a.CreatedBy,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.DurationType = durationTypeOf(durationType)
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
