package leavebalance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	balanceerrors "go-leavehub/internal/leavebalance/errors"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Upsert creates the row with used_days=0 or refreshes only
	// allocated_days on an existing row. used_days is never written by
	// population, so re-running a year is always safe.
	Upsert(ctx context.Context, employeeID, leaveTypeID string, year int, allocated decimal.Decimal) error

	FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)

	// Deduct and Restore lock the balance row (SELECT ... FOR UPDATE)
	// before writing, so they must run inside a transaction supplied
	// via WithTx. Deduct fails without mutating when the result would
	// exceed allocated_days; Restore clamps used_days at zero.
	Deduct(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Restore(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error

	ListSchemeEntries(ctx context.Context, schemeID string) ([]SchemeEntry, error)
}

// SchemeEntry is the per-type allotment read during population.
type SchemeEntry struct {
	LeaveTypeID string
	DaysAllowed decimal.Decimal
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

func (r *repository) Upsert(ctx context.Context, employeeID, leaveTypeID string, year int, allocated decimal.Decimal) error {
	query := `
INSERT INTO leave_balances (id, employee_id, leave_type_id, year, allocated_days, used_days)
VALUES ($1, $2, $3, $4, $5, 0)
ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE
SET allocated_days = EXCLUDED.allocated_days, updated_at = NOW()
`
	_, err := r.q().ExecContext(ctx, query, uuid.NewString(), employeeID, leaveTypeID, year, allocated)
	return err
}

func (r *repository) FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	query := `
SELECT id, employee_id, leave_type_id, year, allocated_days, used_days, created_at, updated_at
FROM leave_balances
WHERE employee_id = $1 AND year = $2
ORDER BY created_at ASC
`
	rows, err := r.q().QueryContext(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []LeaveBalance
	for rows.Next() {
		var b LeaveBalance
		if err := rows.Scan(
			&b.ID,
			&b.EmployeeID,
			&b.LeaveTypeID,
			&b.Year,
			&b.AllocatedDays,
			&b.UsedDays,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

func (r *repository) Deduct(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	id, allocated, used, err := r.lockRow(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}

	next := used.Add(days)
	if next.GreaterThan(allocated) {
		return balanceerrors.ErrInsufficientBalance
	}

	return r.setUsed(ctx, id, next)
}

func (r *repository) Restore(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	id, _, used, err := r.lockRow(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}

	next := used.Sub(days)
	if next.IsNegative() {
		next = decimal.Zero
	}

	return r.setUsed(ctx, id, next)
}

func (r *repository) lockRow(ctx context.Context, employeeID, leaveTypeID string, year int) (string, decimal.Decimal, decimal.Decimal, error) {
	query := `
SELECT id::text, allocated_days, used_days
FROM leave_balances
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
FOR UPDATE
`
	var (
		id        string
		allocated decimal.Decimal
		used      decimal.Decimal
	)
	err := r.q().QueryRowContext(ctx, query, employeeID, leaveTypeID, year).Scan(&id, &allocated, &used)
	if errors.Is(err, sql.ErrNoRows) {
		return "", decimal.Zero, decimal.Zero, balanceerrors.ErrBalanceNotFound
	}
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	return id, allocated, used, nil
}

func (r *repository) setUsed(ctx context.Context, id string, used decimal.Decimal) error {
	query := `UPDATE leave_balances SET used_days = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.q().ExecContext(ctx, query, id, used)
	return err
}

func (r *repository) ListSchemeEntries(ctx context.Context, schemeID string) ([]SchemeEntry, error) {
	query := `
SELECT leave_type_id::text, days_allowed
FROM scheme_leave_types
WHERE scheme_id = $1
ORDER BY created_at ASC
`
	rows, err := r.q().QueryContext(ctx, query, schemeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []SchemeEntry
	for rows.Next() {
		var e SchemeEntry
		if err := rows.Scan(&e.LeaveTypeID, &e.DaysAllowed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
