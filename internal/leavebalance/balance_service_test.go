package leavebalance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-leavehub/internal/domain"
	"go-leavehub/internal/employee"
	"go-leavehub/internal/events"
	"go-leavehub/internal/leavebalance"
	balanceerrors "go-leavehub/internal/leavebalance/errors"
	"go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/schemeassignment"
	"go-leavehub/internal/shared/apperror"
	"go-leavehub/internal/shared/clock"
)

type upsertCall struct {
	employeeID  string
	leaveTypeID string
	year        int
	allocated   decimal.Decimal
}

type fakeBalanceRepository struct {
	upsertCalls          []upsertCall
	upsertFn             func(ctx context.Context, employeeID, leaveTypeID string, year int, allocated decimal.Decimal) error
	findByEmployeeYearFn func(ctx context.Context, employeeID string, year int) ([]leavebalance.LeaveBalance, error)
	listSchemeEntriesFn  func(ctx context.Context, schemeID string) ([]leavebalance.SchemeEntry, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository { return f }

func (f *fakeBalanceRepository) Upsert(ctx context.Context, employeeID, leaveTypeID string, year int, allocated decimal.Decimal) error {
	f.upsertCalls = append(f.upsertCalls, upsertCall{employeeID, leaveTypeID, year, allocated})
	if f.upsertFn != nil {
		return f.upsertFn(ctx, employeeID, leaveTypeID, year, allocated)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leavebalance.LeaveBalance, error) {
	if f.findByEmployeeYearFn != nil {
		return f.findByEmployeeYearFn(ctx, employeeID, year)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) Deduct(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	return nil
}

func (f *fakeBalanceRepository) Restore(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	return nil
}

func (f *fakeBalanceRepository) ListSchemeEntries(ctx context.Context, schemeID string) ([]leavebalance.SchemeEntry, error) {
	if f.listSchemeEntriesFn != nil {
		return f.listSchemeEntriesFn(ctx, schemeID)
	}
	return nil, nil
}

type fakeAssignmentRepository struct {
	findCurrentFn func(ctx context.Context, employeeID string, asOf time.Time) (*schemeassignment.EmployeeLeaveScheme, error)
}

func (f *fakeAssignmentRepository) Create(ctx context.Context, a *schemeassignment.EmployeeLeaveScheme) error {
	return nil
}

func (f *fakeAssignmentRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]schemeassignment.EmployeeLeaveScheme, error) {
	return nil, nil
}

func (f *fakeAssignmentRepository) FindByID(ctx context.Context, id string) (*schemeassignment.EmployeeLeaveScheme, error) {
	return nil, nil
}

func (f *fakeAssignmentRepository) Update(ctx context.Context, a *schemeassignment.EmployeeLeaveScheme) error {
	return nil
}

func (f *fakeAssignmentRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeAssignmentRepository) FindCurrent(ctx context.Context, employeeID string, asOf time.Time) (*schemeassignment.EmployeeLeaveScheme, error) {
	if f.findCurrentFn != nil {
		return f.findCurrentFn(ctx, employeeID, asOf)
	}
	return nil, nil
}

func (f *fakeAssignmentRepository) HasOverlap(ctx context.Context, employeeID string, from time.Time, to *time.Time, excludeID *string) (bool, error) {
	return false, nil
}

func (f *fakeAssignmentRepository) SchemeActive(ctx context.Context, schemeID string) (bool, error) {
	return true, nil
}

type fakeDirectory struct {
	listActiveIDsFn func(ctx context.Context) ([]string, error)
}

func (f *fakeDirectory) ExistsByID(ctx context.Context, employeeID string) (bool, error) {
	return true, nil
}

func (f *fakeDirectory) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return nil, nil
}

func (f *fakeDirectory) ListActiveIDs(ctx context.Context) ([]string, error) {
	if f.listActiveIDsFn != nil {
		return f.listActiveIDsFn(ctx)
	}
	return nil, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error      { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, _ string) error { return nil }

var testClock = clock.Fixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

func TestBalanceService_GetByEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("negative employee cannot read another employee's balances", func(t *testing.T) {
		repo := &fakeBalanceRepository{}
		svc := leavebalance.NewService(repo, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, nil)

		actor := domain.Actor{UserID: uuid.New().String(), EmployeeID: uuid.New().String(), Role: domain.RoleEmployee}
		_, err := svc.GetByEmployee(ctx, actor, employeeID, 2025)

		assert.ErrorIs(t, err, balanceerrors.ErrNotBalanceOwner)
	})

	t.Run("success owner reads with remaining computed", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findByEmployeeYearFn: func(ctx context.Context, eid string, year int) ([]leavebalance.LeaveBalance, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, 2025, year)
				return []leavebalance.LeaveBalance{
					{
						ID:            uuid.New(),
						EmployeeID:    uuid.MustParse(employeeID),
						LeaveTypeID:   uuid.New(),
						Year:          2025,
						AllocatedDays: decimal.NewFromInt(12),
						UsedDays:      decimal.NewFromInt(3),
					},
				}, nil
			},
		}
		svc := leavebalance.NewService(repo, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, nil)

		actor := domain.Actor{UserID: uuid.New().String(), EmployeeID: employeeID, Role: domain.RoleEmployee}
		resp, err := svc.GetByEmployee(ctx, actor, employeeID, 2025)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, float64(12), resp[0].AllocatedDays)
		assert.Equal(t, float64(3), resp[0].UsedDays)
		assert.Equal(t, float64(9), resp[0].RemainingDays)
	})

	t.Run("success cache hit skips the repository", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		cached := []leavebalance.BalanceResponse{{EmployeeID: employeeID, Year: 2025, AllocatedDays: 12, RemainingDays: 12}}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		redisMock.ExpectGet(leavebalance.CacheKey(employeeID, 2025)).SetVal(string(payload))

		repo := &fakeBalanceRepository{
			findByEmployeeYearFn: func(ctx context.Context, eid string, year int) ([]leavebalance.LeaveBalance, error) {
				t.Fatal("repository must not be hit on a cache hit")
				return nil, nil
			},
		}
		svc := leavebalance.NewService(repo, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, rdb)

		actor := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHR}
		resp, err := svc.GetByEmployee(ctx, actor, employeeID, 2025)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative year out of range", func(t *testing.T) {
		svc := leavebalance.NewService(&fakeBalanceRepository{}, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, nil)

		actor := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHR}
		_, err := svc.GetByEmployee(ctx, actor, employeeID, 1900)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidYear)
	})
}

func TestBalanceService_PopulateForYear(t *testing.T) {
	ctx := context.Background()
	hr := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHR}

	t.Run("negative non-privileged actor", func(t *testing.T) {
		svc := leavebalance.NewService(&fakeBalanceRepository{}, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, nil)

		actor := domain.Actor{UserID: uuid.New().String(), EmployeeID: uuid.New().String(), Role: domain.RoleEmployee}
		_, err := svc.PopulateForYear(ctx, actor, 2025)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("success seeds assigned employees and skips unassigned", func(t *testing.T) {
		assigned := uuid.New().String()
		unassigned := uuid.New().String()
		schemeID := uuid.New()
		casualID := uuid.New().String()
		sickID := uuid.New().String()

		repo := &fakeBalanceRepository{
			listSchemeEntriesFn: func(ctx context.Context, sid string) ([]leavebalance.SchemeEntry, error) {
				assert.Equal(t, schemeID.String(), sid)
				return []leavebalance.SchemeEntry{
					{LeaveTypeID: casualID, DaysAllowed: decimal.NewFromInt(12)},
					{LeaveTypeID: sickID, DaysAllowed: decimal.NewFromInt(10)},
				}, nil
			},
		}
		resolver := &fakeAssignmentRepository{
			findCurrentFn: func(ctx context.Context, eid string, asOf time.Time) (*schemeassignment.EmployeeLeaveScheme, error) {
				if eid == assigned {
					return &schemeassignment.EmployeeLeaveScheme{ID: uuid.New(), SchemeID: schemeID}, nil
				}
				return nil, nil
			},
		}
		directory := &fakeDirectory{
			listActiveIDsFn: func(ctx context.Context) ([]string, error) {
				return []string{assigned, unassigned}, nil
			},
		}

		svc := leavebalance.NewService(repo, resolver, directory, testClock, nil)

		resp, err := svc.PopulateForYear(ctx, hr, 2025)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.EmployeesProcessed)
		assert.Equal(t, 1, resp.EmployeesSkipped)
		assert.Equal(t, 2, resp.RowsUpserted)
		assert.Len(t, repo.upsertCalls, 2)
		assert.Equal(t, assigned, repo.upsertCalls[0].employeeID)
		assert.Equal(t, casualID, repo.upsertCalls[0].leaveTypeID)
		assert.True(t, decimal.NewFromInt(12).Equal(repo.upsertCalls[0].allocated))
	})

	t.Run("success rerun upserts the same rows again", func(t *testing.T) {
		employeeID := uuid.New().String()
		schemeID := uuid.New()
		leaveTypeID := uuid.New().String()

		repo := &fakeBalanceRepository{
			listSchemeEntriesFn: func(ctx context.Context, sid string) ([]leavebalance.SchemeEntry, error) {
				return []leavebalance.SchemeEntry{{LeaveTypeID: leaveTypeID, DaysAllowed: decimal.NewFromInt(12)}}, nil
			},
		}
		resolver := &fakeAssignmentRepository{
			findCurrentFn: func(ctx context.Context, eid string, asOf time.Time) (*schemeassignment.EmployeeLeaveScheme, error) {
				return &schemeassignment.EmployeeLeaveScheme{ID: uuid.New(), SchemeID: schemeID}, nil
			},
		}
		directory := &fakeDirectory{
			listActiveIDsFn: func(ctx context.Context) ([]string, error) { return []string{employeeID}, nil },
		}

		svc := leavebalance.NewService(repo, resolver, directory, testClock, nil)

		_, err := svc.PopulateForYear(ctx, hr, 2025)
		assert.NoError(t, err)
		_, err = svc.PopulateForYear(ctx, hr, 2025)
		assert.NoError(t, err)

		assert.Len(t, repo.upsertCalls, 2)
		assert.Equal(t, repo.upsertCalls[0], repo.upsertCalls[1])
	})

	t.Run("success past year resolves against january 1st", func(t *testing.T) {
		employeeID := uuid.New().String()

		var resolvedAt time.Time
		resolver := &fakeAssignmentRepository{
			findCurrentFn: func(ctx context.Context, eid string, asOf time.Time) (*schemeassignment.EmployeeLeaveScheme, error) {
				resolvedAt = asOf
				return nil, nil
			},
		}
		directory := &fakeDirectory{
			listActiveIDsFn: func(ctx context.Context) ([]string, error) { return []string{employeeID}, nil },
		}

		svc := leavebalance.NewService(&fakeBalanceRepository{}, resolver, directory, testClock, nil)

		_, err := svc.PopulateForYear(ctx, hr, 2024)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), resolvedAt)
	})
}

func TestBalanceService_RequestPopulate(t *testing.T) {
	ctx := context.Background()
	hr := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHR}

	t.Run("success stages an outbox event", func(t *testing.T) {
		outbox := &fakeOutboxRepository{}
		svc := leavebalance.NewServiceWithOutbox(&fakeBalanceRepository{}, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, nil, outbox)

		err := svc.RequestPopulate(ctx, hr, 2025)

		assert.NoError(t, err)
		assert.Len(t, outbox.created, 1)
		assert.Equal(t, events.BalancePopulateRequestedTopic, outbox.created[0].Topic)

		var event events.BalancePopulateRequestedEvent
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
		assert.Equal(t, 2025, event.Year)
		assert.Equal(t, hr.UserID, event.RequestedBy)
	})

	t.Run("negative non-privileged actor", func(t *testing.T) {
		outbox := &fakeOutboxRepository{}
		svc := leavebalance.NewServiceWithOutbox(&fakeBalanceRepository{}, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, nil, outbox)

		actor := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleEmployee}
		err := svc.RequestPopulate(ctx, actor, 2025)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.Empty(t, outbox.created)
	})

	t.Run("negative outbox not configured", func(t *testing.T) {
		svc := leavebalance.NewService(&fakeBalanceRepository{}, &fakeAssignmentRepository{}, &fakeDirectory{}, testClock, nil)

		err := svc.RequestPopulate(ctx, hr, 2025)

		assert.Error(t, err)
	})
}
