package leavebalance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-leavehub/internal/domain"
	"go-leavehub/internal/employee"
	"go-leavehub/internal/events"
	balanceerrors "go-leavehub/internal/leavebalance/errors"
	"go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/schemeassignment"
	"go-leavehub/internal/shared/apperror"
	"go-leavehub/internal/shared/clock"
	"go-leavehub/internal/shared/contextutil"
)

const cacheTTL = 5 * time.Minute

// CacheKey is the redis key for one employee's balances in one year.
// Every ledger mutator deletes it after commit.
func CacheKey(employeeID string, year int) string {
	return fmt.Sprintf("leave:balances:%s:%d", employeeID, year)
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetByEmployee(ctx context.Context, actor domain.Actor, employeeID string, year int) ([]BalanceResponse, error)
	PopulateForYear(ctx context.Context, actor domain.Actor, year int) (PopulateResponse, error)
	RequestPopulate(ctx context.Context, actor domain.Actor, year int) error
}

type service struct {
	repo      Repository
	resolver  schemeassignment.Repository
	directory employee.Directory
	clk       clock.Clock
	rdb       *redis.Client
	outbox    kafka.OutboxRepository
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	resolver schemeassignment.Repository,
	directory employee.Directory,
	clk clock.Clock,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{
		repo:      repo,
		resolver:  resolver,
		directory: directory,
		clk:       clk,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// NewServiceWithOutbox additionally enables RequestPopulate, which
// stages population requests for the consumer binary instead of
// running them inline.
func NewServiceWithOutbox(
	repo Repository,
	resolver schemeassignment.Repository,
	directory employee.Directory,
	clk clock.Clock,
	rdb *redis.Client,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	s := NewService(repo, resolver, directory, clk, rdb, logger...).(*service)
	s.outbox = outbox
	return s
}

func (s *service) GetByEmployee(ctx context.Context, actor domain.Actor, employeeID string, year int) ([]BalanceResponse, error) {
	if !actor.IsPrivileged() && !actor.Owns(employeeID) {
		return nil, balanceerrors.ErrNotBalanceOwner
	}
	if !validYear(year) {
		return nil, balanceerrors.ErrInvalidYear
	}

	cacheKey := CacheKey(employeeID, year)
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []BalanceResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	// singleflight collapses concurrent fills for the same key
	result, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		balances, err := s.repo.FindByEmployeeYear(ctx, employeeID, year)
		if err != nil {
			return nil, err
		}

		resp := make([]BalanceResponse, len(balances))
		for i, b := range balances {
			resp[i] = mapToResponse(b)
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err()
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]BalanceResponse), nil
}

func (s *service) PopulateForYear(ctx context.Context, actor domain.Actor, year int) (PopulateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("populate balances requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.UserID),
		zap.Int("year", year),
	)

	if !actor.IsPrivileged() {
		return PopulateResponse{}, apperror.ErrForbidden
	}
	if !validYear(year) {
		return PopulateResponse{}, balanceerrors.ErrInvalidYear
	}

	asOf := s.referenceDate(year)
	employeeIDs, err := s.directory.ListActiveIDs(ctx)
	if err != nil {
		s.logger.Error("populate balances list employees failed", zap.Error(err))
		return PopulateResponse{}, err
	}

	resp := PopulateResponse{Year: year}
	for _, employeeID := range employeeIDs {
		assignment, err := s.resolver.FindCurrent(ctx, employeeID, asOf)
		if err != nil {
			s.logger.Error("populate balances resolve scheme failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return resp, err
		}
		if assignment == nil {
			// unassigned employees are legitimate; nothing to seed
			resp.EmployeesSkipped++
			continue
		}

		entries, err := s.repo.ListSchemeEntries(ctx, assignment.SchemeID.String())
		if err != nil {
			return resp, err
		}

		// Each upsert is individually atomic and touches only
		// allocated_days, so a concurrent approval on the same row is
		// serialized by the database, never clobbered.
		for _, entry := range entries {
			if err := s.repo.Upsert(ctx, employeeID, entry.LeaveTypeID, year, entry.DaysAllowed); err != nil {
				s.logger.Error("populate balances upsert failed",
					zap.String("employee_id", employeeID),
					zap.String("leave_type_id", entry.LeaveTypeID),
					zap.Error(err),
				)
				return resp, err
			}
			resp.RowsUpserted++
		}
		resp.EmployeesProcessed++

		if s.rdb != nil {
			_ = s.rdb.Del(ctx, CacheKey(employeeID, year)).Err()
		}
	}

	s.logger.Info("populate balances success",
		zap.String("request_id", rid),
		zap.Int("year", year),
		zap.Int("employees_processed", resp.EmployeesProcessed),
		zap.Int("employees_skipped", resp.EmployeesSkipped),
		zap.Int("rows_upserted", resp.RowsUpserted),
	)
	return resp, nil
}

func (s *service) RequestPopulate(ctx context.Context, actor domain.Actor, year int) error {
	if !actor.IsPrivileged() {
		return apperror.ErrForbidden
	}
	if !validYear(year) {
		return balanceerrors.ErrInvalidYear
	}
	if s.outbox == nil {
		return apperror.New(apperror.CodeServiceUnavailable, "async population is not configured", http.StatusServiceUnavailable)
	}

	payload, err := json.Marshal(events.BalancePopulateRequestedEvent{
		EventType:   "leave_balance.populate_requested",
		Year:        year,
		RequestedBy: actor.UserID,
		OccurredAt:  s.clk.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_balance",
		AggregateID:   fmt.Sprintf("%d", year),
		EventType:     "leave_balance.populate_requested",
		Topic:         events.BalancePopulateRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("stage populate request failed", zap.Int("year", year), zap.Error(err))
		return err
	}

	s.logger.Info("populate request staged",
		zap.Int("year", year),
		zap.String("requested_by", actor.UserID),
	)
	return nil
}

// referenceDate picks the date assignments are resolved against: the
// current moment when populating the running year, January 1st of the
// target year otherwise.
func (s *service) referenceDate(year int) time.Time {
	now := s.clk.Now()
	if now.Year() == year {
		return now
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func validYear(year int) bool {
	return year >= 2000 && year <= 2100
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		LeaveTypeID:   b.LeaveTypeID.String(),
		Year:          b.Year,
		AllocatedDays: b.AllocatedDays.InexactFloat64(),
		UsedDays:      b.UsedDays.InexactFloat64(),
		RemainingDays: b.Remaining().InexactFloat64(),
	}
}
