package leaveapplication

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-leavehub/internal/domain"
	"go-leavehub/internal/employee"
	"go-leavehub/internal/events"
	applicationerrors "go-leavehub/internal/leaveapplication/errors"
	"go-leavehub/internal/leavebalance"
	"go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/schemeassignment"
	"go-leavehub/internal/shared/apperror"
	"go-leavehub/internal/shared/clock"
	"go-leavehub/internal/shared/contextutil"
	"go-leavehub/internal/shared/counter"
	"go-leavehub/internal/workingdays"
)

const applicationCounterType = "leave_application"

//go:generate mockgen -source=application_service.go -destination=mock/application_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateApplicationRequest) (ApplicationResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, statusFilter *string) ([]ApplicationResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (ApplicationResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateApplicationRequest) (ApplicationResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, req UpdateStatusRequest) (ApplicationResponse, error)
	Cancel(ctx context.Context, actor domain.Actor, id string, comments *string) (ApplicationResponse, error)
	Remove(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	balances  leavebalance.Repository
	outbox    kafka.OutboxRepository
	resolver  schemeassignment.Repository
	directory employee.Directory
	counters  counter.Repository
	calc      workingdays.Calculator
	clk       clock.Clock
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances leavebalance.Repository,
	outbox kafka.OutboxRepository,
	resolver schemeassignment.Repository,
	directory employee.Directory,
	counters counter.Repository,
	calc workingdays.Calculator,
	clk clock.Clock,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaveapplication.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaveapplication.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		balances:  balances,
		outbox:    outbox,
		resolver:  resolver,
		directory: directory,
		counters:  counters,
		calc:      calc,
		clk:       clk,
		rdb:       rdb,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateApplicationRequest) (ApplicationResponse, error) {
	s.logger.Debug("create application requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	if !actor.IsPrivileged() && !actor.Owns(req.EmployeeID) {
		return ApplicationResponse{}, applicationerrors.ErrNotApplicationOwner
	}

	createdBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidActorID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ApplicationResponse{}, apperror.InvalidField("employee_id")
	}
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return ApplicationResponse{}, apperror.InvalidField("leave_type_id")
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return ApplicationResponse{}, err
	}

	exists, err := s.directory.ExistsByID(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create application employee lookup failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	if !exists {
		return ApplicationResponse{}, applicationerrors.ErrEmployeeUnknown
	}

	durationType := workingdays.DurationType(req.DurationType)
	workingDays, err := s.calc.WorkingDays(startDate, endDate, durationType)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if !workingDays.IsPositive() {
		return ApplicationResponse{}, applicationerrors.ErrNoWorkingDays
	}

	if err := s.checkSchemeCoverage(ctx, req.EmployeeID, req.LeaveTypeID, startDate); err != nil {
		return ApplicationResponse{}, err
	}

	seq, err := s.counters.GetNextValue(ctx, applicationCounterType)
	if err != nil {
		s.logger.Error("create application counter failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	a := &LeaveApplication{
		ID:                uuid.New(),
		ApplicationNumber: fmt.Sprintf("LV-%06d", seq),
		EmployeeID:        employeeID,
		LeaveTypeID:       leaveTypeID,
		StartDate:         startDate,
		EndDate:           endDate,
		DurationType:      durationType,
		WorkingDays:       workingDays,
		Reason:            req.Reason,
		AttachmentURL:     req.AttachmentURL,
		Status:            StatusPending,
		CreatedBy:         createdBy,
		CreatedAt:         s.clk.Now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create application persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	if err := s.stageStatusEvent(ctx, tx, a, actor, "leave_application.created"); err != nil {
		s.logger.Error("create application stage event failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create application commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.logger.Info("create application success",
		zap.String("application_id", a.ID.String()),
		zap.String("application_number", a.ApplicationNumber),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, statusFilter *string) ([]ApplicationResponse, error) {
	var status *string
	if statusFilter != nil && *statusFilter != "" {
		normalized := normalizeStatus(*statusFilter)
		if normalized == "" {
			// An unrecognized filter matches nothing rather than
			// silently returning everything.
			return []ApplicationResponse{}, nil
		}
		status = &normalized
	}

	var (
		apps []LeaveApplication
		err  error
	)
	if actor.IsPrivileged() {
		apps, err = s.repo.FindAll(ctx, status)
	} else {
		apps, err = s.repo.FindAllByEmployee(ctx, actor.EmployeeID, status)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]ApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (ApplicationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidApplicationID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}

	if !actor.IsPrivileged() && !actor.Owns(a.EmployeeID.String()) {
		return ApplicationResponse{}, applicationerrors.ErrNotApplicationOwner
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpdateApplicationRequest) (ApplicationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidApplicationID
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return ApplicationResponse{}, err
	}

	durationType := workingdays.DurationType(req.DurationType)
	workingDays, err := s.calc.WorkingDays(startDate, endDate, durationType)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if !workingDays.IsPositive() {
		return ApplicationResponse{}, applicationerrors.ErrNoWorkingDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}

	if !actor.IsPrivileged() && !actor.Owns(a.EmployeeID.String()) {
		return ApplicationResponse{}, applicationerrors.ErrNotApplicationOwner
	}
	if a.Status != StatusPending {
		return ApplicationResponse{}, applicationerrors.ErrPendingOnlyEdit
	}

	// The scheme in force can differ when the dates move.
	if err := s.checkSchemeCoverage(ctx, a.EmployeeID.String(), a.LeaveTypeID.String(), startDate); err != nil {
		return ApplicationResponse{}, err
	}

	a.StartDate = startDate
	a.EndDate = endDate
	a.DurationType = durationType
	a.WorkingDays = workingDays
	a.Reason = req.Reason
	a.AttachmentURL = req.AttachmentURL

	if err := qtx.UpdateDetails(ctx, a); err != nil {
		s.logger.Error("update application persist failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update application commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.logger.Info("update application success", zap.String("application_id", id))
	return mapToResponse(*a), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor domain.Actor, id string, req UpdateStatusRequest) (ApplicationResponse, error) {
	target := normalizeStatus(req.Status)
	if target == "" {
		return ApplicationResponse{}, applicationerrors.ErrUnknownStatus
	}
	return s.transition(ctx, actor, id, target, req.Comments)
}

func (s *service) Cancel(ctx context.Context, actor domain.Actor, id string, comments *string) (ApplicationResponse, error) {
	return s.transition(ctx, actor, id, StatusCancelled, comments)
}

func (s *service) transition(ctx context.Context, actor domain.Actor, id, target string, comments *string) (ApplicationResponse, error) {
	s.logger.Debug("transition application requested",
		zap.String("application_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", target),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidApplicationID
	}
	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}

	switch target {
	case StatusApproved, StatusRejected:
		if !actor.IsPrivileged() {
			return ApplicationResponse{}, apperror.ErrForbidden
		}
	case StatusCancelled:
		if !actor.IsPrivileged() && !actor.Owns(a.EmployeeID.String()) {
			return ApplicationResponse{}, applicationerrors.ErrNotApplicationOwner
		}
	default:
		return ApplicationResponse{}, applicationerrors.ErrUnknownStatus
	}

	if !allowedTransition(a.Status, target) {
		s.logger.Warn("transition application invalid",
			zap.String("application_id", id),
			zap.String("from_status", a.Status),
			zap.String("to_status", target),
		)
		return ApplicationResponse{}, applicationerrors.ErrInvalidStateTransition
	}

	year := a.StartDate.Year()
	ledgerTouched := false

	switch {
	case target == StatusApproved:
		// The deduction and the status write commit or roll back
		// together. InsufficientBalance aborts here and the row stays
		// pending.
		err = s.balances.WithTx(tx).Deduct(ctx, a.EmployeeID.String(), a.LeaveTypeID.String(), year, a.WorkingDays)
		if err != nil {
			s.logger.Warn("transition application deduct failed",
				zap.String("application_id", id),
				zap.Error(err),
			)
			return ApplicationResponse{}, err
		}
		a.ApprovedBy = &actorID
		ledgerTouched = true

	case a.Status == StatusApproved && target == StatusCancelled:
		err = s.balances.WithTx(tx).Restore(ctx, a.EmployeeID.String(), a.LeaveTypeID.String(), year, a.WorkingDays)
		if err != nil {
			s.logger.Error("transition application restore failed",
				zap.String("application_id", id),
				zap.Error(err),
			)
			return ApplicationResponse{}, err
		}
		ledgerTouched = true
	}

	a.Status = target
	if comments != nil {
		a.Comments = comments
	}

	if err := qtx.UpdateStatus(ctx, a); err != nil {
		s.logger.Error("transition application persist failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}

	if err := s.stageStatusEvent(ctx, tx, a, actor, "leave_application."+target); err != nil {
		s.logger.Error("transition application stage event failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition application commit failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}

	if ledgerTouched {
		s.invalidateBalanceCache(ctx, a.EmployeeID.String(), year)
	}

	s.logger.Info("transition application success",
		zap.String("application_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*a), nil
}

func (s *service) Remove(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsPrivileged() {
		return apperror.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return applicationerrors.ErrInvalidApplicationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove application begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return applicationerrors.ErrApplicationNotFound
		}
		return err
	}

	year := a.StartDate.Year()
	ledgerTouched := false

	// Deleting an approved application without restoring would leak
	// the deducted days forever.
	if a.Status == StatusApproved {
		err = s.balances.WithTx(tx).Restore(ctx, a.EmployeeID.String(), a.LeaveTypeID.String(), year, a.WorkingDays)
		if err != nil {
			s.logger.Error("remove application restore failed",
				zap.String("application_id", id),
				zap.Error(err),
			)
			return err
		}
		ledgerTouched = true
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("remove application delete failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := s.stageStatusEvent(ctx, tx, a, actor, "leave_application.deleted"); err != nil {
		s.logger.Error("remove application stage event failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove application commit failed", zap.Error(err))
		return err
	}

	if ledgerTouched {
		s.invalidateBalanceCache(ctx, a.EmployeeID.String(), year)
	}

	s.logger.Info("remove application success", zap.String("application_id", id))
	return nil
}

// allowedTransition encodes the lifecycle: pending fans out to
// approved, rejected or cancelled; approved may only be cancelled;
// rejected and cancelled are terminal.
func allowedTransition(current, target string) bool {
	switch current {
	case StatusPending:
		return target == StatusApproved || target == StatusRejected || target == StatusCancelled
	case StatusApproved:
		return target == StatusCancelled
	default:
		return false
	}
}

func (s *service) checkSchemeCoverage(ctx context.Context, employeeID, leaveTypeID string, asOf time.Time) error {
	assignment, err := s.resolver.FindCurrent(ctx, employeeID, asOf)
	if err != nil {
		s.logger.Error("scheme resolution failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}
	if assignment == nil {
		return applicationerrors.ErrNoSchemeAssigned
	}

	covered, err := s.repo.LeaveTypeInScheme(ctx, assignment.SchemeID.String(), leaveTypeID)
	if err != nil {
		return err
	}
	if !covered {
		return applicationerrors.ErrLeaveTypeNotInScheme
	}
	return nil
}

func (s *service) stageStatusEvent(ctx context.Context, tx *sql.Tx, a *LeaveApplication, actor domain.Actor, eventType string) error {
	workingDays, _ := a.WorkingDays.Float64()
	payload, err := json.Marshal(events.LeaveApplicationStatusEvent{
		EventType:         eventType,
		ApplicationID:     a.ID.String(),
		ApplicationNumber: a.ApplicationNumber,
		EmployeeID:        a.EmployeeID.String(),
		LeaveTypeID:       a.LeaveTypeID.String(),
		Status:            a.Status,
		WorkingDays:       workingDays,
		ActedBy:           actor.UserID,
		OccurredAt:        s.clk.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_application",
		AggregateID:   a.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveApplicationStatusTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateBalanceCache(ctx context.Context, employeeID string, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, leavebalance.CacheKey(employeeID, year)).Err(); err != nil {
		s.logger.Warn("invalidate balance cache failed",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Error(err),
		)
	}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, applicationerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, applicationerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, applicationerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func mapToResponse(a LeaveApplication) ApplicationResponse {
	workingDays, _ := a.WorkingDays.Float64()
	resp := ApplicationResponse{
		ID:                a.ID.String(),
		ApplicationNumber: a.ApplicationNumber,
		EmployeeID:        a.EmployeeID.String(),
		LeaveTypeID:       a.LeaveTypeID.String(),
		StartDate:         a.StartDate.Format("2006-01-02"),
		EndDate:           a.EndDate.Format("2006-01-02"),
		DurationType:      string(a.DurationType),
		WorkingDays:       workingDays,
		Reason:            a.Reason,
		AttachmentURL:     a.AttachmentURL,
		Comments:          a.Comments,
		Status:            a.Status,
		CreatedBy:         a.CreatedBy.String(),
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
	if a.ApprovedBy != nil {
		v := a.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}
