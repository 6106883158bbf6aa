package leavetype

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leavehub/internal/domain"
	leavetypeerrors "go-leavehub/internal/leavetype/errors"
)

//go:generate mockgen -source=leave_type_service.go -destination=mock/leave_type_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, actor domain.Actor, id string) (LeaveTypeResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("actor_id", actor.UserID),
		zap.String("code", req.Code),
	)

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidActorID
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	lt := &LeaveType{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		MaxDays:   req.MaxDays,
		Color:     req.Color,
		IsPaid:    isPaid,
		IsActive:  true,
		CreatedBy: actorUUID,
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("code", lt.Code),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("update leave type requested",
		zap.String("leave_type_id", id),
		zap.String("actor_id", actor.UserID),
	)

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	lt.Name = strings.TrimSpace(req.Name)
	lt.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	lt.MaxDays = req.MaxDays
	lt.Color = req.Color
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}

	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update leave type success", zap.String("leave_type_id", id))
	return mapToResponse(*lt), nil
}

func (s *service) Deactivate(ctx context.Context, actor domain.Actor, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	lt.IsActive = false
	if err := s.repo.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("deactivate leave type success",
		zap.String("leave_type_id", id),
		zap.String("actor_id", actor.UserID),
	)
	return mapToResponse(*lt), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	inUse, err := s.repo.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		s.logger.Warn("delete leave type rejected, still in use",
			zap.String("leave_type_id", id),
		)
		return leavetypeerrors.ErrLeaveTypeInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("delete leave type success",
		zap.String("leave_type_id", id),
		zap.String("actor_id", actor.UserID),
	)
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leavetypeerrors.ErrLeaveTypeCodeExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return leavetypeerrors.ErrLeaveTypeCodeExists
	}

	return err
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:       lt.ID.String(),
		Name:     lt.Name,
		Code:     lt.Code,
		MaxDays:  lt.MaxDays,
		Color:    lt.Color,
		IsPaid:   lt.IsPaid,
		IsActive: lt.IsActive,
	}
}
