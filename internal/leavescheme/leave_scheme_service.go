package leavescheme

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leavehub/internal/domain"
	leaveschemeerrors "go-leavehub/internal/leavescheme/errors"
)

//go:generate mockgen -source=leave_scheme_service.go -destination=mock/leave_scheme_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateLeaveSchemeRequest) (LeaveSchemeResponse, error)
	GetAll(ctx context.Context) ([]LeaveSchemeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveSchemeResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateLeaveSchemeRequest) (LeaveSchemeResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error

	AddLeaveType(ctx context.Context, actor domain.Actor, schemeID string, req AddSchemeLeaveTypeRequest) (LeaveSchemeResponse, error)
	UpdateLeaveType(ctx context.Context, actor domain.Actor, schemeID, leaveTypeID string, req UpdateSchemeLeaveTypeRequest) (LeaveSchemeResponse, error)
	RemoveLeaveType(ctx context.Context, actor domain.Actor, schemeID, leaveTypeID string) (LeaveSchemeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavescheme.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavescheme.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateLeaveSchemeRequest) (LeaveSchemeResponse, error) {
	s.logger.Debug("create leave scheme requested",
		zap.String("actor_id", actor.UserID),
		zap.String("name", req.Name),
	)

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveSchemeResponse{}, leaveschemeerrors.ErrInvalidActorID
	}

	scheme := &LeaveScheme{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		IsActive:  true,
		CreatedBy: actorUUID,
	}

	if err := s.repo.Create(ctx, scheme); err != nil {
		s.logger.Error("create leave scheme persist failed", zap.Error(err))
		return LeaveSchemeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave scheme success",
		zap.String("scheme_id", scheme.ID.String()),
	)
	return mapToResponse(*scheme), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveSchemeResponse, error) {
	schemes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveSchemeResponse, len(schemes))
	for i, scheme := range schemes {
		resp[i] = mapToResponse(scheme)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveSchemeResponse, error) {
	scheme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveSchemeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*scheme), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpdateLeaveSchemeRequest) (LeaveSchemeResponse, error) {
	scheme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveSchemeResponse{}, mapRepositoryError(err)
	}

	scheme.Name = strings.TrimSpace(req.Name)
	if req.IsActive != nil {
		scheme.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, scheme); err != nil {
		s.logger.Error("update leave scheme persist failed",
			zap.String("scheme_id", id),
			zap.Error(err),
		)
		return LeaveSchemeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update leave scheme success", zap.String("scheme_id", id))
	return mapToResponse(*scheme), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	assigned, err := s.repo.IsAssigned(ctx, id)
	if err != nil {
		return err
	}
	if assigned {
		s.logger.Warn("delete leave scheme rejected, still assigned",
			zap.String("scheme_id", id),
		)
		return leaveschemeerrors.ErrSchemeAssigned
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("delete leave scheme success",
		zap.String("scheme_id", id),
		zap.String("actor_id", actor.UserID),
	)
	return nil
}

func (s *service) AddLeaveType(ctx context.Context, actor domain.Actor, schemeID string, req AddSchemeLeaveTypeRequest) (LeaveSchemeResponse, error) {
	s.logger.Debug("add scheme leave type requested",
		zap.String("scheme_id", schemeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Float64("days_allowed", req.DaysAllowed),
	)

	scheme, err := s.repo.FindByID(ctx, schemeID)
	if err != nil {
		return LeaveSchemeResponse{}, mapRepositoryError(err)
	}

	active, err := s.repo.LeaveTypeActive(ctx, req.LeaveTypeID)
	if err != nil {
		return LeaveSchemeResponse{}, err
	}
	if !active {
		return LeaveSchemeResponse{}, leaveschemeerrors.ErrLeaveTypeUnknown
	}

	slt := &SchemeLeaveType{
		ID:          uuid.New(),
		SchemeID:    scheme.ID,
		LeaveTypeID: uuid.MustParse(req.LeaveTypeID),
		DaysAllowed: decimal.NewFromFloat(req.DaysAllowed),
		IsPaid:      req.IsPaid,
	}

	if err := s.repo.AddLeaveType(ctx, slt); err != nil {
		s.logger.Error("add scheme leave type persist failed",
			zap.String("scheme_id", schemeID),
			zap.Error(err),
		)
		return LeaveSchemeResponse{}, mapPairError(err)
	}

	s.logger.Info("add scheme leave type success",
		zap.String("scheme_id", schemeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)
	return s.GetByID(ctx, schemeID)
}

func (s *service) UpdateLeaveType(ctx context.Context, actor domain.Actor, schemeID, leaveTypeID string, req UpdateSchemeLeaveTypeRequest) (LeaveSchemeResponse, error) {
	slt, err := s.repo.FindSchemeLeaveType(ctx, schemeID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveSchemeResponse{}, leaveschemeerrors.ErrSchemeLeaveTypeNotFound
		}
		return LeaveSchemeResponse{}, err
	}

	slt.DaysAllowed = decimal.NewFromFloat(req.DaysAllowed)
	slt.IsPaid = req.IsPaid

	if err := s.repo.UpdateSchemeLeaveType(ctx, slt); err != nil {
		s.logger.Error("update scheme leave type persist failed",
			zap.String("scheme_id", schemeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Error(err),
		)
		return LeaveSchemeResponse{}, err
	}

	s.logger.Info("update scheme leave type success",
		zap.String("scheme_id", schemeID),
		zap.String("leave_type_id", leaveTypeID),
	)
	return s.GetByID(ctx, schemeID)
}

func (s *service) RemoveLeaveType(ctx context.Context, actor domain.Actor, schemeID, leaveTypeID string) (LeaveSchemeResponse, error) {
	if _, err := s.repo.FindSchemeLeaveType(ctx, schemeID, leaveTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveSchemeResponse{}, leaveschemeerrors.ErrSchemeLeaveTypeNotFound
		}
		return LeaveSchemeResponse{}, err
	}

	if err := s.repo.RemoveLeaveType(ctx, schemeID, leaveTypeID); err != nil {
		return LeaveSchemeResponse{}, err
	}

	s.logger.Info("remove scheme leave type success",
		zap.String("scheme_id", schemeID),
		zap.String("leave_type_id", leaveTypeID),
	)
	return s.GetByID(ctx, schemeID)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveschemeerrors.ErrSchemeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leaveschemeerrors.ErrSchemeNameExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return leaveschemeerrors.ErrSchemeNameExists
	}

	return err
}

// mapPairError maps the unique (scheme_id, leave_type_id) violation.
func mapPairError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leaveschemeerrors.ErrSchemeLeaveTypeExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return leaveschemeerrors.ErrSchemeLeaveTypeExists
	}

	return err
}

func mapToResponse(s LeaveScheme) LeaveSchemeResponse {
	resp := LeaveSchemeResponse{
		ID:       s.ID.String(),
		Name:     s.Name,
		IsActive: s.IsActive,
	}
	for _, slt := range s.LeaveTypes {
		item := SchemeLeaveTypeResponse{
			LeaveTypeID: slt.LeaveTypeID.String(),
			DaysAllowed: slt.DaysAllowed.InexactFloat64(),
		}
		if slt.LeaveType != nil {
			item.LeaveTypeName = slt.LeaveType.Name
			item.LeaveTypeCode = slt.LeaveType.Code
			item.IsPaid = slt.LeaveType.IsPaid
		}
		if slt.IsPaid != nil {
			item.IsPaid = *slt.IsPaid
		}
		resp.LeaveTypes = append(resp.LeaveTypes, item)
	}
	return resp
}
