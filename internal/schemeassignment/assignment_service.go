package schemeassignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leavehub/internal/domain"
	"go-leavehub/internal/employee"
	assignmenterrors "go-leavehub/internal/schemeassignment/errors"
	"go-leavehub/internal/shared/clock"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateAssignmentRequest) (AssignmentResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AssignmentResponse, error)
	GetCurrent(ctx context.Context, employeeID string, asOf *time.Time) (*AssignmentResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateAssignmentRequest) (AssignmentResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	repo      Repository
	directory employee.Directory
	clk       clock.Clock
	logger    *zap.Logger
}

func NewService(repo Repository, directory employee.Directory, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("schemeassignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schemeassignment.service")
	}
	return &service{repo: repo, directory: directory, clk: clk, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateAssignmentRequest) (AssignmentResponse, error) {
	s.logger.Debug("create assignment requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("scheme_id", req.SchemeID),
	)

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidActorID
	}

	from, to, err := parseInterval(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return AssignmentResponse{}, err
	}

	exists, err := s.directory.ExistsByID(ctx, req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !exists {
		return AssignmentResponse{}, assignmenterrors.ErrEmployeeUnknown
	}

	active, err := s.repo.SchemeActive(ctx, req.SchemeID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !active {
		return AssignmentResponse{}, assignmenterrors.ErrSchemeUnknown
	}

	overlap, err := s.repo.HasOverlap(ctx, req.EmployeeID, from, to, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if overlap {
		s.logger.Warn("create assignment overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("effective_from", req.EffectiveFrom),
		)
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentOverlap
	}

	a := &EmployeeLeaveScheme{
		ID:            uuid.New(),
		EmployeeID:    uuid.MustParse(req.EmployeeID),
		SchemeID:      uuid.MustParse(req.SchemeID),
		EffectiveFrom: from,
		EffectiveTo:   to,
		CreatedBy:     actorUUID,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create assignment persist failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.logger.Info("create assignment success",
		zap.String("assignment_id", a.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*a), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

// GetCurrent returns nil when no interval covers the date; callers
// treat that as a legitimate unassigned state.
func (s *service) GetCurrent(ctx context.Context, employeeID string, asOf *time.Time) (*AssignmentResponse, error) {
	at := s.clk.Now()
	if asOf != nil {
		at = *asOf
	}

	a, err := s.repo.FindCurrent(ctx, employeeID, at)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	resp := mapToResponse(*a)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpdateAssignmentRequest) (AssignmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}

	from, to, err := parseInterval(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return AssignmentResponse{}, err
	}

	active, err := s.repo.SchemeActive(ctx, req.SchemeID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !active {
		return AssignmentResponse{}, assignmenterrors.ErrSchemeUnknown
	}

	excludeID := a.ID.String()
	overlap, err := s.repo.HasOverlap(ctx, a.EmployeeID.String(), from, to, &excludeID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if overlap {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentOverlap
	}

	a.SchemeID = uuid.MustParse(req.SchemeID)
	a.EffectiveFrom = from
	a.EffectiveTo = to

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("update assignment persist failed",
			zap.String("assignment_id", id),
			zap.Error(err),
		)
		return AssignmentResponse{}, err
	}

	s.logger.Info("update assignment success", zap.String("assignment_id", id))
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return assignmenterrors.ErrAssignmentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("delete assignment success",
		zap.String("assignment_id", id),
		zap.String("actor_id", actor.UserID),
	)
	return nil
}

func parseInterval(fromStr string, toStr *string) (time.Time, *time.Time, error) {
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, nil, assignmenterrors.ErrInvalidDateFormat
	}

	var to *time.Time
	if toStr != nil && *toStr != "" {
		parsed, err := time.Parse("2006-01-02", *toStr)
		if err != nil {
			return time.Time{}, nil, assignmenterrors.ErrInvalidDateFormat
		}
		if from.After(parsed) {
			return time.Time{}, nil, assignmenterrors.ErrInvalidDateRange
		}
		to = &parsed
	}

	return from, to, nil
}

func mapToResponse(a EmployeeLeaveScheme) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		SchemeID:      a.SchemeID.String(),
		EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
	}
	if a.EffectiveTo != nil {
		v := a.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	return resp
}
