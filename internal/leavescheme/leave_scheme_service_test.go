package leavescheme_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-leavehub/internal/domain"
	"go-leavehub/internal/leavescheme"
	leaveschemeerrors "go-leavehub/internal/leavescheme/errors"
	"go-leavehub/internal/leavetype"
)

type fakeLeaveSchemeRepository struct {
	created []leavescheme.LeaveScheme
	updated []leavescheme.LeaveScheme
	deleted []string
	added   []leavescheme.SchemeLeaveType
	removed [][2]string

	createFn              func(ctx context.Context, s *leavescheme.LeaveScheme) error
	findByIDFn            func(ctx context.Context, id string) (*leavescheme.LeaveScheme, error)
	isAssignedFn          func(ctx context.Context, schemeID string) (bool, error)
	leaveTypeActiveFn     func(ctx context.Context, leaveTypeID string) (bool, error)
	addLeaveTypeFn        func(ctx context.Context, slt *leavescheme.SchemeLeaveType) error
	findSchemeLeaveTypeFn func(ctx context.Context, schemeID, leaveTypeID string) (*leavescheme.SchemeLeaveType, error)
}

func (f *fakeLeaveSchemeRepository) Create(ctx context.Context, s *leavescheme.LeaveScheme) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, s); err != nil {
			return err
		}
	}
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeLeaveSchemeRepository) FindAll(ctx context.Context) ([]leavescheme.LeaveScheme, error) {
	return nil, nil
}

func (f *fakeLeaveSchemeRepository) FindByID(ctx context.Context, id string) (*leavescheme.LeaveScheme, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveSchemeRepository) Update(ctx context.Context, s *leavescheme.LeaveScheme) error {
	f.updated = append(f.updated, *s)
	return nil
}

func (f *fakeLeaveSchemeRepository) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeLeaveSchemeRepository) IsAssigned(ctx context.Context, schemeID string) (bool, error) {
	if f.isAssignedFn != nil {
		return f.isAssignedFn(ctx, schemeID)
	}
	return false, nil
}

func (f *fakeLeaveSchemeRepository) LeaveTypeActive(ctx context.Context, leaveTypeID string) (bool, error) {
	if f.leaveTypeActiveFn != nil {
		return f.leaveTypeActiveFn(ctx, leaveTypeID)
	}
	return true, nil
}

func (f *fakeLeaveSchemeRepository) AddLeaveType(ctx context.Context, slt *leavescheme.SchemeLeaveType) error {
	if f.addLeaveTypeFn != nil {
		if err := f.addLeaveTypeFn(ctx, slt); err != nil {
			return err
		}
	}
	f.added = append(f.added, *slt)
	return nil
}

func (f *fakeLeaveSchemeRepository) FindSchemeLeaveType(ctx context.Context, schemeID, leaveTypeID string) (*leavescheme.SchemeLeaveType, error) {
	if f.findSchemeLeaveTypeFn != nil {
		return f.findSchemeLeaveTypeFn(ctx, schemeID, leaveTypeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveSchemeRepository) UpdateSchemeLeaveType(ctx context.Context, slt *leavescheme.SchemeLeaveType) error {
	return nil
}

func (f *fakeLeaveSchemeRepository) RemoveLeaveType(ctx context.Context, schemeID, leaveTypeID string) error {
	f.removed = append(f.removed, [2]string{schemeID, leaveTypeID})
	return nil
}

func hrActor() domain.Actor {
	return domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHR}
}

func TestLeaveSchemeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success trims the name", func(t *testing.T) {
		repo := &fakeLeaveSchemeRepository{}
		svc := leavescheme.NewService(repo)

		resp, err := svc.Create(ctx, hrActor(), leavescheme.CreateLeaveSchemeRequest{Name: " Standard Plan "})

		assert.NoError(t, err)
		assert.Equal(t, "Standard Plan", resp.Name)
		assert.True(t, resp.IsActive)
		assert.Len(t, repo.created, 1)
	})

	t.Run("negative duplicate name maps the unique violation", func(t *testing.T) {
		repo := &fakeLeaveSchemeRepository{
			createFn: func(ctx context.Context, s *leavescheme.LeaveScheme) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := leavescheme.NewService(repo)

		_, err := svc.Create(ctx, hrActor(), leavescheme.CreateLeaveSchemeRequest{Name: "Standard Plan"})

		assert.ErrorIs(t, err, leaveschemeerrors.ErrSchemeNameExists)
	})
}

func TestLeaveSchemeService_Delete(t *testing.T) {
	ctx := context.Background()

	scheme := func() *leavescheme.LeaveScheme {
		return &leavescheme.LeaveScheme{ID: uuid.New(), Name: "Standard Plan", IsActive: true}
	}

	t.Run("success unassigned scheme is removed", func(t *testing.T) {
		s := scheme()
		repo := &fakeLeaveSchemeRepository{
			findByIDFn: func(ctx context.Context, id string) (*leavescheme.LeaveScheme, error) {
				return s, nil
			},
		}
		svc := leavescheme.NewService(repo)

		err := svc.Delete(ctx, hrActor(), s.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, []string{s.ID.String()}, repo.deleted)
	})

	t.Run("negative assigned scheme is protected", func(t *testing.T) {
		s := scheme()
		repo := &fakeLeaveSchemeRepository{
			findByIDFn: func(ctx context.Context, id string) (*leavescheme.LeaveScheme, error) {
				return s, nil
			},
			isAssignedFn: func(ctx context.Context, schemeID string) (bool, error) {
				return true, nil
			},
		}
		svc := leavescheme.NewService(repo)

		err := svc.Delete(ctx, hrActor(), s.ID.String())

		assert.ErrorIs(t, err, leaveschemeerrors.ErrSchemeAssigned)
		assert.Empty(t, repo.deleted)
	})

	t.Run("negative unknown scheme", func(t *testing.T) {
		svc := leavescheme.NewService(&fakeLeaveSchemeRepository{})

		err := svc.Delete(ctx, hrActor(), uuid.New().String())

		assert.ErrorIs(t, err, leaveschemeerrors.ErrSchemeNotFound)
	})
}

func TestLeaveSchemeService_AddLeaveType(t *testing.T) {
	ctx := context.Background()
	leaveTypeID := uuid.New()

	schemeWith := func(types ...leavescheme.SchemeLeaveType) *leavescheme.LeaveScheme {
		return &leavescheme.LeaveScheme{
			ID:         uuid.New(),
			Name:       "Standard Plan",
			IsActive:   true,
			LeaveTypes: types,
		}
	}

	t.Run("success attaches the type with its allotment", func(t *testing.T) {
		s := schemeWith()
		repo := &fakeLeaveSchemeRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*leavescheme.LeaveScheme, error) {
			if len(repo.added) > 0 {
				return schemeWith(leavescheme.SchemeLeaveType{
					SchemeID:    s.ID,
					LeaveTypeID: leaveTypeID,
					DaysAllowed: decimal.NewFromFloat(12),
					LeaveType:   &leavetype.LeaveType{Name: "Casual Leave", Code: "CL", IsPaid: true},
				}), nil
			}
			return s, nil
		}
		svc := leavescheme.NewService(repo)

		resp, err := svc.AddLeaveType(ctx, hrActor(), s.ID.String(), leavescheme.AddSchemeLeaveTypeRequest{
			LeaveTypeID: leaveTypeID.String(),
			DaysAllowed: 12,
		})

		assert.NoError(t, err)
		assert.Len(t, repo.added, 1)
		assert.True(t, decimal.NewFromFloat(12).Equal(repo.added[0].DaysAllowed))
		if assert.Len(t, resp.LeaveTypes, 1) {
			assert.Equal(t, leaveTypeID.String(), resp.LeaveTypes[0].LeaveTypeID)
			assert.Equal(t, float64(12), resp.LeaveTypes[0].DaysAllowed)
			assert.Equal(t, "CL", resp.LeaveTypes[0].LeaveTypeCode)
		}
	})

	t.Run("negative inactive leave type", func(t *testing.T) {
		s := schemeWith()
		repo := &fakeLeaveSchemeRepository{
			findByIDFn: func(ctx context.Context, id string) (*leavescheme.LeaveScheme, error) {
				return s, nil
			},
			leaveTypeActiveFn: func(ctx context.Context, id string) (bool, error) {
				return false, nil
			},
		}
		svc := leavescheme.NewService(repo)

		_, err := svc.AddLeaveType(ctx, hrActor(), s.ID.String(), leavescheme.AddSchemeLeaveTypeRequest{
			LeaveTypeID: leaveTypeID.String(),
			DaysAllowed: 12,
		})

		assert.ErrorIs(t, err, leaveschemeerrors.ErrLeaveTypeUnknown)
		assert.Empty(t, repo.added)
	})

	t.Run("negative duplicate pair maps the unique violation", func(t *testing.T) {
		s := schemeWith()
		repo := &fakeLeaveSchemeRepository{
			findByIDFn: func(ctx context.Context, id string) (*leavescheme.LeaveScheme, error) {
				return s, nil
			},
			addLeaveTypeFn: func(ctx context.Context, slt *leavescheme.SchemeLeaveType) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := leavescheme.NewService(repo)

		_, err := svc.AddLeaveType(ctx, hrActor(), s.ID.String(), leavescheme.AddSchemeLeaveTypeRequest{
			LeaveTypeID: leaveTypeID.String(),
			DaysAllowed: 12,
		})

		assert.ErrorIs(t, err, leaveschemeerrors.ErrSchemeLeaveTypeExists)
	})
}

func TestLeaveSchemeService_RemoveLeaveType(t *testing.T) {
	ctx := context.Background()
	schemeID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success detaches the pair", func(t *testing.T) {
		repo := &fakeLeaveSchemeRepository{
			findByIDFn: func(ctx context.Context, id string) (*leavescheme.LeaveScheme, error) {
				return &leavescheme.LeaveScheme{ID: schemeID, Name: "Standard Plan", IsActive: true}, nil
			},
			findSchemeLeaveTypeFn: func(ctx context.Context, sid, ltid string) (*leavescheme.SchemeLeaveType, error) {
				return &leavescheme.SchemeLeaveType{SchemeID: schemeID, LeaveTypeID: leaveTypeID}, nil
			},
		}
		svc := leavescheme.NewService(repo)

		_, err := svc.RemoveLeaveType(ctx, hrActor(), schemeID.String(), leaveTypeID.String())

		assert.NoError(t, err)
		assert.Equal(t, [][2]string{{schemeID.String(), leaveTypeID.String()}}, repo.removed)
	})

	t.Run("negative pair not attached", func(t *testing.T) {
		svc := leavescheme.NewService(&fakeLeaveSchemeRepository{})

		_, err := svc.RemoveLeaveType(ctx, hrActor(), schemeID.String(), leaveTypeID.String())

		assert.ErrorIs(t, err, leaveschemeerrors.ErrSchemeLeaveTypeNotFound)
	})
}
