package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-leavehub/internal/employee"
	"go-leavehub/internal/leaveapplication"
	"go-leavehub/internal/leavebalance"
	"go-leavehub/internal/leavescheme"
	"go-leavehub/internal/leavetype"
	"go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"
	"go-leavehub/internal/schemeassignment"
	"go-leavehub/internal/shared/clock"
	"go-leavehub/internal/shared/counter"
	"go-leavehub/internal/workingdays"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveSchemeRepo := leavescheme.NewRepository(gormDB)
	assignmentRepo := schemeassignment.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(db)
	applicationRepo := leaveapplication.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	counterRepo := counter.NewRepository(gormDB)
	directory := employee.NewDirectory(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	sysClock := clock.System()
	calculator := workingdays.NewCalculator()

	// --- Services ---
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveSchemeService := leavescheme.NewService(leaveSchemeRepo)
	assignmentService := schemeassignment.NewService(assignmentRepo, directory, sysClock)
	balanceService := leavebalance.NewServiceWithOutbox(balanceRepo, assignmentRepo, directory, sysClock, rdb, outboxRepo)
	applicationService := leaveapplication.NewService(
		db,
		applicationRepo,
		balanceRepo,
		outboxRepo,
		assignmentRepo,
		directory,
		counterRepo,
		calculator,
		sysClock,
		rdb,
	)

	// --- Handlers ---
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveSchemeHandler := leavescheme.NewHandler(leaveSchemeService)
	assignmentHandler := schemeassignment.NewHandler(assignmentService)
	balanceHandler := leavebalance.NewHandler(balanceService)
	applicationHandler := leaveapplication.NewHandlerWithRedis(applicationService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leavescheme.RegisterRoutes(api, leaveSchemeHandler, rbacService)
		schemeassignment.RegisterRoutes(api, assignmentHandler, rbacService)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService)
		leaveapplication.RegisterRoutes(api, applicationHandler, rbacService, middleware.Idempotency(rdb))
	}

	return nil
}
