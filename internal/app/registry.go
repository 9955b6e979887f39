package app

import (
	"database/sql"

	"out-of-office/internal/approval"
	"out-of-office/internal/config"
	"out-of-office/internal/employee"
	"out-of-office/internal/leave"
	"out-of-office/internal/messaging/kafka"
	"out-of-office/internal/metrics"
	"out-of-office/internal/middleware"
	"out-of-office/internal/project"
	"out-of-office/internal/rbac"
	"out-of-office/internal/rbac/infra"
	"out-of-office/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	m *metrics.Metrics,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath, cfg.RBAC.PolicyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Workflow components ---
	gate := validation.NewGate(validation.NewLookup(gormDB))
	ledger := approval.NewLedger(approvalRepo, gate)
	pendingCache := approval.NewPendingCache(rdb, cfg.PendingTTL)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, gate)
	projectService := project.NewService(db, projectRepo, gate)
	approvalService := approval.NewService(db, approvalRepo, ledger, pendingCache)
	leaveService := leave.NewServiceWithOutbox(
		db,
		leaveRepo,
		employeeRepo,
		ledger,
		gate,
		outboxRepo,
		pendingCache,
		m,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	projectHandler := project.NewHandler(projectService)
	leaveHandler := leave.NewHandler(leaveService)
	approvalHandler := approval.NewHandler(approvalService, leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(zap.L()),
	)
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		project.RegisterRoutes(api, projectHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb)
	}

	return nil
}
