package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/1000bang/vacation-api-sub001/internal/alarm"
	"github.com/1000bang/vacation-api-sub001/internal/application"
	"github.com/1000bang/vacation-api-sub001/internal/approval"
	"github.com/1000bang/vacation-api-sub001/internal/auth"
	"github.com/1000bang/vacation-api-sub001/internal/messaging/kafka"
	"github.com/1000bang/vacation-api-sub001/internal/rbac"
	"github.com/1000bang/vacation-api-sub001/internal/rbac/infra"
	"github.com/1000bang/vacation-api-sub001/internal/rejection"
	"github.com/1000bang/vacation-api-sub001/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	applicationRepo := application.NewRepository(gormDB)
	recordStores := application.NewRegistry(db)
	rejectionRepo := rejection.NewRepository(db)
	alarmRepo := alarm.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo)
	applicationService := application.NewService(applicationRepo)
	rejectionService := rejection.NewService(rejectionRepo, recordStores)
	alarmService := alarm.NewService(alarmRepo, rdb)
	approvalEngine := approval.NewEngine(db, recordStores, rejectionRepo, alarmRepo, userRepo, outboxRepo, alarmService)
	pendingAggregator := approval.NewAggregator(applicationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	applicationHandler := application.NewHandler(applicationService)
	rejectionHandler := rejection.NewHandler(rejectionService)
	alarmHandler := alarm.NewHandler(alarmService)
	approvalHandler := approval.NewHandler(approvalEngine, pendingAggregator)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		application.RegisterRoutes(api, applicationHandler, rdb)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb)
		rejection.RegisterRoutes(api, rejectionHandler)
		alarm.RegisterRoutes(api, alarmHandler)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
