package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/middleware"
	"github.com/1000bang/vacation-api-sub001/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers every module's
// routes on the router. The gorm handle serves read-side repositories;
// the raw *sql.DB underneath it carries the workflow transactions.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	zap.L().Info("infrastructure connected")

	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	return registerModules(router, sqlDB, gormDB, redisClient)
}
