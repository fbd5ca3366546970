package application

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/1000bang/vacation-api-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	apps := r.Group("/applications")
	apps.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		apps.POST("/:type", middleware.Idempotency(rdb), handler.Create)
		apps.GET("/:type", handler.ListMine)
		apps.GET("/:type/:seq", handler.Get)
	}
}
