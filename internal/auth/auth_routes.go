package auth

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/1000bang/vacation-api-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), handler.Login)
	}
}
