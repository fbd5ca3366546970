package rejection

import (
	"github.com/gin-gonic/gin"

	"github.com/1000bang/vacation-api-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	rejections := r.Group("/rejections")
	rejections.Use(middleware.AuthMiddleware())
	{
		rejections.GET("/:type/:seq", handler.History)
		rejections.GET("/:type/:seq/latest", handler.Latest)
	}
}
