package alarm

import (
	"github.com/gin-gonic/gin"

	"github.com/1000bang/vacation-api-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	alarms := r.Group("/alarms")
	alarms.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		alarms.GET("", handler.List)
		alarms.GET("/unread-count", handler.UnreadCount)
		alarms.PATCH("/:seq/read", handler.MarkRead)
		alarms.PATCH("/read-all", handler.MarkAllRead)
	}
}
