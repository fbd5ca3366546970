package rbac

import (
	"github.com/gin-gonic/gin"

	"github.com/1000bang/vacation-api-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		group.GET("/policies", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListPolicies)
	}
}
