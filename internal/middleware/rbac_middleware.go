package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1000bang/vacation-api-sub001/internal/shared/response"
)

// RBACService is a local interface so this package does not depend on
// the rbac package; anything with a matching Enforce method fits.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action,
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
