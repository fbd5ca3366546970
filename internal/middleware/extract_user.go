package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
	"github.com/1000bang/vacation-api-sub001/internal/shared/response"
)

// ExtractUserID re-validates the user_id key set by AuthMiddleware so
// downstream handlers can rely on a typed, non-empty value.
func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, exists := ctx.Get("user_id")
		if !exists {
			response.Error(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "User is not authenticated", nil)
			ctx.Abort()
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			response.Error(ctx, http.StatusUnauthorized, "INVALID_USER_ID", "Invalid user_id format", nil)
			ctx.Abort()
			return
		}

		ctx.Set("user_id_validated", userIDStr)
		ctx.Next()
	}
}

// ActorFrom assembles the caller-resolved actor the workflow engine and
// aggregator consume. AuthMiddleware must have run first.
func ActorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID:   c.GetString("user_id"),
		Division: c.GetString("division"),
		Team:     c.GetString("team"),
		Role:     domain.RoleLevel(c.GetString("role")),
	}
}
