package approval

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/1000bang/vacation-api-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbac middleware.RBACService, rdb *redis.Client) {
	approvals := r.Group("/approvals")
	approvals.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		approvals.GET("/pending", handler.ListPending)

		decide := approvals.Group("")
		decide.Use(middleware.RBACAuthorize(rbac, "approval", "decide"))
		{
			decide.POST("/:type/:seq/approve", middleware.Idempotency(rdb), handler.Approve)
			decide.POST("/:type/:seq/reject", middleware.Idempotency(rdb), handler.Reject)
		}

		// Resubmission is an applicant action, guarded by ownership in
		// the engine rather than a role policy.
		approvals.POST("/:type/:seq/resubmit", middleware.Idempotency(rdb), handler.Resubmit)
	}
}
