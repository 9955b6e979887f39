package approval

import (
	"out-of-office/internal/middleware"
	"out-of-office/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	approvals := r.Group("/approval-requests")
	{
		approvals.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "approval", "read"),
			handler.GetAll,
		)

		approvals.GET("/pending",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "approval", "read"),
			handler.GetPending,
		)

		approvals.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "approval", "read"),
			handler.GetById,
		)

		approvals.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "approval", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		approvals.POST("/:id/approve",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "approval", "decide"),
			handler.Approve,
		)

		approvals.POST("/:id/reject",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "approval", "decide"),
			handler.Reject,
		)

		approvals.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "approval", "delete"),
			handler.Delete,
		)
	}
}
