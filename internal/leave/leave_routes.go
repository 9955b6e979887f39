package leave

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
	leaves := r.Group("/leave-requests")
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetAll,
		)

		leaves.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetById,
		)

		leaves.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		leaves.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave", "update"),
			handler.Update,
		)

		leaves.PATCH("/:id/toggle",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave", "toggle"),
			handler.Toggle,
		)

		leaves.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "delete"),
			handler.Delete,
		)
	}
}
