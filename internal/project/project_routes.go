package project

import (
	"out-of-office/internal/middleware"
	"out-of-office/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	projects := r.Group("/projects")
	{
		projects.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "project", "manage"),
			handler.Create,
		)
		projects.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "project", "read"),
			handler.GetAll,
		)
		projects.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "project", "read"),
			handler.GetById,
		)
		projects.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "project", "manage"),
			handler.Update,
		)
		projects.PATCH("/:id/deactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "project", "manage"),
			handler.Deactivate,
		)
		projects.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "project", "manage"),
			handler.Delete,
		)
	}
}
