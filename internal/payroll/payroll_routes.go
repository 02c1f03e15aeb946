package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/azirkitai/utamaHR-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	payrolls := r.Group("/payroll-documents")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			handler.Create,
		)
		payrolls.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.List,
		)
		payrolls.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.Get,
		)
		// Penjanaan berat dan bukan idempotent dari sisi HTTP retry, jadi
		// dilindungi kunci idempotency redis.
		payrolls.POST("/:id/generate",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			middleware.Idempotency(rdb),
			handler.Generate,
		)
		payrolls.POST("/:id/refresh",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			middleware.Idempotency(rdb),
			handler.Refresh,
		)
		payrolls.POST("/:id/submit",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "submit"),
			handler.Submit,
		)
		payrolls.POST("/:id/approve",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			handler.Approve,
		)
		payrolls.POST("/:id/reject",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			handler.Reject,
		)
		payrolls.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "delete"),
			handler.Delete,
		)
	}
}
