package claim

import (
	"github.com/gin-gonic/gin"

	"github.com/azirkitai/utamaHR-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	claims := r.Group("/claims")
	claims.Use(middleware.AuthMiddleware())
	{
		claims.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "claim", "create"),
			handler.Submit,
		)
		claims.GET("/mine",
			middleware.RateLimitByUser(2, 5),
			handler.ListMine,
		)
		claims.GET("/pending-approval",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "claim", "approve"),
			handler.ListPendingApproval,
		)
		claims.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "claim", "read"),
			handler.GetByID,
		)
		claims.POST("/:id/approve-first",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "claim", "approve"),
			handler.ApproveFirst,
		)
		claims.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "claim", "approve"),
			handler.Approve,
		)
		claims.POST("/:id/reject",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "claim", "approve"),
			handler.Reject,
		)
	}
}
