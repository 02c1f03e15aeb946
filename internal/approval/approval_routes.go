package approval

import (
	"github.com/gin-gonic/gin"

	"github.com/azirkitai/utamaHR-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	approvals := r.Group("/approval-settings")
	approvals.Use(middleware.AuthMiddleware())
	{
		approvals.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "approval", "read"),
			handler.GetSettings,
		)
		approvals.PUT("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "approval", "update"),
			handler.UpsertSetting,
		)
		approvals.GET("/:workflow/capability",
			middleware.RateLimitByUser(2, 5),
			handler.GetMyCapability,
		)
	}
}
