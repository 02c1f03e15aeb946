package policy

import (
	"github.com/gin-gonic/gin"

	"github.com/azirkitai/utamaHR-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	policies := r.Group("/policies")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("/statutory-rates",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "policy", "read"),
			handler.GetStatutoryRates,
		)
		policies.PUT("/statutory-rates",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "policy", "update"),
			handler.UpsertStatutoryRates,
		)
		policies.GET("/claims",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "policy", "read"),
			handler.GetClaimPolicies,
		)
		policies.POST("/claims",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "policy", "update"),
			handler.CreateClaimPolicy,
		)
		policies.PUT("/claims/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "policy", "update"),
			handler.UpdateClaimPolicy,
		)
		policies.DELETE("/claims/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "policy", "update"),
			handler.DeleteClaimPolicy,
		)
		policies.GET("/overtime",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "policy", "read"),
			handler.GetOvertimePolicy,
		)
		policies.PUT("/overtime",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "policy", "update"),
			handler.UpdateOvertimePolicy,
		)
	}
}
