package voucher

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
	vouchers := r.Group("/payment-vouchers")
	vouchers.Use(middleware.AuthMiddleware())
	{
		// Agregasi menanda claim yang dikutip, jadi dilindungi kunci
		// idempotency redis terhadap HTTP retry.
		vouchers.POST("/aggregate",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "voucher", "create"),
			middleware.Idempotency(rdb),
			handler.Aggregate,
		)
		vouchers.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "voucher", "read"),
			handler.List,
		)
		vouchers.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "voucher", "read"),
			handler.Get,
		)
		vouchers.POST("/:id/submit",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "voucher", "submit"),
			handler.Submit,
		)
		vouchers.POST("/:id/mark-paid",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "voucher", "pay"),
			handler.MarkPaid,
		)
	}
}
