package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

// RegisterRoutes mounts /payrolls. With rdb set, POST /payrolls honours the
// Idempotency-Key header.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	create := []gin.HandlerFunc{
		middleware.RateLimitByUser(0.5, 2),
		middleware.RBACAuthorize(rbacService, "payroll", rbac.ActionCreate),
	}
	if rdb != nil {
		create = append(create, middleware.Idempotency(rdb))
	}
	create = append(create, handler.Create)

	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", rbac.ActionRead), handler.GetAll)
		payrolls.POST("", create...)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", rbac.ActionRead), handler.GetByID)
		payrolls.GET("/:id/payslip",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", rbac.ActionRead),
			handler.Payslip,
		)
		payrolls.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payroll", rbac.ActionApprove), handler.Approve)
		payrolls.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", rbac.ActionApprove), handler.MarkPaid)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", rbac.ActionDelete), handler.Delete)
	}
}
