package attendance

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", rbac.ActionRead), h.GetAll)
		attendances.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", rbac.ActionExport), h.Export)
		attendances.POST("/clock-in",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "attendance", rbac.ActionCreate),
			h.ClockIn,
		)
		attendances.POST("/clock-out",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "attendance", rbac.ActionCreate),
			h.ClockOut,
		)
	}
}
