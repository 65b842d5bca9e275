package leave

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", rbac.ActionRead), handler.GetAll)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", rbac.ActionCreate), handler.Create)
		leaves.GET("/balance", middleware.RBACAuthorize(rbacService, "leave", rbac.ActionRead), handler.GetBalance)
		leaves.GET("/export", middleware.RBACAuthorize(rbacService, "leave", rbac.ActionExport), handler.Export)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", rbac.ActionRead), handler.GetByID)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", rbac.ActionApprove), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", rbac.ActionApprove), handler.Reject)
	}
}
