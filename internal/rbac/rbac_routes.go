package rbac

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
)

// RegisterRoutes expects r to already carry the auth middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", middleware.RBACAuthorize(service, "role", ActionManage), handler.ListPermissions)
		group.PUT("/roles/:role/permissions", middleware.RBACAuthorize(service, "role", ActionManage), handler.UpdateRolePermissions)
	}
}
