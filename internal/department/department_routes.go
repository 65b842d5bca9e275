package department

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	departments := r.Group("/departments")
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", rbac.ActionRead), h.GetAll)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", rbac.ActionCreate), h.Create)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", rbac.ActionRead), h.GetByID)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", rbac.ActionUpdate), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", rbac.ActionDelete), h.Delete)
	}
}
