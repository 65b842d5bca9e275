package holiday

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	holidays := r.Group("/holidays")
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", rbac.ActionRead), h.GetAll)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", rbac.ActionCreate), h.Create)
		holidays.GET("/:id", middleware.RBACAuthorize(rbacService, "holiday", rbac.ActionRead), h.GetByID)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", rbac.ActionUpdate), h.Update)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", rbac.ActionDelete), h.Delete)
	}
}
