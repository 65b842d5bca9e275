package user

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	r.PUT("/me/password", handler.ChangePassword)

	users := r.Group("/users")
	users.Use(middleware.RBACAuthorize(rbacService, "user", rbac.ActionManage))
	{
		users.GET("", handler.GetAll)
		users.GET("/:id", handler.GetByID)
		users.POST("", handler.Create)
		users.PATCH("/:id/role", handler.UpdateRole)
		users.PATCH("/:id/status", handler.ToggleStatus)
		users.POST("/:id/reset-password", handler.ResetPassword)
	}
}
