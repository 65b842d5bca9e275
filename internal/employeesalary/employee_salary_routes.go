package employeesalary

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	salaries := r.Group("/employee-salaries")
	{
		salaries.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary", rbac.ActionRead),
			handler.GetAll,
		)
		salaries.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", rbac.ActionRead),
			handler.GetByID,
		)
		salaries.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary", rbac.ActionUpdate),
			handler.Create,
		)
		salaries.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary", rbac.ActionUpdate),
			handler.Update,
		)
		salaries.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary", rbac.ActionUpdate),
			handler.Delete,
		)
	}
}
