package jobposting

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

// RegisterPublicRoutes mounts the unauthenticated careers list.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/job-postings/open", middleware.RateLimitByIP(2, 10), handler.GetOpen)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	posts := r.Group("/job-postings")
	{
		posts.GET("", middleware.RBACAuthorize(rbacService, "job_posting", rbac.ActionRead), handler.GetAll)
		posts.POST("", middleware.RBACAuthorize(rbacService, "job_posting", rbac.ActionCreate), handler.Create)
		posts.GET("/:id", middleware.RBACAuthorize(rbacService, "job_posting", rbac.ActionRead), handler.GetByID)
		posts.PUT("/:id", middleware.RBACAuthorize(rbacService, "job_posting", rbac.ActionUpdate), handler.Update)
		posts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "job_posting", rbac.ActionDelete), handler.Delete)
	}
}
