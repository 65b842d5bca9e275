package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	read := middleware.RBACAuthorize(rbacService, "notification", rbac.ActionRead)

	notifications := r.Group("/notifications")
	{
		notifications.GET("", read, handler.ListMine)
		notifications.GET("/unread-count", read, handler.UnreadCount)
		notifications.POST("/read-all", read, handler.MarkAllRead)
		notifications.POST("/:id/read", read, handler.MarkRead)
	}
}
