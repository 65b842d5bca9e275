package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
)

// RegisterRoutes mounts the public auth endpoints on r. authMW guards /me.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.1, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 10), handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", authMW, middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
