package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/auth_controller"
)

// SetupAuthRoutes sets up all authentication routes. limit guards the
// credential endpoints and may be nil.
func SetupAuthRoutes(router *gin.RouterGroup, session, limit gin.HandlerFunc) {
	auth := router.Group("/auth", session)
	{
		credentials := auth.Group("")
		if limit != nil {
			credentials.Use(limit)
		}
		credentials.POST("/login", auth_controller.Login)
		credentials.POST("/register", auth_controller.Register)
		credentials.POST("/recover", auth_controller.Recover)

		auth.GET("/status", auth_controller.Status)
		auth.POST("/logout", auth_controller.Logout)

		// Google OAuth routes
		auth.GET("/google", auth_controller.GoogleLogin)
		auth.GET("/google/callback", auth_controller.GoogleCallback)
		auth.POST("/google/onetap", auth_controller.GoogleOneTap)
	}
}
