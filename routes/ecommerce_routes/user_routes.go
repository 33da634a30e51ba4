package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/user_controller/address_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/user_controller/order_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/user_controller/profile_controller"
)

// SetupUserRoutes sets up the signed-in customer's routes
func SetupUserRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	user := router.Group("/user")
	user.Use(auth) // All routes require auth
	{
		user.GET("/me", profile_controller.GetMe)

		// Addresses
		user.GET("/addresses", address_controller.GetAddresses)
		user.POST("/addresses", address_controller.AddAddress)
		user.PATCH("/addresses/:id", address_controller.UpdateAddress)
		user.DELETE("/addresses/:id", address_controller.DeleteAddress)
		user.PATCH("/addresses/:id/default", address_controller.SetDefaultAddress)

		// Orders
		user.GET("/orders", order_controller.GetOrders)
	}
}
