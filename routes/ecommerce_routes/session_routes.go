package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/cart_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/checkout_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/favorites_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/ui_controller"
)

// SetupSessionRoutes registers the routes backed by the per-session stores.
func SetupSessionRoutes(router *gin.RouterGroup, session gin.HandlerFunc) {
	cart := router.Group("/cart", session)
	{
		cart.GET("", cart_controller.GetCart)
		cart.POST("/lines", cart_controller.AddLine)
		cart.PATCH("/lines/:id", cart_controller.UpdateLine)
		cart.DELETE("/lines/:id", cart_controller.RemoveLine)
	}

	favorites := router.Group("/favorites", session)
	{
		favorites.GET("", favorites_controller.GetFavorites)
		favorites.POST("/:handle/toggle", favorites_controller.ToggleFavorite)
	}

	ui := router.Group("/ui", session)
	{
		ui.GET("", ui_controller.GetUIState)
		ui.POST("/menu/toggle", ui_controller.ToggleMenu)
		ui.POST("/search/toggle", ui_controller.ToggleSearch)
		ui.POST("/close", ui_controller.CloseAll)
	}

	checkout := router.Group("/checkout/pending-orders", session)
	{
		checkout.POST("", checkout_controller.CreatePendingOrder)
		checkout.POST("/:id/release", checkout_controller.ReleasePendingOrder)
		checkout.GET("/:id/receipt", checkout_controller.DownloadReceipt)
	}
}
