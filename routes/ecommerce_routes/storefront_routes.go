package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	store_category "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/category_controller"
	store_filter "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/filter_controller"
	store_menu "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/menu_controller"
	store_product "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/product_controller"
	store_search "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/search_controller"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront catalog (public, sessionless)
	store := router.Group("/store")

	products := store.Group("/products")
	{
		products.GET("", store_product.GetProductsByHandles) // ?handles=a,b
		products.GET("/:handle", store_product.GetProductByHandle)
		products.GET("/:handle/recommendations", store_product.GetRecommendations)
	}

	collections := store.Group("/collections")
	{
		collections.GET("/:handle", store_product.GetCollectionProducts)
		collections.GET("/:handle/filters", store_filter.GetCollectionFilters)
	}

	store.GET("/subcategories", store_category.GetSubcategories)
	store.GET("/search/suggestions", store_search.GetSuggestions)
	store.GET("/menus/:handle", store_menu.GetMenu)
}
