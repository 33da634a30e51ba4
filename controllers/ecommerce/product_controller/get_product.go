package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetProductByHandle godoc
// @Summary Get single product details for storefront
// @Description Get the full product (variants, options, facets) by handle
// @Tags store
// @Produce json
// @Param handle path string true "Product handle"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products/{handle} [get]
func GetProductByHandle(c *gin.Context) {
	handle := c.Param("handle")

	product, err := gateway.GetProduct(c.Request.Context(), handle)
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	if images != nil {
		images.RewriteProduct(product)
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}

// GetProductsByHandles godoc
// @Summary Get several products by handle
// @Description Batch fetch in the order requested; unknown handles are skipped
// @Tags store
// @Produce json
// @Param handles query string true "Comma separated handles"
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products [get]
func GetProductsByHandles(c *gin.Context) {
	handles := parseHandles(c)
	if len(handles) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "handles query parameter is required"))
		return
	}
	if len(handles) > maxHandles {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Too many handles requested"))
		return
	}

	products, err := gateway.GetProductsByHandles(c.Request.Context(), handles)
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	rewriteImages(products)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products fetched successfully", products))
}
