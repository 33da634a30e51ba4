package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetRecommendations godoc
// @Summary Get related products
// @Tags store
// @Produce json
// @Param handle path string true "Product handle"
// @Success 200 {object} models.ApiResponse{data=[]models.ProductCard}
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products/{handle}/recommendations [get]
func GetRecommendations(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := gateway.GetProduct(ctx, c.Param("handle"))
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	related, err := gateway.GetRecommendations(ctx, product.ID)
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}

	rewriteImages(related)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Recommendations fetched successfully", toCards(related)))
}
