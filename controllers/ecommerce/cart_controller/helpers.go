package cart_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stores.ErrQuantityUnavailable):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "No more units of this product are available"))
	case errors.Is(err, stores.ErrLineNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart line not found"))
	case errors.Is(err, stores.ErrCartNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart not found"))
	default:
		utils.RespondGatewayError(c, err)
	}
}
