package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// GetCart godoc
// @Summary Get the session cart
// @Description Returns the cart bound to the session cookie, creating one when the session has none
// @Tags cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=stores.CartState}
// @Failure 502 {object} models.ApiResponse
// @Router /cart [get]
func GetCart(c *gin.Context) {
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	// hydration may have failed on an earlier request
	if sess.Cart.State().Cart == nil {
		if err := sess.Cart.Init(c.Request.Context()); err != nil {
			respondCartError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched successfully", sess.Cart.State()))
}
