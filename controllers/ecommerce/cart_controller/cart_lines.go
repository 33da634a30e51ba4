package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// AddLine godoc
// @Summary Add a variant to the cart
// @Description Adds quantity units of a variant. An existing line is clamped to the variant's availability.
// @Tags cart
// @Accept json
// @Produce json
// @Param request body models.AddCartLineRequest true "Variant and quantity"
// @Success 200 {object} models.ApiResponse{data=stores.CartState}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /cart/lines [post]
func AddLine(c *gin.Context) {
	var req models.AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	if _, err := sess.Cart.AddItem(c.Request.Context(), req.VariantID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item added to cart", sess.Cart.State()))
}

// UpdateLine godoc
// @Summary Change a cart line's quantity
// @Description The quantity is clamped to between 1 and the units available.
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Cart line ID"
// @Param request body models.UpdateCartLineRequest true "New quantity"
// @Success 200 {object} models.ApiResponse{data=stores.CartState}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /cart/lines/{id} [patch]
func UpdateLine(c *gin.Context) {
	var req models.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	if _, err := sess.Cart.UpdateItem(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart updated", sess.Cart.State()))
}

// RemoveLine godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param id path string true "Cart line ID"
// @Success 200 {object} models.ApiResponse{data=stores.CartState}
// @Failure 404 {object} models.ApiResponse
// @Router /cart/lines/{id} [delete]
func RemoveLine(c *gin.Context) {
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	if _, err := sess.Cart.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item removed from cart", sess.Cart.State()))
}
