package address_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// UpdateAddress godoc
// @Summary Update address
// @Tags User - Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Param address body models.AddressInput true "Address details"
// @Success 200 {object} models.ApiResponse{data=models.Address}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 403 {object} models.ApiResponse "Signed in through Google"
// @Router /user/addresses/{id} [patch]
func UpdateAddress(c *gin.Context) {
	var req models.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	token, ok := storefrontToken(c)
	if !ok {
		return
	}

	address, err := gateway.UpdateAddress(c.Request.Context(), token, c.Param("id"), req)
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Address updated successfully", address))
}
