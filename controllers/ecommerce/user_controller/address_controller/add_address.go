package address_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// AddAddress godoc
// @Summary Add new address
// @Tags User - Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param address body models.AddressInput true "Address details"
// @Param default query bool false "Also make it the default address"
// @Success 201 {object} models.ApiResponse{data=models.Address} "Address added successfully"
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 403 {object} models.ApiResponse "Signed in through Google"
// @Router /user/addresses [post]
func AddAddress(c *gin.Context) {
	var req models.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	token, ok := storefrontToken(c)
	if !ok {
		return
	}

	address, err := gateway.CreateAddress(c.Request.Context(), token, req)
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}

	if address == nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Address could not be saved"))
		return
	}

	if c.Query("default") == "true" {
		if err := gateway.SetDefaultAddress(c.Request.Context(), token, address.ID); err != nil {
			utils.RespondGatewayError(c, err)
			return
		}
		address.IsDefault = true
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Address added successfully", address))
}
