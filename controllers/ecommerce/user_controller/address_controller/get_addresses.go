package address_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetAddresses godoc
// @Summary Get customer addresses
// @Description Lists the address book. Sessions signed in through Google only see their default address.
// @Tags User - Addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.Address}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 502 {object} models.ApiResponse
// @Router /user/addresses [get]
func GetAddresses(c *gin.Context) {
	cred, ok := middleware.GetCredential(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	addresses := []models.Address{}
	if cred.Kind == models.CredentialLinked {
		customer, err := gateway.GetCustomerByID(c.Request.Context(), cred.CustomerID)
		if err != nil {
			utils.RespondGatewayError(c, err)
			return
		}
		if customer != nil && customer.DefaultAddress != nil {
			addr := *customer.DefaultAddress
			addr.IsDefault = true
			addresses = append(addresses, addr)
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Addresses fetched successfully", addresses))
		return
	}

	list, err := gateway.GetAddresses(c.Request.Context(), cred.Token)
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if list != nil {
		addresses = list
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Addresses fetched successfully", addresses))
}
