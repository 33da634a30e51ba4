package address_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// DeleteAddress godoc
// @Summary Delete address
// @Tags User - Addresses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 200 {object} models.ApiResponse "Address deleted successfully"
// @Failure 403 {object} models.ApiResponse "Signed in through Google"
// @Router /user/addresses/{id} [delete]
func DeleteAddress(c *gin.Context) {
	token, ok := storefrontToken(c)
	if !ok {
		return
	}
	if err := gateway.DeleteAddress(c.Request.Context(), token, c.Param("id")); err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Address deleted successfully", nil))
}
