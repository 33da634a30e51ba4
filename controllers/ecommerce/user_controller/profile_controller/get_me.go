package profile_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

type CustomerGateway interface {
	GetCustomer(ctx context.Context, token string) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
}

var gateway CustomerGateway

func Init(gw CustomerGateway) { gateway = gw }

// GetMe godoc
// @Summary Get current authenticated customer
// @Description Returns the commerce backend's profile of the signed-in customer
// @Tags User - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.Customer}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 502 {object} models.ApiResponse
// @Router /user/me [get]
func GetMe(c *gin.Context) {
	cred, ok := middleware.GetCredential(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var (
		customer *models.Customer
		err      error
	)
	if cred.Kind == models.CredentialLinked {
		customer, err = gateway.GetCustomerByID(c.Request.Context(), cred.CustomerID)
	} else {
		customer, err = gateway.GetCustomer(c.Request.Context(), cred.Token)
	}
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if customer == nil {
		// token revoked or customer deleted upstream
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Session expired, please log in again"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Customer fetched successfully", customer))
}
