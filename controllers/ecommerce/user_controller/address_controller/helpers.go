package address_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// AddressGateway is the customer address book of the commerce backend.
// Every call needs a storefront customer token.
type AddressGateway interface {
	GetAddresses(ctx context.Context, token string) ([]models.Address, error)
	CreateAddress(ctx context.Context, token string, input models.AddressInput) (*models.Address, error)
	UpdateAddress(ctx context.Context, token, id string, input models.AddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, token, id string) error
	SetDefaultAddress(ctx context.Context, token, id string) error
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
}

var gateway AddressGateway

func Init(gw AddressGateway) { gateway = gw }

// storefrontToken returns the customer token of the request. Sessions
// signed in through Google carry no token and get a 403.
func storefrontToken(c *gin.Context) (string, bool) {
	cred, ok := middleware.GetCredential(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return "", false
	}
	if cred.Kind != models.CredentialStorefront || cred.Token == "" {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Managing addresses requires signing in with email and password"))
		return "", false
	}
	return cred.Token, true
}
