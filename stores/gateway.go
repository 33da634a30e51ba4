// Package stores holds the per-session state containers the storefront UI
// reads and writes: cart, favorites, auth session and UI toggles, plus the
// application-wide menu cache. Each store mirrors the commerce backend, is
// persisted through stores/persist and exposes an explicit hydrated flag.
package stores

import (
	"context"
	"errors"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services/commerce"
)

var (
	ErrNotHydrated         = errors.New("store not hydrated yet")
	ErrQuantityUnavailable = errors.New("requested quantity is not available")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrCartNotFound        = errors.New("cart not found")
	ErrLineNotFound        = errors.New("cart line not found")
)

type CartGateway interface {
	CreateCart(ctx context.Context, lines []models.CartLineInput) (*models.Cart, error)
	GetCart(ctx context.Context, id string) (*models.Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, lines []models.CartLineUpdate) (*models.Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*models.Cart, error)
}

type ProductGateway interface {
	GetProductsByHandles(ctx context.Context, handles []string) ([]models.Product, error)
}

type CustomerGateway interface {
	CreateAccessToken(ctx context.Context, email, password string) (*models.CustomerAccessToken, error)
	DeleteAccessToken(ctx context.Context, token string) error
	GetCustomer(ctx context.Context, token string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, req models.RegisterRequest) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	AdminCreateCustomer(ctx context.Context, identity models.ExternalIdentity) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
}

type MenuGateway interface {
	GetMenu(ctx context.Context, handle string) (*models.Menu, error)
}

// Gateway is everything the stores need from the commerce backend.
type Gateway interface {
	CartGateway
	ProductGateway
	CustomerGateway
	MenuGateway
}

var _ Gateway = (*commerce.Client)(nil)

// errorMessage is the string a store records for a failed action.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuantityUnavailable),
		errors.Is(err, ErrCartNotFound),
		errors.Is(err, ErrLineNotFound),
		errors.Is(err, ErrNotLoggedIn):
		return err.Error()
	}
	return commerce.UserMessage(err)
}
