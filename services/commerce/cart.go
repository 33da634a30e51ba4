package commerce

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// cartMutation runs a cart mutation and returns the replacement cart.
// A mutation against an expired cart yields (nil, nil).
func (c *Client) cartMutation(ctx context.Context, op, query string, vars map[string]any) (*models.Cart, error) {
	data, err := c.storefront(ctx, op, query, vars)
	if err != nil {
		return nil, err
	}
	payload := data.Get(op)
	if err := userErrors(op, payload); err != nil {
		if isMissingCart(err.(*UserError)) {
			return nil, nil
		}
		return nil, err
	}
	if cart := payload.Get("cart"); !cart.Exists() || cart.Type == gjson.Null {
		return nil, nil
	}
	return normalizeCart(payload.Get("cart")), nil
}

func isMissingCart(ue *UserError) bool {
	if ue.HasCode("CART_DOES_NOT_EXIST") {
		return true
	}
	for _, m := range ue.Messages {
		if strings.Contains(strings.ToLower(m), "cart does not exist") {
			return true
		}
	}
	return false
}

func (c *Client) CreateCart(ctx context.Context, lines []models.CartLineInput) (*models.Cart, error) {
	if lines == nil {
		lines = []models.CartLineInput{}
	}
	return c.cartMutation(ctx, "cartCreate", mutationCartCreate, map[string]any{"lines": lines})
}

// GetCart returns nil when the cart has expired or never existed.
func (c *Client) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	data, err := c.storefront(ctx, "cart", queryCart, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	return normalizeCart(data.Get("cart")), nil
}

func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error) {
	return c.cartMutation(ctx, "cartLinesAdd", mutationCartLinesAdd, map[string]any{
		"cartId": cartID,
		"lines":  lines,
	})
}

func (c *Client) UpdateCartLines(ctx context.Context, cartID string, lines []models.CartLineUpdate) (*models.Cart, error) {
	return c.cartMutation(ctx, "cartLinesUpdate", mutationCartLinesUpdate, map[string]any{
		"cartId": cartID,
		"lines":  lines,
	})
}

func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*models.Cart, error) {
	return c.cartMutation(ctx, "cartLinesRemove", mutationCartLinesRemove, map[string]any{
		"cartId":  cartID,
		"lineIds": lineIDs,
	})
}

// UpdateBuyerIdentity attaches the shopper's email and, when logged in, their
// customer access token to the cart so checkout is prefilled.
func (c *Client) UpdateBuyerIdentity(ctx context.Context, cartID, email, customerToken string) (*models.Cart, error) {
	identity := map[string]any{}
	if email != "" {
		identity["email"] = email
	}
	if customerToken != "" {
		identity["customerAccessToken"] = customerToken
	}
	return c.cartMutation(ctx, "cartBuyerIdentityUpdate", mutationCartBuyerIdentity, map[string]any{
		"cartId":        cartID,
		"buyerIdentity": identity,
	})
}
