package commerce

import (
	"context"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// CreateAccessToken exchanges credentials for a customer access token.
// Wrong credentials come back as a *UserError.
func (c *Client) CreateAccessToken(ctx context.Context, email, password string) (*models.CustomerAccessToken, error) {
	const op = "customerAccessTokenCreate"
	data, err := c.storefront(ctx, op, mutationAccessTokenCreate, map[string]any{
		"input": map[string]any{"email": email, "password": password},
	})
	if err != nil {
		return nil, err
	}
	payload := data.Get(op)
	if err := userErrors(op, payload); err != nil {
		return nil, err
	}
	tok := payload.Get("customerAccessToken")
	if !tok.Exists() || tok.Type == gjson.Null || tok.Get("accessToken").String() == "" {
		return nil, &UserError{Op: op, Messages: []string{"Unidentified customer"}, Codes: []string{"UNIDENTIFIED_CUSTOMER"}}
	}
	expires, _ := time.Parse(time.RFC3339, tok.Get("expiresAt").String())
	return &models.CustomerAccessToken{Token: tok.Get("accessToken").String(), ExpiresAt: expires}, nil
}

func (c *Client) DeleteAccessToken(ctx context.Context, token string) error {
	const op = "customerAccessTokenDelete"
	data, err := c.storefront(ctx, op, mutationAccessTokenDelete, map[string]any{"token": token})
	if err != nil {
		return err
	}
	return userErrors(op, data.Get(op))
}

// GetCustomer returns nil when the token is invalid or expired.
func (c *Client) GetCustomer(ctx context.Context, token string) (*models.Customer, error) {
	data, err := c.storefront(ctx, "customer", queryCustomer, map[string]any{"token": token})
	if err != nil {
		return nil, err
	}
	return normalizeCustomer(data.Get("customer")), nil
}

func (c *Client) CreateCustomer(ctx context.Context, req models.RegisterRequest) (*models.Customer, error) {
	const op = "customerCreate"
	input := map[string]any{
		"firstName":        req.FirstName,
		"lastName":         req.LastName,
		"email":            req.Email,
		"password":         req.Password,
		"acceptsMarketing": req.AcceptsMarketing,
	}
	if req.Phone != nil && *req.Phone != "" {
		input["phone"] = *req.Phone
	}
	data, err := c.storefront(ctx, op, mutationCustomerCreate, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	payload := data.Get(op)
	if err := userErrors(op, payload); err != nil {
		return nil, err
	}
	return normalizeCustomer(payload.Get("customer")), nil
}

// GetCustomerOrders returns nil when the token no longer resolves a customer.
func (c *Client) GetCustomerOrders(ctx context.Context, token string, first int, after string) (*models.OrderPage, error) {
	data, err := c.storefront(ctx, "customerOrders", queryCustomerOrders, map[string]any{
		"token": token,
		"first": clampFirst(first),
		"after": cursor(after),
	})
	if err != nil {
		return nil, err
	}
	cust := data.Get("customer")
	if !cust.Exists() || cust.Type == gjson.Null {
		return nil, nil
	}
	page := &models.OrderPage{Orders: []models.Order{}, PageInfo: toPageInfo(cust.Get("orders.pageInfo"))}
	for _, o := range cust.Get("orders.nodes").Array() {
		page.Orders = append(page.Orders, normalizeOrder(o))
	}
	return page, nil
}

// GetAddresses returns nil when the token no longer resolves a customer.
func (c *Client) GetAddresses(ctx context.Context, token string) ([]models.Address, error) {
	data, err := c.storefront(ctx, "customerAddresses", queryCustomerAddresses, map[string]any{"token": token})
	if err != nil {
		return nil, err
	}
	cust := data.Get("customer")
	if !cust.Exists() || cust.Type == gjson.Null {
		return nil, nil
	}
	defaultID := cust.Get("defaultAddress.id").String()
	out := []models.Address{}
	for _, n := range cust.Get("addresses.nodes").Array() {
		a := normalizeAddress(n)
		a.IsDefault = defaultID != "" && a.ID == defaultID
		out = append(out, a)
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, token string, input models.AddressInput) (*models.Address, error) {
	const op = "customerAddressCreate"
	data, err := c.storefront(ctx, op, mutationAddressCreate, map[string]any{
		"token":   token,
		"address": input.ToGraphQL(),
	})
	if err != nil {
		return nil, err
	}
	return addressPayload(op, data.Get(op))
}

func (c *Client) UpdateAddress(ctx context.Context, token, id string, input models.AddressInput) (*models.Address, error) {
	const op = "customerAddressUpdate"
	data, err := c.storefront(ctx, op, mutationAddressUpdate, map[string]any{
		"token":   token,
		"id":      id,
		"address": input.ToGraphQL(),
	})
	if err != nil {
		return nil, err
	}
	return addressPayload(op, data.Get(op))
}

func addressPayload(op string, payload gjson.Result) (*models.Address, error) {
	if err := userErrors(op, payload); err != nil {
		return nil, err
	}
	node := payload.Get("customerAddress")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}
	a := normalizeAddress(node)
	return &a, nil
}

func (c *Client) DeleteAddress(ctx context.Context, token, id string) error {
	const op = "customerAddressDelete"
	data, err := c.storefront(ctx, op, mutationAddressDelete, map[string]any{"token": token, "id": id})
	if err != nil {
		return err
	}
	return userErrors(op, data.Get(op))
}

func (c *Client) SetDefaultAddress(ctx context.Context, token, id string) error {
	const op = "customerDefaultAddressUpdate"
	data, err := c.storefront(ctx, op, mutationDefaultAddress, map[string]any{"token": token, "addressId": id})
	if err != nil {
		return err
	}
	return userErrors(op, data.Get(op))
}

// RecoverPassword asks the backend to mail a password reset link.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	const op = "customerRecover"
	data, err := c.storefront(ctx, op, mutationCustomerRecover, map[string]any{"email": email})
	if err != nil {
		return err
	}
	return userErrors(op, data.Get(op))
}
