package commerce

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// Operations in this file use the elevated admin credential.

// FindCustomerByEmail returns nil when no customer has the email.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	data, err := c.admin(ctx, "customers", adminQueryCustomerByEmail, map[string]any{
		"query": "email:" + quoteSearch(email),
	})
	if err != nil {
		return nil, err
	}
	node := data.Get("customers.nodes.0")
	if !node.Exists() || !strings.EqualFold(node.Get("email").String(), email) {
		return nil, nil
	}
	return normalizeCustomer(node), nil
}

// quoteSearch quotes a value for the admin search syntax.
func quoteSearch(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// AdminCreateCustomer creates a password-less customer for a verified
// external identity.
func (c *Client) AdminCreateCustomer(ctx context.Context, identity models.ExternalIdentity) (*models.Customer, error) {
	const op = "customerCreate"
	input := map[string]any{
		"email":     identity.Email,
		"firstName": identity.FirstName,
		"lastName":  identity.LastName,
		"tags":      []string{"oauth", strings.ToLower(identity.Provider)},
	}
	data, err := c.admin(ctx, op, adminMutationCustomerCreate, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	payload := data.Get(op)
	if err := userErrors(op, payload); err != nil {
		return nil, err
	}
	return normalizeCustomer(payload.Get("customer")), nil
}

// GetCustomerByID returns nil when the id is unknown.
func (c *Client) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	data, err := c.admin(ctx, "customer", adminQueryCustomerByID, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	return normalizeCustomer(data.Get("customer")), nil
}

// GetCustomerOrdersByID lists orders of a customer resolved by id, for
// sessions that carry no customer access token.
func (c *Client) GetCustomerOrdersByID(ctx context.Context, id string, first int, after string) (*models.OrderPage, error) {
	data, err := c.admin(ctx, "customerOrders", adminQueryCustomerOrders, map[string]any{
		"id":    id,
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
		page.Orders = append(page.Orders, normalizeAdminOrder(o))
	}
	return page, nil
}

// CreatePendingOrder opens an order with financial status PENDING. The
// backend decrements inventory, which is the hold on the goods until the
// order is paid or cancelled.
func (c *Client) CreatePendingOrder(ctx context.Context, in models.RemoteOrderInput) (*models.RemoteOrder, error) {
	const op = "orderCreate"
	lines := make([]map[string]any, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, map[string]any{"variantId": l.MerchandiseID, "quantity": l.Quantity})
	}
	order := map[string]any{
		"email":           in.Email,
		"lineItems":       lines,
		"financialStatus": "PENDING",
		"tags":            []string{"pending-payment", "payment:" + string(in.PaymentMethod)},
	}
	if in.CurrencyCode != "" {
		order["currency"] = in.CurrencyCode
	}
	if in.Note != "" {
		order["note"] = in.Note
	}
	if in.Address != nil {
		order["shippingAddress"] = in.Address.ToGraphQL()
	}

	data, err := c.admin(ctx, op, adminMutationOrderCreate, map[string]any{
		"order":   order,
		"options": map[string]any{"inventoryBehaviour": "DECREMENT_OBEYING_POLICY", "sendReceipt": false},
	})
	if err != nil {
		return nil, err
	}
	payload := data.Get(op)
	if err := userErrors(op, payload); err != nil {
		return nil, err
	}
	node := payload.Get("order")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, &TransportError{Op: op, Messages: []string{"order missing from response"}}
	}
	return &models.RemoteOrder{ID: node.Get("id").String(), Name: node.Get("name").String()}, nil
}

// CancelOrder cancels an order without refunding; restock releases the
// inventory hold.
func (c *Client) CancelOrder(ctx context.Context, orderID string, restock bool) error {
	const op = "orderCancel"
	data, err := c.admin(ctx, op, adminMutationOrderCancel, map[string]any{
		"orderId": orderID,
		"restock": restock,
	})
	if err != nil {
		return err
	}
	return userErrors(op, data.Get(op))
}
