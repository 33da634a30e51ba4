package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services/commerce"
)

var errNetwork = &commerce.TransportError{Op: "test", Err: errors.New("connection refused")}

// fakeGateway is an in-memory commerce backend. Hooks override individual
// calls; calls are recorded by name.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string
	carts map[string]*models.Cart
	seq   int

	products map[string]models.Product

	createCart        func(lines []models.CartLineInput) (*models.Cart, error)
	updateCartLines   func(cartID string, lines []models.CartLineUpdate) (*models.Cart, error)
	productsByHandles func(handles []string) ([]models.Product, error)
	createToken       func(email, password string) (*models.CustomerAccessToken, error)
	getCustomer       func(token string) (*models.Customer, error)
	getMenu           func(handle string) (*models.Menu, error)
	findByEmail       func(email string) (*models.Customer, error)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		carts:    make(map[string]*models.Cart),
		products: make(map[string]models.Product),
	}
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) CreateCart(_ context.Context, lines []models.CartLineInput) (*models.Cart, error) {
	f.record("CreateCart")
	if f.createCart != nil {
		return f.createCart(lines)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	cart := &models.Cart{ID: fmt.Sprintf("c%d", f.seq)}
	for _, l := range lines {
		cart = withLine(cart, l.MerchandiseID, l.Quantity, nil)
	}
	f.carts[cart.ID] = cart
	return cart, nil
}

func (f *fakeGateway) GetCart(_ context.Context, id string) (*models.Cart, error) {
	f.record("GetCart:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.carts[id], nil
}

func (f *fakeGateway) AddCartLines(_ context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error) {
	f.record("AddCartLines")
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	for _, l := range lines {
		qty := l.Quantity
		if existing, ok := cart.LineForVariant(l.MerchandiseID); ok {
			qty += existing.Quantity
		}
		cart = withLine(cart, l.MerchandiseID, qty, nil)
	}
	f.carts[cartID] = cart
	return cart, nil
}

func (f *fakeGateway) UpdateCartLines(_ context.Context, cartID string, lines []models.CartLineUpdate) (*models.Cart, error) {
	f.record("UpdateCartLines")
	if f.updateCartLines != nil {
		return f.updateCartLines(cartID, lines)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	for _, u := range lines {
		line, _ := cart.Line(u.ID)
		cart = withLine(cart, line.Merchandise.VariantID, u.Quantity, line.Merchandise.QuantityAvailable)
	}
	f.carts[cartID] = cart
	return cart, nil
}

func (f *fakeGateway) RemoveCartLines(_ context.Context, cartID string, lineIDs []string) (*models.Cart, error) {
	f.record("RemoveCartLines")
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	next := *cart
	next.Lines = nil
	next.TotalQuantity = 0
	for _, l := range cart.Lines {
		drop := false
		for _, id := range lineIDs {
			drop = drop || l.ID == id
		}
		if !drop {
			next.Lines = append(next.Lines, l)
			next.TotalQuantity += l.Quantity
		}
	}
	f.carts[cartID] = &next
	return &next, nil
}

func (f *fakeGateway) GetProductsByHandles(_ context.Context, handles []string) ([]models.Product, error) {
	f.record(fmt.Sprintf("GetProductsByHandles:%v", handles))
	if f.productsByHandles != nil {
		return f.productsByHandles(handles)
	}
	out := []models.Product{}
	for _, h := range handles {
		if p, ok := f.products[h]; ok {
			out = append(out, p)
		} else {
			out = append(out, models.Product{Handle: h, Title: h})
		}
	}
	return out, nil
}

func (f *fakeGateway) CreateAccessToken(_ context.Context, email, password string) (*models.CustomerAccessToken, error) {
	f.record("CreateAccessToken")
	if f.createToken != nil {
		return f.createToken(email, password)
	}
	return &models.CustomerAccessToken{Token: "tok-" + email, ExpiresAt: time.Now().Add(24 * time.Hour)}, nil
}

func (f *fakeGateway) DeleteAccessToken(context.Context, string) error {
	f.record("DeleteAccessToken")
	return nil
}

func (f *fakeGateway) GetCustomer(_ context.Context, token string) (*models.Customer, error) {
	f.record("GetCustomer")
	if f.getCustomer != nil {
		return f.getCustomer(token)
	}
	return &models.Customer{ID: "gid://shopify/Customer/1", Email: "ana@example.com", FirstName: "Ana"}, nil
}

func (f *fakeGateway) CreateCustomer(_ context.Context, req models.RegisterRequest) (*models.Customer, error) {
	f.record("CreateCustomer")
	return &models.Customer{ID: "gid://shopify/Customer/2", Email: req.Email}, nil
}

func (f *fakeGateway) FindCustomerByEmail(_ context.Context, email string) (*models.Customer, error) {
	f.record("FindCustomerByEmail")
	if f.findByEmail != nil {
		return f.findByEmail(email)
	}
	return nil, nil
}

func (f *fakeGateway) AdminCreateCustomer(_ context.Context, identity models.ExternalIdentity) (*models.Customer, error) {
	f.record("AdminCreateCustomer")
	return &models.Customer{ID: "gid://shopify/Customer/9", Email: identity.Email, FirstName: identity.FirstName}, nil
}

func (f *fakeGateway) GetCustomerByID(_ context.Context, id string) (*models.Customer, error) {
	f.record("GetCustomerByID")
	return &models.Customer{ID: id, Email: "linked@example.com"}, nil
}

func (f *fakeGateway) GetMenu(_ context.Context, handle string) (*models.Menu, error) {
	f.record("GetMenu:" + handle)
	if f.getMenu != nil {
		return f.getMenu(handle)
	}
	return &models.Menu{Handle: handle, Title: handle}, nil
}

// withLine returns a copy of cart with the variant's line set to qty.
func withLine(cart *models.Cart, variantID string, qty int, available *int) *models.Cart {
	next := *cart
	next.Lines = nil
	next.TotalQuantity = 0
	found := false
	for _, l := range cart.Lines {
		if l.Merchandise.VariantID == variantID {
			l.Quantity = qty
			found = true
		}
		next.Lines = append(next.Lines, l)
		next.TotalQuantity += l.Quantity
	}
	if !found {
		next.Lines = append(next.Lines, models.CartLine{
			ID:          "line-" + variantID,
			Quantity:    qty,
			Merchandise: models.CartMerchandise{VariantID: variantID, QuantityAvailable: available},
		})
		next.TotalQuantity += qty
	}
	return &next
}

func intPtr(v int) *int { return &v }

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
