package models

// Cart mirrors the commerce backend's cart. It is never mutated locally:
// every change replaces it with the object the backend returns.
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	TotalQuantity int        `json:"totalQuantity"`
	Cost          CartCost   `json:"cost"`
	Lines         []CartLine `json:"lines"`
}

type CartCost struct {
	Subtotal Money  `json:"subtotalAmount"`
	Total    Money  `json:"totalAmount"`
	TotalTax *Money `json:"totalTaxAmount,omitempty"`
}

type CartLine struct {
	ID          string          `json:"id"`
	Quantity    int             `json:"quantity"`
	Merchandise CartMerchandise `json:"merchandise"`
	Cost        Money           `json:"cost"`
}

type CartMerchandise struct {
	VariantID         string           `json:"variantId"`
	Title             string           `json:"title"`
	ProductHandle     string           `json:"productHandle"`
	ProductTitle      string           `json:"productTitle"`
	QuantityAvailable *int             `json:"quantityAvailable,omitempty"`
	Price             Money            `json:"price"`
	SelectedOptions   []SelectedOption `json:"selectedOptions,omitempty"`
	Image             *Image           `json:"image,omitempty"`
}

// Line returns the line with the given id.
func (c *Cart) Line(lineID string) (CartLine, bool) {
	if c == nil {
		return CartLine{}, false
	}
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return CartLine{}, false
}

// LineForVariant returns the line holding a variant, if any.
func (c *Cart) LineForVariant(variantID string) (CartLine, bool) {
	if c == nil {
		return CartLine{}, false
	}
	for _, l := range c.Lines {
		if l.Merchandise.VariantID == variantID {
			return l, true
		}
	}
	return CartLine{}, false
}

type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
}

type CartLineUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// AddCartLineRequest is the body of POST /cart/lines.
type AddCartLineRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartLineRequest is the body of PATCH /cart/lines/:id.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
