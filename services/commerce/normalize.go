package commerce

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// NewProductWindow is how long after creation a product counts as new.
const NewProductWindow = 14 * 24 * time.Hour

var newTags = map[string]bool{"new": true, "nuevo": true}

// labels for the custom metafields pulled by ProductFields
var detailLabels = map[string]string{
	"material": "Material",
	"fit":      "Calce",
	"style":    "Estilo",
}

func toMoney(r gjson.Result) models.Money {
	return models.ParseMoney(r.Get("amount").String(), r.Get("currencyCode").String())
}

func toMoneyPtr(r gjson.Result) *models.Money {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	m := toMoney(r)
	return &m
}

func toImage(r gjson.Result) *models.Image {
	if !r.Exists() || r.Type == gjson.Null || r.Get("url").String() == "" {
		return nil
	}
	return &models.Image{
		URL:     r.Get("url").String(),
		AltText: r.Get("altText").String(),
		Width:   int(r.Get("width").Int()),
		Height:  int(r.Get("height").Int()),
	}
}

func toIntPtr(r gjson.Result) *int {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	v := int(r.Int())
	return &v
}

func toStrings(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

func toPageInfo(r gjson.Result) models.PageInfo {
	return models.PageInfo{
		HasNextPage: r.Get("hasNextPage").Bool(),
		EndCursor:   r.Get("endCursor").String(),
	}
}

func toSelectedOptions(r gjson.Result) []models.SelectedOption {
	out := []models.SelectedOption{}
	for _, o := range r.Array() {
		out = append(out, models.SelectedOption{Name: o.Get("name").String(), Value: o.Get("value").String()})
	}
	return out
}

// ════════════════════════════════════════════════════════════
// Product
// ════════════════════════════════════════════════════════════

func normalizeProduct(r gjson.Result, now time.Time) models.Product {
	p := models.Product{
		ID:               r.Get("id").String(),
		Title:            r.Get("title").String(),
		Handle:           r.Get("handle").String(),
		Description:      r.Get("description").String(),
		Vendor:           r.Get("vendor").String(),
		ProductType:      r.Get("productType").String(),
		Tags:             toStrings(r.Get("tags")),
		AvailableForSale: r.Get("availableForSale").Bool(),
		PriceRange: models.PriceRange{
			Min: toMoney(r.Get("priceRange.minVariantPrice")),
			Max: toMoney(r.Get("priceRange.maxVariantPrice")),
		},
		FeaturedImage: toImage(r.Get("featuredImage")),
		Options:       []models.ProductOption{},
		Variants:      []models.Variant{},
		Images:        []models.Image{},
	}
	if t, err := time.Parse(time.RFC3339, r.Get("createdAt").String()); err == nil {
		p.CreatedAt = t
	}
	if cr := r.Get("compareAtPriceRange"); cr.Exists() && cr.Type != gjson.Null {
		p.CompareAtPriceRange = &models.PriceRange{
			Min: toMoney(cr.Get("minVariantPrice")),
			Max: toMoney(cr.Get("maxVariantPrice")),
		}
	}

	for _, o := range r.Get("options").Array() {
		p.Options = append(p.Options, models.ProductOption{
			Name:   o.Get("name").String(),
			Values: toStrings(o.Get("values")),
		})
	}
	for _, img := range r.Get("images.nodes").Array() {
		if i := toImage(img); i != nil {
			p.Images = append(p.Images, *i)
		}
	}
	for _, v := range r.Get("variants.nodes").Array() {
		p.Variants = append(p.Variants, models.Variant{
			ID:                v.Get("id").String(),
			Title:             v.Get("title").String(),
			AvailableForSale:  v.Get("availableForSale").Bool(),
			QuantityAvailable: toIntPtr(v.Get("quantityAvailable")),
			Price:             toMoney(v.Get("price")),
			CompareAtPrice:    toMoneyPtr(v.Get("compareAtPrice")),
			SelectedOptions:   toSelectedOptions(v.Get("selectedOptions")),
			Image:             toImage(v.Get("image")),
		})
	}

	p.Metafields = models.ProductMetafields{
		Color:  parseColor(r.Get("color.value").String()),
		Size:   r.Get("size.value").String(),
		Season: r.Get("season.value").String(),
	}
	for _, d := range r.Get("details").Array() {
		key, value := d.Get("key").String(), strings.TrimSpace(d.Get("value").String())
		if key == "" || value == "" {
			continue
		}
		if p.Metafields.Custom == nil {
			p.Metafields.Custom = make(map[string]string)
		}
		label, ok := detailLabels[key]
		if !ok {
			label = key
		}
		p.Metafields.Custom[label] = value
	}

	p.IsNew = isNew(p, now)
	p.OnSale = onSale(p)
	p.Facets = catalog.ExtractFacets(p)
	return p
}

// parseColor accepts a JSON {"name","hex"} object, a bare hex value or a name.
func parseColor(raw string) *models.ColorSwatch {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if gjson.Valid(raw) {
		if r := gjson.Parse(raw); r.IsObject() {
			c := &models.ColorSwatch{Name: r.Get("name").String(), Hex: r.Get("hex").String()}
			if c.Name == "" && c.Hex == "" {
				return nil
			}
			return c
		}
	}
	if strings.HasPrefix(raw, "#") {
		return &models.ColorSwatch{Hex: raw}
	}
	return &models.ColorSwatch{Name: raw}
}

func isNew(p models.Product, now time.Time) bool {
	for _, t := range p.Tags {
		if newTags[strings.ToLower(strings.TrimSpace(t))] {
			return true
		}
	}
	if p.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(p.CreatedAt) <= NewProductWindow
}

func onSale(p models.Product) bool {
	for _, v := range p.Variants {
		if v.CompareAtPrice != nil && v.CompareAtPrice.Amount > v.Price.Amount {
			return true
		}
	}
	if len(p.Variants) == 0 && p.CompareAtPriceRange != nil {
		return p.CompareAtPriceRange.Min.Amount > p.PriceRange.Min.Amount
	}
	return false
}

func normalizeProducts(r gjson.Result, now time.Time) []models.Product {
	out := []models.Product{}
	for _, n := range r.Array() {
		if n.Type == gjson.Null {
			continue
		}
		out = append(out, normalizeProduct(n, now))
	}
	return out
}

// ════════════════════════════════════════════════════════════
// Cart
// ════════════════════════════════════════════════════════════

func normalizeCart(r gjson.Result) *models.Cart {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	cart := &models.Cart{
		ID:            r.Get("id").String(),
		CheckoutURL:   r.Get("checkoutUrl").String(),
		TotalQuantity: int(r.Get("totalQuantity").Int()),
		Cost: models.CartCost{
			Subtotal: toMoney(r.Get("cost.subtotalAmount")),
			Total:    toMoney(r.Get("cost.totalAmount")),
			TotalTax: toMoneyPtr(r.Get("cost.totalTaxAmount")),
		},
		Lines: []models.CartLine{},
	}
	for _, l := range r.Get("lines.nodes").Array() {
		m := l.Get("merchandise")
		cart.Lines = append(cart.Lines, models.CartLine{
			ID:       l.Get("id").String(),
			Quantity: int(l.Get("quantity").Int()),
			Cost:     toMoney(l.Get("cost.totalAmount")),
			Merchandise: models.CartMerchandise{
				VariantID:         m.Get("id").String(),
				Title:             m.Get("title").String(),
				ProductHandle:     m.Get("product.handle").String(),
				ProductTitle:      m.Get("product.title").String(),
				QuantityAvailable: toIntPtr(m.Get("quantityAvailable")),
				Price:             toMoney(m.Get("price")),
				SelectedOptions:   toSelectedOptions(m.Get("selectedOptions")),
				Image:             toImage(m.Get("image")),
			},
		})
	}
	return cart
}

// ════════════════════════════════════════════════════════════
// Customer
// ════════════════════════════════════════════════════════════

func normalizeAddress(r gjson.Result) models.Address {
	a := models.Address{
		ID:        r.Get("id").String(),
		FirstName: r.Get("firstName").String(),
		LastName:  r.Get("lastName").String(),
		Address1:  r.Get("address1").String(),
		Address2:  r.Get("address2").String(),
		City:      r.Get("city").String(),
		Province:  r.Get("province").String(),
		Zip:       r.Get("zip").String(),
		Country:   r.Get("country").String(),
	}
	if phone := r.Get("phone"); phone.Type == gjson.String && phone.String() != "" {
		v := phone.String()
		a.Phone = &v
	}
	return a
}

func normalizeCustomer(r gjson.Result) *models.Customer {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	c := &models.Customer{
		ID:               r.Get("id").String(),
		FirstName:        r.Get("firstName").String(),
		LastName:         r.Get("lastName").String(),
		Email:            r.Get("email").String(),
		AcceptsMarketing: r.Get("acceptsMarketing").Bool(),
	}
	if state := r.Get("emailMarketingConsent.marketingState"); state.Exists() {
		c.AcceptsMarketing = state.String() == "SUBSCRIBED"
	}
	if phone := r.Get("phone"); phone.Type == gjson.String && phone.String() != "" {
		v := phone.String()
		c.Phone = &v
	}
	if d := r.Get("defaultAddress"); d.Exists() && d.Type != gjson.Null {
		a := normalizeAddress(d)
		a.IsDefault = true
		c.DefaultAddress = &a
	}
	return c
}

func normalizeOrder(r gjson.Result) models.Order {
	o := models.Order{
		ID:                r.Get("id").String(),
		Name:              r.Get("name").String(),
		OrderNumber:       int(r.Get("orderNumber").Int()),
		FinancialStatus:   r.Get("financialStatus").String(),
		FulfillmentStatus: r.Get("fulfillmentStatus").String(),
		TotalPrice:        toMoney(r.Get("totalPrice")),
		Lines:             []models.OrderLine{},
	}
	if t, err := time.Parse(time.RFC3339, r.Get("processedAt").String()); err == nil {
		o.ProcessedAt = t
	}
	for _, li := range r.Get("lineItems.nodes").Array() {
		o.Lines = append(o.Lines, models.OrderLine{
			Title:     li.Get("title").String(),
			Quantity:  int(li.Get("quantity").Int()),
			VariantID: li.Get("variant.id").String(),
			Price:     toMoneyPtr(li.Get("variant.price")),
		})
	}
	return o
}

// normalizeAdminOrder maps the Admin API order shape onto models.Order.
func normalizeAdminOrder(r gjson.Result) models.Order {
	o := models.Order{
		ID:                r.Get("id").String(),
		Name:              r.Get("name").String(),
		OrderNumber:       orderNumberFromName(r.Get("name").String()),
		FinancialStatus:   r.Get("displayFinancialStatus").String(),
		FulfillmentStatus: r.Get("displayFulfillmentStatus").String(),
		TotalPrice:        toMoney(r.Get("totalPriceSet.shopMoney")),
		Lines:             []models.OrderLine{},
	}
	if t, err := time.Parse(time.RFC3339, r.Get("processedAt").String()); err == nil {
		o.ProcessedAt = t
	}
	for _, li := range r.Get("lineItems.nodes").Array() {
		o.Lines = append(o.Lines, models.OrderLine{
			Title:     li.Get("title").String(),
			Quantity:  int(li.Get("quantity").Int()),
			VariantID: li.Get("variant.id").String(),
			Price:     toMoneyPtr(li.Get("originalUnitPriceSet.shopMoney")),
		})
	}
	return o
}

// orderNumberFromName turns "#1042" into 1042.
func orderNumberFromName(name string) int {
	n := 0
	for _, ch := range strings.TrimPrefix(name, "#") {
		if ch < '0' || ch > '9' {
			return 0
		}
		n = n*10 + int(ch-'0')
	}
	return n
}
