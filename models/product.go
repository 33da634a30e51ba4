package models

import (
	"strconv"
	"time"
)

// ═══════════════════════════════════════════════════════════
// Money
// ═══════════════════════════════════════════════════════════

type Money struct {
	Amount       float64 `json:"amount" example:"15999.00"`
	CurrencyCode string  `json:"currencyCode" example:"ARS"`
}

// ParseMoney converts the decimal string the commerce backend returns into Money.
// Unparseable amounts become zero.
func ParseMoney(amount, currency string) Money {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		v = 0
	}
	return Money{Amount: v, CurrencyCode: currency}
}

type PriceRange struct {
	Min Money `json:"min"`
	Max Money `json:"max"`
}

// ═══════════════════════════════════════════════════════════
// Product
// ═══════════════════════════════════════════════════════════

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type ProductOption struct {
	Name   string   `json:"name" example:"Talle"`
	Values []string `json:"values" example:"S,M,L"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable *int             `json:"quantityAvailable,omitempty"`
	Price             Money            `json:"price"`
	CompareAtPrice    *Money           `json:"compareAtPrice,omitempty"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
	Image             *Image           `json:"image,omitempty"`
}

// ColorSwatch is the product-level color metafield.
type ColorSwatch struct {
	Name string `json:"name,omitempty"`
	Hex  string `json:"hex,omitempty"`
}

type ProductMetafields struct {
	Color  *ColorSwatch      `json:"color,omitempty"`
	Size   string            `json:"size,omitempty"`
	Season string            `json:"season,omitempty"`
	Custom map[string]string `json:"custom,omitempty"`
}

// Product is an immutable snapshot of a catalog product as returned by the
// commerce backend, plus the flags and facets derived at ingestion.
type Product struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Handle              string            `json:"handle"`
	Description         string            `json:"description,omitempty"`
	Vendor              string            `json:"vendor,omitempty"`
	ProductType         string            `json:"productType,omitempty"`
	Tags                []string          `json:"tags"`
	CreatedAt           time.Time         `json:"createdAt"`
	PriceRange          PriceRange        `json:"priceRange"`
	CompareAtPriceRange *PriceRange       `json:"compareAtPriceRange,omitempty"`
	Options             []ProductOption   `json:"options"`
	Variants            []Variant         `json:"variants"`
	Metafields          ProductMetafields `json:"metafields"`
	Facets              []Facet           `json:"facets"`
	FeaturedImage       *Image            `json:"featuredImage,omitempty"`
	Images              []Image           `json:"images,omitempty"`
	AvailableForSale    bool              `json:"availableForSale"`
	IsNew               bool              `json:"isNew"`
	OnSale              bool              `json:"onSale"`
}

// MinPrice is the lowest variant price, used for price filtering and sorting.
func (p Product) MinPrice() float64 {
	return p.PriceRange.Min.Amount
}

// Option returns the named product option, if present.
func (p Product) Option(name string) (ProductOption, bool) {
	for _, o := range p.Options {
		if o.Name == name {
			return o, true
		}
	}
	return ProductOption{}, false
}

// HasFacet reports whether the product carries the given group/value pair.
func (p Product) HasFacet(group, value string) bool {
	for _, f := range p.Facets {
		if f.Group == group && f.Value == value {
			return true
		}
	}
	return false
}

// FacetValues returns every value the product carries for a group.
func (p Product) FacetValues(group string) []string {
	var out []string
	for _, f := range p.Facets {
		if f.Group == group {
			out = append(out, f.Value)
		}
	}
	return out
}

// ProductCard is the thin representation used by listings.
type ProductCard struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Handle        string     `json:"handle"`
	PriceRange    PriceRange `json:"priceRange"`
	FeaturedImage *Image     `json:"featuredImage,omitempty"`
	IsNew         bool       `json:"isNew"`
	OnSale        bool       `json:"onSale"`
}

func (p Product) ToCard() ProductCard {
	return ProductCard{
		ID:            p.ID,
		Title:         p.Title,
		Handle:        p.Handle,
		PriceRange:    p.PriceRange,
		FeaturedImage: p.FeaturedImage,
		IsNew:         p.IsNew,
		OnSale:        p.OnSale,
	}
}
