package models

import (
	"errors"
	"strings"
)

// Facet group keys used across the storefront.
const (
	FacetSubcategory = "subcategory"
	FacetColor       = "Color"
	FacetSize        = "Talle"
	FacetSeason      = "Temporada"
)

var ErrInvalidFacet = errors.New("invalid facet token")

// Facet is a typed group/value pair, validated when the product is ingested.
type Facet struct {
	Group string `json:"group"`
	Value string `json:"value"`
}

// Token renders the facet in its "Group:Value" wire form.
func (f Facet) Token() string {
	return f.Group + ":" + f.Value
}

// ParseFacetToken splits a "Group:Value" token on its first colon.
// Both sides are trimmed and must be non-empty.
func ParseFacetToken(token string) (Facet, error) {
	group, value, ok := strings.Cut(token, ":")
	if !ok {
		return Facet{}, ErrInvalidFacet
	}
	group = strings.TrimSpace(group)
	value = strings.TrimSpace(value)
	if group == "" || value == "" {
		return Facet{}, ErrInvalidFacet
	}
	return Facet{Group: group, Value: value}, nil
}

// FilterGroup is one facet group offered to the shopper.
type FilterGroup struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// FilterGroups splits the groups between the inline bar and the modal overlay.
type FilterGroups struct {
	Primary []FilterGroup `json:"primary"`
	Modal   []FilterGroup `json:"modal"`
}

// PriceRangeData represents the minimum and maximum price of a listing.
type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SubcategoryCount is one row of the cached subcategory aggregation.
type SubcategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
