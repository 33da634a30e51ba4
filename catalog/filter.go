package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// ParseSortMode maps a query value to a SortMode; unknown values mean default.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	}
	return SortDefault
}

// PriceBounds is an inclusive price interval.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b PriceBounds) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

func (b PriceBounds) covers(o PriceBounds) bool {
	return b.Min <= o.Min && b.Max >= o.Max
}

// FilterState is the page-local filter selection. A nil Price means the
// default bounds of the listing.
type FilterState struct {
	Active []string
	Price  *PriceBounds
	Sort   SortMode
}

// Bounds returns the price interval spanned by the products' minimum prices.
func Bounds(products []models.Product) PriceBounds {
	if len(products) == 0 {
		return PriceBounds{}
	}
	b := PriceBounds{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, p := range products {
		v := p.MinPrice()
		b.Min = math.Min(b.Min, v)
		b.Max = math.Max(b.Max, v)
	}
	return b
}

// activeGroups groups valid tokens by key. Invalid tokens are ignored. Size
// values go through NormalizeSize so "tu" and "Talla Única" select "TU".
func activeGroups(tokens []string) map[string][]string {
	groups := make(map[string][]string)
	for _, t := range tokens {
		f, err := models.ParseFacetToken(t)
		if err != nil {
			continue
		}
		if strings.EqualFold(f.Group, models.FacetSize) {
			f.Group, f.Value = models.FacetSize, NormalizeSize(f.Value)
		}
		groups[f.Group] = append(groups[f.Group], f.Value)
	}
	return groups
}

// Apply filters and sorts a product list. Within a group any active value
// matches, every active group must match, and the product's minimum price
// must lie in the (inclusive) price bounds. The input slice is not modified.
func Apply(products []models.Product, state FilterState) []models.Product {
	groups := activeGroups(state.Active)

	if len(groups) == 0 && (state.Price == nil || state.Price.covers(Bounds(products))) {
		out := append([]models.Product(nil), products...)
		sortProducts(out, state.Sort)
		return out
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if state.Price != nil && !state.Price.contains(p.MinPrice()) {
			continue
		}
		if !matchesGroups(p, groups) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, state.Sort)
	return out
}

func matchesGroups(p models.Product, groups map[string][]string) bool {
	for group, values := range groups {
		matched := false
		for _, v := range values {
			if p.HasFacet(group, v) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func sortProducts(products []models.Product, mode SortMode) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].MinPrice() < products[j].MinPrice()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].MinPrice() > products[j].MinPrice()
		})
	}
}
