package catalog

import (
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// modal groups that always come first, in this order
var fixedModalGroups = []string{models.FacetColor, models.FacetSize, models.FacetSeason}

var groupLabels = map[string]string{
	models.FacetSubcategory: "Categoría",
	models.FacetColor:       "Color",
	models.FacetSize:        "Talle",
	models.FacetSeason:      "Temporada",
}

type groupAcc struct {
	values []string
	seen   map[string]bool
}

func (g *groupAcc) add(v string) {
	if g.seen[v] {
		return
	}
	g.seen[v] = true
	g.values = append(g.values, v)
}

// BuildFilterGroups derives the inline (primary) and overlay (modal) filter
// groups from the facets of a product list. Values are deduplicated; the size
// group is sorted by SortSizes, the others keep first-seen order.
func BuildFilterGroups(products []models.Product) models.FilterGroups {
	acc := make(map[string]*groupAcc)
	var customOrder []string

	for _, p := range products {
		facets := p.Facets
		if facets == nil {
			facets = ExtractFacets(p)
		}
		for _, f := range facets {
			g, ok := acc[f.Group]
			if !ok {
				g = &groupAcc{seen: make(map[string]bool)}
				acc[f.Group] = g
				if !isFixedGroup(f.Group) {
					customOrder = append(customOrder, f.Group)
				}
			}
			g.add(f.Value)
		}
	}

	groups := models.FilterGroups{
		Primary: []models.FilterGroup{},
		Modal:   []models.FilterGroup{},
	}
	if g, ok := acc[models.FacetSubcategory]; ok {
		groups.Primary = append(groups.Primary, newGroup(models.FacetSubcategory, g.values))
	}
	for _, key := range fixedModalGroups {
		g, ok := acc[key]
		if !ok {
			continue
		}
		values := g.values
		if key == models.FacetSize {
			SortSizes(values)
		}
		groups.Modal = append(groups.Modal, newGroup(key, values))
	}
	sortCollated(customOrder)
	for _, key := range customOrder {
		groups.Modal = append(groups.Modal, newGroup(key, acc[key].values))
	}
	return groups
}

func isFixedGroup(key string) bool {
	if key == models.FacetSubcategory {
		return true
	}
	for _, k := range fixedModalGroups {
		if k == key {
			return true
		}
	}
	return false
}

func newGroup(key string, values []string) models.FilterGroup {
	label, ok := groupLabels[key]
	if !ok {
		label = key
	}
	return models.FilterGroup{Key: key, Label: label, Values: values}
}
