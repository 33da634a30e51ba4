// Package catalog derives facet groups from product snapshots and filters and
// sorts product listings. Everything here is pure and runs over products that
// were already fetched.
package catalog

import (
	"sort"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var (
	colorOptionNames = map[string]bool{"color": true, "colour": true}
	sizeOptionNames  = map[string]bool{"talle": true, "talla": true, "size": true}
)

// ExtractFacets builds the typed facet list of a product. Malformed tags and
// empty values are dropped silently; the result carries each pair once, in
// first-seen order.
func ExtractFacets(p models.Product) []models.Facet {
	seen := make(map[models.Facet]bool)
	var out []models.Facet
	add := func(group, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		f := models.Facet{Group: group, Value: value}
		if seen[f] {
			return
		}
		seen[f] = true
		out = append(out, f)
	}

	for _, tag := range p.Tags {
		f, err := models.ParseFacetToken(tag)
		if err != nil {
			continue
		}
		if strings.EqualFold(f.Group, models.FacetSubcategory) {
			add(models.FacetSubcategory, f.Value)
		}
	}

	for _, o := range p.Options {
		name := strings.ToLower(strings.TrimSpace(o.Name))
		switch {
		case colorOptionNames[name]:
			for _, v := range o.Values {
				add(models.FacetColor, v)
			}
		case sizeOptionNames[name]:
			for _, v := range o.Values {
				add(models.FacetSize, NormalizeSize(v))
			}
		}
	}

	if c := p.Metafields.Color; c != nil {
		if strings.TrimSpace(c.Name) != "" {
			add(models.FacetColor, c.Name)
		} else {
			add(models.FacetColor, c.Hex)
		}
	}
	for _, v := range SplitSizes(p.Metafields.Size) {
		add(models.FacetSize, v)
	}
	add(models.FacetSeason, p.Metafields.Season)

	keys := make([]string, 0, len(p.Metafields.Custom))
	for k := range p.Metafields.Custom {
		if strings.TrimSpace(k) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(strings.TrimSpace(k), p.Metafields.Custom[k])
	}

	return out
}
