package commerce

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const maxPageSize = 250

func clampFirst(first int) int {
	if first <= 0 {
		return 24
	}
	if first > maxPageSize {
		return maxPageSize
	}
	return first
}

func cursor(after string) any {
	if after == "" {
		return nil
	}
	return after
}

// GetProduct returns nil when no product has the handle.
func (c *Client) GetProduct(ctx context.Context, handle string) (*models.Product, error) {
	data, err := c.storefront(ctx, "product", queryProductByHandle, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	node := data.Get("product")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}
	p := normalizeProduct(node, c.now())
	return &p, nil
}

// GetProductsByHandles fetches several products in one request. The result
// keeps the order of handles and skips handles that no longer exist.
func (c *Client) GetProductsByHandles(ctx context.Context, handles []string) ([]models.Product, error) {
	if len(handles) == 0 {
		return []models.Product{}, nil
	}

	var params, fields []string
	vars := make(map[string]any, len(handles))
	for i, h := range handles {
		name := fmt.Sprintf("h%d", i)
		params = append(params, fmt.Sprintf("$%s: String!", name))
		fields = append(fields, fmt.Sprintf("p%d: product(handle: $%s) { ...ProductFields }", i, name))
		vars[name] = h
	}
	query := fmt.Sprintf("query ProductsByHandles(%s) {\n  %s\n}\n", strings.Join(params, ", "), strings.Join(fields, "\n  ")) + productFragment

	data, err := c.storefront(ctx, "productsByHandles", query, vars)
	if err != nil {
		return nil, err
	}
	now := c.now()
	out := make([]models.Product, 0, len(handles))
	for i := range handles {
		node := data.Get(fmt.Sprintf("p%d", i))
		if !node.Exists() || node.Type == gjson.Null {
			continue
		}
		out = append(out, normalizeProduct(node, now))
	}
	return out, nil
}

// ListProducts pages through the whole catalog, newest first.
func (c *Client) ListProducts(ctx context.Context, first int, after string) (*models.ProductPage, error) {
	data, err := c.storefront(ctx, "products", queryProducts, map[string]any{
		"first": clampFirst(first),
		"after": cursor(after),
	})
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{
		Products: normalizeProducts(data.Get("products.nodes"), c.now()),
		PageInfo: toPageInfo(data.Get("products.pageInfo")),
	}, nil
}

func (c *Client) GetRecommendations(ctx context.Context, productID string) ([]models.Product, error) {
	data, err := c.storefront(ctx, "productRecommendations", queryRecommendations, map[string]any{"productId": productID})
	if err != nil {
		return nil, err
	}
	return normalizeProducts(data.Get("productRecommendations"), c.now()), nil
}

// GetCollection returns one page of a collection, or nil when the handle is unknown.
func (c *Client) GetCollection(ctx context.Context, handle string, first int, after string) (*models.CollectionPage, error) {
	data, err := c.storefront(ctx, "collection", queryCollection, map[string]any{
		"handle": handle,
		"first":  clampFirst(first),
		"after":  cursor(after),
	})
	if err != nil {
		return nil, err
	}
	node := data.Get("collection")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}
	return &models.CollectionPage{
		Collection: models.Collection{
			ID:          node.Get("id").String(),
			Handle:      node.Get("handle").String(),
			Title:       node.Get("title").String(),
			Description: node.Get("description").String(),
			Image:       toImage(node.Get("image")),
		},
		Products: normalizeProducts(node.Get("products.nodes"), c.now()),
		PageInfo: toPageInfo(node.Get("products.pageInfo")),
	}, nil
}

func (c *Client) PredictiveSearch(ctx context.Context, query string, limit int) (*models.SearchSuggestions, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	data, err := c.storefront(ctx, "predictiveSearch", queryPredictiveSearch, map[string]any{
		"query": query,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}
	res := &models.SearchSuggestions{
		Queries:     []string{},
		Products:    []models.ProductSuggestion{},
		Collections: []models.CollectionSuggestion{},
	}
	ps := data.Get("predictiveSearch")
	for _, q := range ps.Get("queries").Array() {
		res.Queries = append(res.Queries, q.Get("text").String())
	}
	for _, p := range ps.Get("products").Array() {
		res.Products = append(res.Products, models.ProductSuggestion{
			Title:  p.Get("title").String(),
			Handle: p.Get("handle").String(),
			Price:  toMoney(p.Get("priceRange.minVariantPrice")),
			Image:  toImage(p.Get("featuredImage")),
		})
	}
	for _, col := range ps.Get("collections").Array() {
		res.Collections = append(res.Collections, models.CollectionSuggestion{
			Title:  col.Get("title").String(),
			Handle: col.Get("handle").String(),
		})
	}
	return res, nil
}

// GetMenu returns nil when the menu handle is unknown.
func (c *Client) GetMenu(ctx context.Context, handle string) (*models.Menu, error) {
	data, err := c.storefront(ctx, "menu", queryMenu, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	node := data.Get("menu")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}
	return &models.Menu{
		ID:     node.Get("id").String(),
		Handle: node.Get("handle").String(),
		Title:  node.Get("title").String(),
		Items:  menuItems(node.Get("items")),
	}, nil
}

func menuItems(r gjson.Result) []models.MenuItem {
	out := []models.MenuItem{}
	for _, it := range r.Array() {
		item := models.MenuItem{
			Title: it.Get("title").String(),
			URL:   it.Get("url").String(),
			Type:  it.Get("type").String(),
		}
		if children := it.Get("items"); len(children.Array()) > 0 {
			item.Items = menuItems(children)
		}
		out = append(out, item)
	}
	return out
}
