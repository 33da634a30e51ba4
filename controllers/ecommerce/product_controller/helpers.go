package product_controller

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// Gateway is the catalog surface of the commerce backend.
type Gateway interface {
	GetProduct(ctx context.Context, handle string) (*models.Product, error)
	GetProductsByHandles(ctx context.Context, handles []string) ([]models.Product, error)
	GetRecommendations(ctx context.Context, productID string) ([]models.Product, error)
	GetCollection(ctx context.Context, handle string, first int, after string) (*models.CollectionPage, error)
}

var (
	gateway Gateway
	images  *services.ImageService
)

// Init wires the handlers. images may be nil.
func Init(gw Gateway, img *services.ImageService) {
	gateway = gw
	images = img
}

const (
	maxHandles      = 50
	defaultPageSize = 48
	maxPageSize     = 250
)

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// parseHandles accepts ?handles=a,b and repeated ?handles=a&handles=b.
func parseHandles(c *gin.Context) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range c.QueryArray("handles") {
		for _, h := range strings.Split(raw, ",") {
			h = strings.TrimSpace(h)
			if h == "" || seen[h] {
				continue
			}
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}

func parsePageSize(c *gin.Context) int {
	first, err := strconv.Atoi(c.DefaultQuery("first", strconv.Itoa(defaultPageSize)))
	if err != nil || first < 1 || first > maxPageSize {
		return defaultPageSize
	}
	return first
}

// parseFilterState reads ?filter=Group:Value (repeatable or comma separated),
// ?minPrice, ?maxPrice and ?sort. A missing price bound falls back to the
// listing's own bound.
func parseFilterState(c *gin.Context, bounds catalog.PriceBounds) catalog.FilterState {
	state := catalog.FilterState{Sort: catalog.ParseSortMode(c.Query("sort"))}

	for _, raw := range c.QueryArray("filter") {
		for _, tok := range strings.Split(raw, ",") {
			tok = strings.TrimSpace(tok)
			if _, err := models.ParseFacetToken(tok); err == nil {
				state.Active = append(state.Active, tok)
			}
		}
	}

	minStr, maxStr := c.Query("minPrice"), c.Query("maxPrice")
	if minStr == "" && maxStr == "" {
		return state
	}
	price := bounds
	if v, ok := parsePrice(minStr); ok {
		price.Min = v
	}
	if v, ok := parsePrice(maxStr); ok {
		price.Max = v
	}
	state.Price = &price
	return state
}

// parsePrice accepts finite numbers only; NaN and Inf count as absent.
func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func rewriteImages(products []models.Product) {
	if images != nil {
		images.RewriteProducts(products)
	}
}

func toCards(products []models.Product) []models.ProductCard {
	cards := make([]models.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, p.ToCard())
	}
	return cards
}
