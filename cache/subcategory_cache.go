package subcategory_cache

import (
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const TTL = time.Hour

// ── Subcategory aggregation cache ────────────────────────────────────────────
// Counts of subcategory facets across the whole catalog. Walking the catalog
// costs several storefront pages, so the result is kept for an hour.

type entry struct {
	data      []models.SubcategoryCount
	fetchedAt time.Time
}

var (
	mu     sync.RWMutex
	cached *entry
	now    = time.Now
)

func Get() ([]models.SubcategoryCount, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if cached != nil && now().Sub(cached.fetchedAt) < TTL {
		return cached.data, true
	}
	return nil, false
}

func Set(data []models.SubcategoryCount) {
	mu.Lock()
	defer mu.Unlock()
	cached = &entry{data: data, fetchedAt: now()}
}

// FetchedAt reports when the cached value was stored.
func FetchedAt() (time.Time, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if cached == nil {
		return time.Time{}, false
	}
	return cached.fetchedAt, true
}

// ── Invalidate (catalog webhook or manual refresh) ───────────────────────────

func Invalidate() {
	mu.Lock()
	cached = nil
	mu.Unlock()
}
