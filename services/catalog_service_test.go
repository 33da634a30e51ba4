package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subcategory_cache "github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

type pagedCatalog struct {
	pages [][]models.Product
	calls atomic.Int32
	err   error
	// gate, when set, holds every call until it is closed
	gate chan struct{}
}

func (p *pagedCatalog) ListProducts(ctx context.Context, first int, after string) (*models.ProductPage, error) {
	p.calls.Add(1)
	if p.gate != nil {
		<-p.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	idx := 0
	if after != "" {
		idx = int(after[0] - '0')
	}
	page := &models.ProductPage{Products: p.pages[idx]}
	if idx+1 < len(p.pages) {
		page.PageInfo = models.PageInfo{HasNextPage: true, EndCursor: string(rune('0' + idx + 1))}
	}
	return page, nil
}

func product(handle string, subs ...string) models.Product {
	p := models.Product{Handle: handle, Facets: []models.Facet{}}
	for _, s := range subs {
		p.Facets = append(p.Facets, models.Facet{Group: models.FacetSubcategory, Value: s})
	}
	return p
}

func TestSubcategories_CountsAcrossPages(t *testing.T) {
	subcategory_cache.Invalidate()
	t.Cleanup(subcategory_cache.Invalidate)

	gw := &pagedCatalog{pages: [][]models.Product{
		{product("a", "Remeras"), product("b", "Camperas", "Camperas")},
		{product("c", "Remeras"), product("d", "Ñandú"), product("e", "Abrigos")},
	}}
	svc := NewCatalogService(gw, quietLogger())

	got, err := svc.Subcategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.SubcategoryCount{
		{Name: "Abrigos", Count: 1},
		{Name: "Camperas", Count: 1},
		{Name: "Ñandú", Count: 1},
		{Name: "Remeras", Count: 2},
	}, got)
	assert.Equal(t, int32(2), gw.calls.Load())

	// served from cache
	_, err = svc.Subcategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), gw.calls.Load())
}

func TestSubcategories_ErrorIsNotCached(t *testing.T) {
	subcategory_cache.Invalidate()
	t.Cleanup(subcategory_cache.Invalidate)

	gw := &pagedCatalog{err: errors.New("backend down")}
	svc := NewCatalogService(gw, quietLogger())

	_, err := svc.Subcategories(context.Background())
	require.Error(t, err)
	_, ok := subcategory_cache.Get()
	assert.False(t, ok)
}

func TestSubcategories_CancelledCallerDoesNotFailOthers(t *testing.T) {
	subcategory_cache.Invalidate()
	t.Cleanup(subcategory_cache.Invalidate)

	gw := &pagedCatalog{pages: [][]models.Product{{product("a", "Remeras")}}, gate: make(chan struct{})}
	svc := NewCatalogService(gw, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Subcategories(ctx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return gw.calls.Load() == 1 }, time.Second, time.Millisecond)

	second := make(chan []models.SubcategoryCount, 1)
	go func() {
		got, err := svc.Subcategories(context.Background())
		assert.NoError(t, err)
		second <- got
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(gw.gate)
	assert.Equal(t, []models.SubcategoryCount{{Name: "Remeras", Count: 1}}, <-second)
	assert.Equal(t, int32(1), gw.calls.Load())
}
