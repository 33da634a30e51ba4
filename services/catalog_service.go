package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	subcategory_cache "github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const (
	catalogPageSize = 250
	// a catalog deeper than this is truncated rather than walked forever
	catalogMaxPages = 40
)

// catalogWalkTimeout bounds the shared walk, which outlives the request that
// started it.
const catalogWalkTimeout = 2 * time.Minute

type CatalogGateway interface {
	ListProducts(ctx context.Context, first int, after string) (*models.ProductPage, error)
}

// CatalogService aggregates data across the whole catalog.
type CatalogService struct {
	gw    CatalogGateway
	log   *logrus.Entry
	group singleflight.Group
}

func NewCatalogService(gw CatalogGateway, log *logrus.Logger) *CatalogService {
	return &CatalogService{gw: gw, log: log.WithField("component", "catalog")}
}

// Subcategories counts products per subcategory facet, sorted by name. The
// result is cached for an hour; concurrent misses share one catalog walk,
// which keeps going when the caller that started it goes away.
func (s *CatalogService) Subcategories(ctx context.Context) ([]models.SubcategoryCount, error) {
	if data, ok := subcategory_cache.Get(); ok {
		return data, nil
	}

	ch := s.group.DoChan("subcategories", func() (any, error) {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogWalkTimeout)
		defer cancel()
		counts, err := s.countSubcategories(wctx)
		if err != nil {
			return nil, err
		}
		subcategory_cache.Set(counts)
		return counts, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.SubcategoryCount), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *CatalogService) countSubcategories(ctx context.Context) ([]models.SubcategoryCount, error) {
	counts := make(map[string]int)
	after := ""
	for page := 0; page < catalogMaxPages; page++ {
		res, err := s.gw.ListProducts(ctx, catalogPageSize, after)
		if err != nil {
			return nil, fmt.Errorf("list products page %d: %w", page, err)
		}
		if res == nil {
			break
		}
		for _, p := range res.Products {
			facets := p.Facets
			if facets == nil {
				facets = catalog.ExtractFacets(p)
			}
			seen := make(map[string]bool)
			for _, f := range facets {
				if f.Group != models.FacetSubcategory || seen[f.Value] {
					continue
				}
				seen[f.Value] = true
				counts[f.Value]++
			}
		}
		if !res.PageInfo.HasNextPage || res.PageInfo.EndCursor == "" {
			break
		}
		after = res.PageInfo.EndCursor
		if page == catalogMaxPages-1 {
			s.log.WithField("pages", catalogMaxPages).Warn("[catalog] subcategory walk truncated")
		}
	}

	out := make([]models.SubcategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.SubcategoryCount{Name: name, Count: n})
	}
	col := collate.New(language.Spanish, collate.Loose, collate.Numeric)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	s.log.WithField("subcategories", len(out)).Info("[catalog] subcategory aggregation refreshed")
	return out, nil
}
