package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetCollectionProducts godoc
// @Summary Get collection products with filters
// @Description Fetches one page of a collection and applies facet, price and sort filters to it.
// @Description Filter groups and the price range are built from the unfiltered page.
// @Tags store
// @Produce json
// @Param handle path string true "Collection handle"
// @Param first query int false "Page size" default(48)
// @Param after query string false "Cursor"
// @Param filter query []string false "Facet tokens, e.g. Color:Rojo" collectionFormat(multi)
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sort query string false "default | price-asc | price-desc"
// @Success 200 {object} models.ApiResponse{data=models.CollectionListing,meta=models.CursorMeta}
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/collections/{handle} [get]
func GetCollectionProducts(c *gin.Context) {
	first := parsePageSize(c)
	page, err := gateway.GetCollection(c.Request.Context(), c.Param("handle"), first, c.Query("after"))
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection not found"))
		return
	}

	bounds := catalog.Bounds(page.Products)
	filtered := catalog.Apply(page.Products, parseFilterState(c, bounds))
	rewriteImages(filtered)

	listing := models.CollectionListing{
		Collection: page.Collection,
		Products:   toCards(filtered),
		Filters:    catalog.BuildFilterGroups(page.Products),
		PriceRange: models.PriceRangeData{Min: bounds.Min, Max: bounds.Max},
		PageInfo:   page.PageInfo,
		Total:      len(filtered),
	}
	meta := models.NewCursorMeta(first, len(page.Products), page.PageInfo)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Collection fetched successfully", listing, meta))
}
