package filter_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

type CollectionGateway interface {
	GetCollection(ctx context.Context, handle string, first int, after string) (*models.CollectionPage, error)
}

var gateway CollectionGateway

func Init(gw CollectionGateway) { gateway = gw }

// metadataPageSize is the backend's page size ceiling.
const metadataPageSize = 250

// FilterMetadata is the response of the filters endpoint.
type FilterMetadata struct {
	Filters    models.FilterGroups   `json:"filters"`
	PriceRange models.PriceRangeData `json:"priceRange"`
	Products   int                   `json:"products"`
}

// GetCollectionFilters godoc
// @Summary Get filter metadata for a collection
// @Description Returns the filter groups and price range of a collection without the product list
// @Tags store
// @Produce json
// @Param handle path string true "Collection handle"
// @Success 200 {object} models.ApiResponse{data=FilterMetadata}
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/collections/{handle}/filters [get]
func GetCollectionFilters(c *gin.Context) {
	page, err := gateway.GetCollection(c.Request.Context(), c.Param("handle"), metadataPageSize, "")
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection not found"))
		return
	}

	bounds := catalog.Bounds(page.Products)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched successfully", FilterMetadata{
		Filters:    catalog.BuildFilterGroups(page.Products),
		PriceRange: models.PriceRangeData{Min: bounds.Min, Max: bounds.Max},
		Products:   len(page.Products),
	}))
}
