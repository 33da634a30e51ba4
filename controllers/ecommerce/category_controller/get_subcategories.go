package category_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

type SubcategorySource interface {
	Subcategories(ctx context.Context) ([]models.SubcategoryCount, error)
}

var source SubcategorySource

func Init(s SubcategorySource) { source = s }

// GetSubcategories godoc
// @Summary Get subcategories with product counts
// @Description Counts products per subcategory across the whole catalog. Cached for an hour.
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.SubcategoryCount}
// @Failure 502 {object} models.ApiResponse
// @Router /store/subcategories [get]
func GetSubcategories(c *gin.Context) {
	counts, err := source.Subcategories(c.Request.Context())
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if counts == nil {
		counts = []models.SubcategoryCount{}
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Subcategories fetched successfully", counts))
}
