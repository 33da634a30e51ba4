package search_controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

type SearchGateway interface {
	PredictiveSearch(ctx context.Context, query string, limit int) (*models.SearchSuggestions, error)
}

var (
	gateway SearchGateway
	images  *services.ImageService
)

// Init wires the handlers. images may be nil.
func Init(gw SearchGateway, img *services.ImageService) {
	gateway = gw
	images = img
}

const (
	defaultLimit   = 6
	maxLimit       = 10
	maxQueryLength = 100
	thumbnailWidth = 160
)

func emptySuggestions() *models.SearchSuggestions {
	return &models.SearchSuggestions{
		Queries:     []string{},
		Products:    []models.ProductSuggestion{},
		Collections: []models.CollectionSuggestion{},
	}
}

// GetSuggestions godoc
// @Summary Predictive search suggestions
// @Description Returns query completions, products and collections for a partial search term.
// @Description A blank term returns empty lists without calling the backend.
// @Tags store
// @Produce json
// @Param q query string true "Search term"
// @Param limit query int false "Max suggestions per kind" default(6)
// @Success 200 {object} models.ApiResponse{data=models.SearchSuggestions}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/search/suggestions [get]
func GetSuggestions(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No search term", emptySuggestions()))
		return
	}
	if utf8.RuneCountInString(q) > maxQueryLength {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Search term is too long"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	res, err := gateway.PredictiveSearch(c.Request.Context(), q, limit)
	if err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if res == nil {
		res = emptySuggestions()
	}

	if images.Enabled() {
		for i, p := range res.Products {
			if p.Image == nil {
				continue
			}
			img := *p.Image
			img.URL = images.FetchURL(img.URL, thumbnailWidth)
			res.Products[i].Image = &img
		}
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Suggestions fetched successfully", res))
}
