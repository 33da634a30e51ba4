package favorites_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

var images *services.ImageService

// Init wires the handlers. img may be nil.
func Init(img *services.ImageService) { images = img }

// ToggleResult is returned by the toggle endpoint.
type ToggleResult struct {
	Handle     string                `json:"handle"`
	IsFavorite bool                  `json:"isFavorite"`
	State      stores.FavoritesState `json:"state"`
}

func stateForResponse(s *stores.Session) stores.FavoritesState {
	st := s.Favorites.State()
	images.RewriteProducts(st.Products)
	return st
}

// GetFavorites godoc
// @Summary Get the session's favorites
// @Tags favorites
// @Produce json
// @Success 200 {object} models.ApiResponse{data=stores.FavoritesState}
// @Router /favorites [get]
func GetFavorites(c *gin.Context) {
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	if err := sess.Favorites.Hydrate(c.Request.Context()); err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Favorites fetched successfully", stateForResponse(sess)))
}

// ToggleFavorite godoc
// @Summary Add or remove a product from favorites
// @Description Flips membership of the handle and refetches every favorite product.
// @Description A failed refetch still returns the new membership.
// @Tags favorites
// @Produce json
// @Param handle path string true "Product handle"
// @Success 200 {object} models.ApiResponse{data=ToggleResult}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /favorites/{handle}/toggle [post]
func ToggleFavorite(c *gin.Context) {
	handle := strings.TrimSpace(c.Param("handle"))
	if handle == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Product handle is required"))
		return
	}
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	before := sess.Favorites.State().Handles
	added, err := sess.Favorites.Toggle(c.Request.Context(), handle)
	if err != nil && !membershipChanged(before, sess.Favorites.State().Handles) {
		// the list itself could not be saved
		utils.RespondGatewayError(c, err)
		return
	}
	if err != nil {
		_ = c.Error(err)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Favorites updated", ToggleResult{
		Handle:     handle,
		IsFavorite: added,
		State:      stateForResponse(sess),
	}))
}

func membershipChanged(before, after []string) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}
