package menu_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// MenuSource is satisfied by stores.MenuStore.
type MenuSource interface {
	Get(ctx context.Context, handle string) (*models.Menu, error)
}

var (
	menus MenuSource
	log   *logrus.Logger
)

func Init(src MenuSource, logger *logrus.Logger) {
	menus = src
	log = logger
}

// GetMenu godoc
// @Summary Get a navigation menu
// @Description Menus are cached in process. When a refresh fails the last good copy is served.
// @Tags store
// @Produce json
// @Param handle path string true "Menu handle" example(main-menu)
// @Success 200 {object} models.ApiResponse{data=models.Menu}
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/menus/{handle} [get]
func GetMenu(c *gin.Context) {
	handle := c.Param("handle")

	menu, err := menus.Get(c.Request.Context(), handle)
	if err != nil {
		if menu == nil {
			utils.RespondGatewayError(c, err)
			return
		}
		log.WithError(err).WithField("handle", handle).Warn("[menu] serving stale menu")
	}
	if menu == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Menu not found"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Menu fetched successfully", menu))
}
