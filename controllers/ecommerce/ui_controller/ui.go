package ui_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores"
)

func respond(c *gin.Context, apply func(*stores.UIStore) stores.UIState) {
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "UI state", apply(sess.UI)))
}

// GetUIState godoc
// @Summary Get overlay state
// @Tags ui
// @Produce json
// @Success 200 {object} models.ApiResponse{data=stores.UIState}
// @Router /ui [get]
func GetUIState(c *gin.Context) {
	respond(c, (*stores.UIStore).State)
}

// ToggleMenu godoc
// @Summary Toggle the navigation drawer
// @Description Opening the menu closes the search overlay
// @Tags ui
// @Produce json
// @Success 200 {object} models.ApiResponse{data=stores.UIState}
// @Router /ui/menu/toggle [post]
func ToggleMenu(c *gin.Context) {
	respond(c, (*stores.UIStore).ToggleMenu)
}

// ToggleSearch godoc
// @Summary Toggle the search overlay
// @Description Opening search closes the navigation drawer
// @Tags ui
// @Produce json
// @Success 200 {object} models.ApiResponse{data=stores.UIState}
// @Router /ui/search/toggle [post]
func ToggleSearch(c *gin.Context) {
	respond(c, (*stores.UIStore).ToggleSearch)
}

// CloseAll godoc
// @Summary Close every overlay
// @Tags ui
// @Produce json
// @Success 200 {object} models.ApiResponse{data=stores.UIState}
// @Router /ui/close [post]
func CloseAll(c *gin.Context) {
	respond(c, (*stores.UIStore).CloseAll)
}
