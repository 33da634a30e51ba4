package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// Status godoc
// @Summary Check the session's login state
// @Description Confirms the stored credential against the backend. Any failure logs the session out.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.AuthStatusResponse}
// @Router /auth/status [get]
func Status(c *gin.Context) {
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	if !sess.Auth.CheckAuthStatus(c.Request.Context()) {
		clearAuthCookie(c)
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Auth status", statusOf(sess)))
}

// Logout godoc
// @Summary Logout
// @Description Revokes the access token when there is one, clears the session and the auth_token cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	if err := sess.Auth.Logout(c.Request.Context()); err != nil {
		_ = c.Error(err)
	}
	clearAuthCookie(c)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}
