package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GoogleLogin godoc
// @Summary Redirect to Google OAuth
// @Description Starts the Google OAuth flow by generating a state token, storing it in a secure cookie, and redirecting the user to Google's OAuth consent page.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Temporary redirect to Google OAuth"
// @Failure 503 {object} models.ApiResponse "Google sign-in disabled"
// @Router /auth/google [get]
func GoogleLogin(c *gin.Context) {
	if googleDisabled(c) {
		return
	}
	state := uuid.NewString()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", deps.Secure, true)

	deps.Log.Debug("🔐 Redirecting to Google consent page")
	c.Redirect(http.StatusTemporaryRedirect, deps.Google.Config.AuthCodeURL(state))
}
