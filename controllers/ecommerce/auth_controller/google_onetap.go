package auth_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

type oneTapClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// GoogleOneTap godoc
// @Summary Sign in with a Google One Tap credential
// @Description Verifies the id_token against Google's keys and signs the session in.
// @Tags Auth - Google OAuth
// @Accept json
// @Produce json
// @Param request body models.OneTapRequest true "One Tap credential"
// @Success 200 {object} models.ApiResponse{data=models.AuthStatusResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /auth/google/onetap [post]
func GoogleOneTap(c *gin.Context) {
	if googleDisabled(c) {
		return
	}
	var req models.OneTapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Missing credential"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), googleTimeout)
	defer cancel()

	idToken, err := deps.Google.Verifier.Verify(ctx, req.Credential)
	if err != nil {
		deps.Log.WithError(err).Warn("❌ One Tap token rejected")
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid Google credential"))
		return
	}
	var claims oneTapClaims
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid Google credential"))
		return
	}

	identity, err := identityFromUserInfo(models.GoogleUserInfo{
		Sub:           claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		GivenName:     claims.GivenName,
		FamilyName:    claims.FamilyName,
	})
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, err.Error()))
		return
	}

	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	if _, err := sess.Auth.LoginWithIdentity(ctx, identity); err != nil {
		utils.RespondGatewayError(c, err)
		return
	}
	if err := issueSession(c, sess, identity.Email, "google_onetap"); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged in", statusOf(sess)))
}
