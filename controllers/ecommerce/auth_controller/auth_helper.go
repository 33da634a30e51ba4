package auth_controller

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 10 * 60
)

// PasswordRecoverer sends the password reset email.
type PasswordRecoverer interface {
	RecoverPassword(ctx context.Context, email string) error
}

type Deps struct {
	JWT         *services.JWTService
	Google      *config.GoogleOAuth // nil disables the Google endpoints
	Tracker     *utils.LoginTracker
	Recoverer   PasswordRecoverer
	FrontendURL string
	Secure      bool
	Log         *logrus.Logger
}

var deps Deps

func Init(d Deps) { deps = d }

var errNoCredential = errors.New("login did not produce a session credential")

// issueSession signs the session's credential into the auth cookie and
// records the login.
func issueSession(c *gin.Context, sess *stores.Session, email, provider string) error {
	cred := sess.Auth.Credential()
	if cred == nil {
		return errNoCredential
	}
	token, err := deps.JWT.GenerateSessionJWT(sess.ID, email, *cred)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AuthCookieName, token, int(deps.JWT.Expiry().Seconds()), "/", "", deps.Secure, true)

	customerID := cred.CustomerID
	if st := sess.Auth.State(); st.Customer != nil {
		customerID = st.Customer.ID
	}
	if err := deps.Tracker.Record(c.Request.Context(), utils.NewLoginEvent(c, customerID, provider)); err != nil {
		deps.Log.WithError(err).Warn("⚠️  Failed to log login event")
	}
	return nil
}

func clearAuthCookie(c *gin.Context) {
	c.SetCookie(utils.AuthCookieName, "", -1, "/", "", deps.Secure, true)
}

func statusOf(sess *stores.Session) models.AuthStatusResponse {
	st := sess.Auth.State()
	return models.AuthStatusResponse{
		IsLoggedIn: st.IsLoggedIn,
		Customer:   st.Customer,
		Hydrated:   st.Hydrated,
	}
}

func redirectToFrontendWithError(c *gin.Context, errorMsg string) {
	c.Redirect(http.StatusTemporaryRedirect, deps.FrontendURL+"/auth/error?message="+url.QueryEscape(errorMsg))
}

func googleDisabled(c *gin.Context) bool {
	if deps.Google != nil {
		return false
	}
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not available"))
	return true
}
