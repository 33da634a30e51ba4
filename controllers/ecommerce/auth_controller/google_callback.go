package auth_controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

const googleTimeout = 15 * time.Second

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Verifies the state token, exchanges the authorization code and reads the Google profile.
// @Description The shopper is matched to a customer by email (created on first sign-in), the session is signed in and the browser is sent back to the frontend.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Redirect to frontend after successful login"
// @Failure 503 {object} models.ApiResponse "Google sign-in disabled"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if googleDisabled(c) {
		return
	}
	log := deps.Log.WithField("flow", "google_callback")

	state := c.Query("state")
	savedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != savedState {
		log.Warn("❌ State mismatch")
		redirectToFrontendWithError(c, "Invalid state token")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", deps.Secure, true)

	code := c.Query("code")
	if code == "" {
		redirectToFrontendWithError(c, "No authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), googleTimeout)
	defer cancel()

	token, err := deps.Google.Config.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("❌ Exchange failed")
		redirectToFrontendWithError(c, "Failed to exchange token")
		return
	}

	info, err := fetchUserInfo(ctx, deps.Google.Config.Client(ctx, token))
	if err != nil {
		log.WithError(err).Warn("❌ Failed to get user info")
		redirectToFrontendWithError(c, "Failed to get user info")
		return
	}
	identity, err := identityFromUserInfo(info)
	if err != nil {
		log.WithError(err).Warn("❌ Unusable Google profile")
		redirectToFrontendWithError(c, err.Error())
		return
	}

	sess, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	if _, err := sess.Auth.LoginWithIdentity(ctx, identity); err != nil {
		log.WithError(err).Warn("❌ Could not link Google identity")
		redirectToFrontendWithError(c, "Could not sign you in")
		return
	}
	if err := issueSession(c, sess, identity.Email, "google"); err != nil {
		log.WithError(err).Error("❌ JWT error")
		redirectToFrontendWithError(c, "Failed to generate token")
		return
	}

	log.WithField("session", sess.ID).Info("✅ Google login successful")
	c.Redirect(http.StatusTemporaryRedirect, deps.FrontendURL+"/auth-popup")
}

func fetchUserInfo(ctx context.Context, client *http.Client) (models.GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return models.GoogleUserInfo{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.GoogleUserInfo{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.GoogleUserInfo{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return models.GoogleUserInfo{}, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}
	return parseUserInfo(body), nil
}

// parseUserInfo reads both the v2 (id, verified_email) and the OIDC
// (sub, email_verified) field names.
func parseUserInfo(body []byte) models.GoogleUserInfo {
	r := gjson.ParseBytes(body)
	return models.GoogleUserInfo{
		Sub:           r.Get("sub").String(),
		ID:            r.Get("id").String(),
		Email:         r.Get("email").String(),
		EmailVerified: r.Get("email_verified").Bool(),
		VerifiedEmail: r.Get("verified_email").Bool(),
		Name:          r.Get("name").String(),
		GivenName:     r.Get("given_name").String(),
		FamilyName:    r.Get("family_name").String(),
		Picture:       r.Get("picture").String(),
		Locale:        r.Get("locale").String(),
	}
}

func identityFromUserInfo(u models.GoogleUserInfo) (models.ExternalIdentity, error) {
	subject := u.Sub
	if subject == "" {
		subject = u.ID
	}
	switch {
	case subject == "":
		return models.ExternalIdentity{}, errors.New("Google ID not found")
	case strings.TrimSpace(u.Email) == "":
		return models.ExternalIdentity{}, errors.New("Google account has no email")
	case !u.EmailVerified && !u.VerifiedEmail:
		return models.ExternalIdentity{}, errors.New("Google email is not verified")
	}

	first, last := u.GivenName, u.FamilyName
	if first == "" && last == "" {
		first, last, _ = strings.Cut(strings.TrimSpace(u.Name), " ")
	}
	return models.ExternalIdentity{
		Provider:  "google",
		Subject:   subject,
		Email:     strings.ToLower(strings.TrimSpace(u.Email)),
		FirstName: first,
		LastName:  last,
	}, nil
}
