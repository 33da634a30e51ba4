package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores"
)

const (
	SessionCookieName = "modeva_session"
	sessionCookieAge  = 30 * 24 * 60 * 60
	sessionKey        = "storeSession"
)

// SessionProvider resolves the stores of a browser session.
type SessionProvider interface {
	Session(ctx context.Context, id string) *stores.Session
}

// SessionMiddleware binds every request to a browser session. A missing or
// malformed session cookie starts a new session.
func SessionMiddleware(provider SessionProvider, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// refreshed on every request so active sessions never expire
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, id, sessionCookieAge, "/", "", secure, true)

		c.Set(sessionKey, provider.Session(c.Request.Context(), id))
		c.Next()
	}
}

// GetSession returns the stores bound by SessionMiddleware.
func GetSession(c *gin.Context) (*stores.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*stores.Session)
	return s, ok && s != nil
}

// RequireSession is GetSession for handlers: it writes a 500 and returns
// false when the route was mounted without SessionMiddleware.
func RequireSession(c *gin.Context) (*stores.Session, bool) {
	s, ok := GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Session unavailable"))
		return nil, false
	}
	return s, true
}
