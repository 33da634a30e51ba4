package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

const (
	claimsKey    = "sessionClaims"
	userEmailKey = "userEmail"
)

// AuthMiddleware validates the session token from cookie or Authorization header
func AuthMiddleware(jwt *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := utils.RequestToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization required"))
			c.Abort()
			return
		}

		claims, err := jwt.ValidateSessionJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}

		SetSessionClaims(c, claims)
		c.Next()
	}
}

// SetSessionClaims binds validated claims to the request.
func SetSessionClaims(c *gin.Context, claims *services.SessionClaims) {
	c.Set(claimsKey, claims)
	c.Set(userEmailKey, claims.Email)
}

// GetSessionClaims returns the claims set by AuthMiddleware.
func GetSessionClaims(c *gin.Context) (*services.SessionClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.SessionClaims)
	return claims, ok
}

// GetCredential returns the commerce credential of the authenticated shopper.
func GetCredential(c *gin.Context) (models.SessionCredential, bool) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		return models.SessionCredential{}, false
	}
	return claims.Credential, true
}

func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(userEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
