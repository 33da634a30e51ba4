package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthCookieName carries the signed session token.
const AuthCookieName = "auth_token"

// ExtractTokenFromHeader extracts JWT token from Authorization header
// Format: "Bearer <token>"
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is empty")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("token is empty")
	}
	return token, nil
}

// RequestToken returns the session token from the auth cookie, falling back
// to the Authorization header.
func RequestToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	return ExtractTokenFromHeader(c.GetHeader("Authorization"))
}
