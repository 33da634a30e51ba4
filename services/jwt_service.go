package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const sessionIssuer = "modeva-storefront"

// SessionClaims is the payload of the auth_token cookie. It binds a browser
// session to the credential the shopper logged in with.
type SessionClaims struct {
	SessionID  string                   `json:"sid"`
	Email      string                   `json:"email,omitempty"`
	Credential models.SessionCredential `json:"cred"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens.
type JWTService struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewJWTService builds the service. expiry defaults to 7 days.
func NewJWTService(secretKey string, expiry time.Duration) (*JWTService, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &JWTService{secretKey: []byte(secretKey), expiry: expiry, now: time.Now}, nil
}

// Expiry is how long a freshly issued token lives.
func (j *JWTService) Expiry() time.Duration { return j.expiry }

// GenerateSessionJWT issues a token for a logged-in session. The token never
// outlives the credential it carries.
func (j *JWTService) GenerateSessionJWT(sessionID, email string, cred models.SessionCredential) (string, error) {
	if sessionID == "" || cred.Kind == "" {
		return "", errors.New("session id and credential cannot be empty")
	}

	now := j.now()
	expiresAt := now.Add(j.expiry)
	if !cred.ExpiresAt.IsZero() && cred.ExpiresAt.Before(expiresAt) {
		expiresAt = cred.ExpiresAt
	}

	claims := SessionClaims{
		SessionID:  sessionID,
		Email:      email,
		Credential: cred,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateSessionJWT verifies a token and returns its claims.
func (j *JWTService) ValidateSessionJWT(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.SessionID == "" || claims.Credential.Kind == "" {
		return nil, errors.New("token missing required claims")
	}
	return claims, nil
}
