package models

import "time"

// Customer is the commerce backend's customer profile.
type Customer struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Phone            *string  `json:"phone,omitempty"`
	AcceptsMarketing bool     `json:"acceptsMarketing"`
	DefaultAddress   *Address `json:"defaultAddress,omitempty"`
}

// DisplayName joins first and last name, falling back to the email.
func (c *Customer) DisplayName() string {
	if c == nil {
		return ""
	}
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	if name == "" {
		return c.Email
	}
	return name
}

// CustomerAccessToken is the storefront credential issued on login.
type CustomerAccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Credential kinds carried by a session.
const (
	CredentialStorefront = "storefront" // customer access token from a password login
	CredentialLinked     = "linked"     // customer id resolved through the admin API (OAuth sign-in)
)

// SessionCredential is what a signed session token carries.
type SessionCredential struct {
	Kind       string    `json:"kind"`
	Token      string    `json:"token,omitempty"`
	CustomerID string    `json:"customerId,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName        string  `json:"first_name" binding:"required"`
	LastName         string  `json:"last_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=5"`
	Phone            *string `json:"phone,omitempty"`
	AcceptsMarketing bool    `json:"accepts_marketing"`
}

// RecoverRequest is the body of POST /auth/recover.
type RecoverRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// OneTapRequest carries a Google One Tap id_token.
type OneTapRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// GoogleUserInfo represents data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"` // Google user ID
	ID            string `json:"id"`  // Alternative field name
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// ExternalIdentity is a verified third-party sign-in.
type ExternalIdentity struct {
	Provider  string
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// AuthStatusResponse is returned by GET /auth/status and the login endpoints.
type AuthStatusResponse struct {
	IsLoggedIn bool      `json:"isLoggedIn"`
	Customer   *Customer `json:"customer"`
	Hydrated   bool      `json:"hydrated"`
}
