// ════════════════════════════════════════════════════════════
// Path: config/google_oauth.go
// Google OAuth Configuration
// ════════════════════════════════════════════════════════════

package config

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleIssuer = "https://accounts.google.com"

// GoogleOAuth bundles the redirect flow config and the id_token verifier
// used by One Tap.
type GoogleOAuth struct {
	Config   *oauth2.Config
	Verifier *oidc.IDTokenVerifier
}

// InitGoogleOAuth returns (nil, nil) when client credentials are not set;
// the Google endpoints then answer 503.
func InitGoogleOAuth(ctx context.Context, cfg *Config, log *logrus.Logger) (*GoogleOAuth, error) {
	if !cfg.GoogleOAuthEnabled() {
		log.Warn("⚠️  GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set, Google sign-in disabled")
		return nil, nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	// Setup OIDC provider for ID token verification (Google One Tap)
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	log.Info("✅ Google OAuth initialized successfully")
	return &GoogleOAuth{
		Config:   oauthConfig,
		Verifier: provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID}),
	}, nil
}
