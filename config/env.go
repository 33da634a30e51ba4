package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the process configuration, decoded from the environment.
type Config struct {
	AppEnv      string `env:"APP_ENV,default=development"`
	AppPort     string `env:"APP_PORT,default=8081"`
	AppBaseURL  string `env:"APP_BASE_URL,default=http://localhost:3000"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	CORSOrigins string `env:"CORS_ORIGINS"`

	ShopifyStoreDomain     string  `env:"SHOPIFY_STORE_DOMAIN,required"`
	ShopifyStorefrontToken string  `env:"SHOPIFY_STOREFRONT_ACCESS_TOKEN,required"`
	ShopifyAdminToken      string  `env:"SHOPIFY_ADMIN_ACCESS_TOKEN,required"`
	ShopifyAPIVersion      string  `env:"SHOPIFY_API_VERSION,default=2024-10"`
	GatewayRPS             float64 `env:"GATEWAY_RPS,default=4"`

	RedisURL       string `env:"REDIS_URL,default=redis://localhost:6379"`
	EcommerceDBURL string `env:"ECOMMERCE_DB_URL"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY,default=24h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL,default=http://localhost:8081/api/v1/auth/google/callback"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	ImageWidth          int    `env:"IMAGE_MAX_WIDTH,default=1200"`

	ResendAPIKey    string `env:"RESEND_API_KEY"`
	ResendFromEmail string `env:"RESEND_FROM_EMAIL"`

	BankTransferDetails string        `env:"BANK_TRANSFER_DETAILS"`
	PendingOrderHold    time.Duration `env:"PENDING_ORDER_HOLD,default=48h"`

	SessionIdleTTL   time.Duration `env:"SESSION_IDLE_TTL,default=30m"`
	PersistTTL       time.Duration `env:"STORE_PERSIST_TTL,default=720h"`
	LinkedSessionTTL time.Duration `env:"LINKED_SESSION_TTL,default=24h"`
	MenuTTL          time.Duration `env:"MENU_TTL,default=5m"`
}

// Load reads .env when present and decodes the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if cfg.GatewayRPS <= 0 {
		return nil, errors.New("GATEWAY_RPS must be positive")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// GoogleOAuthEnabled reports whether both OAuth client credentials are set.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// AllowedOrigins is CORS_ORIGINS split on commas, falling back to the app
// base URL.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimSuffix(o, "/"))
		}
	}
	if len(out) == 0 {
		out = []string{strings.TrimSuffix(c.AppBaseURL, "/")}
	}
	return out
}

// FrontendURL is where OAuth redirects land.
func (c *Config) FrontendURL() string {
	return strings.TrimSuffix(c.AppBaseURL, "/")
}
