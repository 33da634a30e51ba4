// ════════════════════════════════════════════════════════════
// Path: utils/login_tracker.go
// Track customer login events
// ════════════════════════════════════════════════════════════

package utils

import (
	"context"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// Execer is the slice of pgxpool.Pool the tracker needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LoginTracker writes one row per successful sign-in. A tracker with no
// database is a no-op.
type LoginTracker struct {
	db  Execer
	log *logrus.Entry
}

func NewLoginTracker(db Execer, log *logrus.Logger) *LoginTracker {
	return &LoginTracker{db: db, log: log.WithField("component", "login_tracker")}
}

// LoginEvent is the row written to login_events.
type LoginEvent struct {
	CustomerID string
	Provider   string
	IPAddress  string
	UserAgent  string
	DeviceType string
	Browser    string
	OS         string
}

// NewLoginEvent builds the event for the current request.
func NewLoginEvent(c *gin.Context, customerID, provider string) LoginEvent {
	userAgent := c.GetHeader("User-Agent")
	return LoginEvent{
		CustomerID: customerID,
		Provider:   provider,
		IPAddress:  GetClientIP(c),
		UserAgent:  userAgent,
		DeviceType: parseDeviceType(userAgent),
		Browser:    parseBrowser(userAgent),
		OS:         parseOS(userAgent),
	}
}

const insertLoginEvent = `
	INSERT INTO login_events (
		id, customer_id, provider, logged_in_at, ip_address, user_agent,
		device_type, browser, os
	) VALUES ($1, $2, $3, NOW(), $4, $5, $6, $7, $8)
`

// Record stores the event. Failures are logged and returned; callers never
// fail a login because of them.
func (t *LoginTracker) Record(ctx context.Context, ev LoginEvent) error {
	if t == nil || t.db == nil {
		return nil
	}
	_, err := t.db.Exec(ctx, insertLoginEvent,
		uuid.New().String(),
		ev.CustomerID,
		ev.Provider,
		ev.IPAddress,
		ev.UserAgent,
		ev.DeviceType,
		ev.Browser,
		ev.OS,
	)
	if err != nil {
		t.log.WithError(err).Error("❌ Failed to log login event")
		return err
	}
	t.log.WithFields(logrus.Fields{"customer_id": ev.CustomerID, "ip": ev.IPAddress}).Info("✅ Login event logged")
	return nil
}

// parseDeviceType determines if the request is from mobile, tablet, or desktop
func parseDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	// iPad user agents also say "mobile"
	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") {
		return "mobile"
	}
	return "desktop"
}

// parseBrowser extracts browser name from user agent
func parseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "edg") {
		return "Edge"
	}
	if strings.Contains(ua, "chrome") || strings.Contains(ua, "crios") {
		return "Chrome"
	}
	if strings.Contains(ua, "firefox") || strings.Contains(ua, "fxios") {
		return "Firefox"
	}
	if strings.Contains(ua, "safari") {
		return "Safari"
	}
	return "Other"
}

// parseOS extracts operating system from user agent
func parseOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "Other"
}

// GetClientIP gets the real client IP (handles proxies)
func GetClientIP(c *gin.Context) string {
	// Try X-Forwarded-For first (if behind proxy)
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	return c.ClientIP()
}
