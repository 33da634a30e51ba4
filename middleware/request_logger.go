package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// pathToResourceType maps URL path segments to the resource a request acts on
var pathToResourceType = map[string]string{
	"cart":           "cart",
	"lines":          "cart_line",
	"favorites":      "favorite",
	"addresses":      "address",
	"pending-orders": "pending_order",
	"auth":           "session",
	"ui":             "ui",
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	"POST":   "created",
	"PATCH":  "updated",
	"PUT":    "updated",
	"DELETE": "deleted",
}

// RequestLogger writes one entry per request. Mutating requests also carry
// an action such as "updated_cart_line".
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if action := actionFor(c.Request.Method, c.FullPath()); action != "" {
			fields["action"] = action
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := log.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("[http] request failed")
		case status >= 400:
			entry.Warn("[http] request rejected")
		default:
			entry.Info("[http] request served")
		}
	}
}

// GetRequestID returns the id assigned by RequestLogger.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// actionFor builds the action name of a mutating request from its route,
// e.g. PATCH /api/v1/cart/lines/:id → "updated_cart_line".
func actionFor(method, route string) string {
	verb := methodToActionVerb[method]
	if verb == "" || route == "" {
		return ""
	}
	parts := strings.Split(route, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" || strings.HasPrefix(parts[i], ":") {
			continue
		}
		if resource, ok := pathToResourceType[parts[i]]; ok {
			return verb + "_" + resource
		}
	}
	return ""
}

// Metrics records in-flight requests, counts and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPStarted()
		c.Next()
		metrics.HTTPFinished(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
