package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/services/commerce"
)

const (
	uaChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	uaSafariIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaIPad          = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaAndroid       = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Mobile Safari/537.36"
	uaEdgeMac       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36 Edg/126.0"
)

func TestParseUserAgent(t *testing.T) {
	cases := []struct {
		ua, device, browser, os string
	}{
		{uaChromeWindows, "desktop", "Chrome", "Windows"},
		{uaSafariIPhone, "mobile", "Safari", "iOS"},
		{uaIPad, "tablet", "Safari", "iOS"},
		{uaAndroid, "mobile", "Chrome", "Android"},
		{uaEdgeMac, "desktop", "Edge", "macOS"},
		{"curl/8.0", "desktop", "Other", "Other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.device, parseDeviceType(tc.ua), tc.ua)
		assert.Equal(t, tc.browser, parseBrowser(tc.ua), tc.ua)
		assert.Equal(t, tc.os, parseOS(tc.ua), tc.ua)
	}
}

type recordingExecer struct {
	args []any
	err  error
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), r.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoginTracker_Record(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	c.Request.Header.Set("User-Agent", uaAndroid)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	db := &recordingExecer{}
	tracker := NewLoginTracker(db, quietLogger())
	require.NoError(t, tracker.Record(context.Background(), NewLoginEvent(c, "gid://shopify/Customer/1", "password")))

	require.Len(t, db.args, 8)
	assert.Equal(t, "gid://shopify/Customer/1", db.args[1])
	assert.Equal(t, "password", db.args[2])
	assert.Equal(t, "203.0.113.7", db.args[3])
	assert.Equal(t, "mobile", db.args[5])

	db.err = errors.New("relation does not exist")
	assert.Error(t, tracker.Record(context.Background(), LoginEvent{}))
}

func TestLoginTracker_NilIsNoop(t *testing.T) {
	var tracker *LoginTracker
	assert.NoError(t, tracker.Record(context.Background(), LoginEvent{}))
	assert.NoError(t, NewLoginTracker(nil, quietLogger()).Record(context.Background(), LoginEvent{}))
}

func TestRequestToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "from-cookie"})
	c.Request.Header.Set("Authorization", "Bearer from-header")
	tok, err := RequestToken(c)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", tok)

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer from-header")
	tok, err = RequestToken(c)
	require.NoError(t, err)
	assert.Equal(t, "from-header", tok)

	_, err = ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
	_, err = ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{&commerce.UserError{Op: "customerAccessTokenCreate", Messages: []string{"Unidentified customer"}}, http.StatusBadRequest, "Unidentified customer"},
		{&commerce.TransportError{Op: "cart", Status: 502}, http.StatusBadGateway, commerce.GenericMessage},
		{fmt.Errorf("wrap: %w", commerce.ErrAdminDisabled), http.StatusServiceUnavailable, unavailableMessage},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, commerce.GenericMessage},
		{errors.New("boom"), http.StatusInternalServerError, "Something went wrong"},
	}
	for _, tc := range cases {
		status, msg := ErrorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg)
	}
}

func TestRespondGatewayError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondGatewayError(c, &commerce.UserError{Messages: []string{"Email has already been taken"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email has already been taken")
	assert.Len(t, c.Errors, 1)
}
