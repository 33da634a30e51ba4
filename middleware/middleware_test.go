package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/stores"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProvider struct {
	mu  sync.Mutex
	ids []string
}

func (p *fakeProvider) Session(ctx context.Context, id string) *stores.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, id)
	return &stores.Session{ID: id}
}

func sessionRouter(p SessionProvider) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(p, false))
	r.GET("/whoami", func(c *gin.Context) {
		s, ok := GetSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, s.ID)
	})
	return r
}

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	p := &fakeProvider{}
	rec := httptest.NewRecorder()
	sessionRouter(p).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
}

func TestSessionMiddleware_ReusesValidCookie(t *testing.T) {
	p := &fakeProvider{}
	id := "0b7e7c4a-2f7c-4a39-9b7e-6f7e3c1d2a10"
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})

	rec := httptest.NewRecorder()
	sessionRouter(p).ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "../../etc/passwd"})
	rec = httptest.NewRecorder()
	sessionRouter(p).ServeHTTP(rec, req)
	assert.NotEqual(t, "../../etc/passwd", rec.Body.String())
}

func TestGetSession_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetSession(c)
	assert.False(t, ok)
}

func authRouter(t *testing.T) (*gin.Engine, *services.JWTService) {
	svc, err := services.NewJWTService("s3cret", time.Hour)
	require.NoError(t, err)
	r := gin.New()
	r.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		cred, _ := GetCredential(c)
		email, _ := GetUserEmailFromContext(c)
		c.String(http.StatusOK, cred.Kind+"|"+email)
	})
	return r, svc
}

func TestAuthMiddleware(t *testing.T) {
	r, svc := authRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := svc.GenerateSessionJWT("sess-1", "ana@example.com", models.SessionCredential{Kind: models.CredentialStorefront, Token: "t"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: tok})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "storefront|ana@example.com", rec.Body.String())
}

type memRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
	values map[string]string
	err    error
}

func newMemRateStore() *memRateStore {
	return &memRateStore{counts: map[string]int64{}, values: map[string]string{}}
}

func (m *memRateStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memRateStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (m *memRateStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *memRateStore) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	store := newMemRateStore()
	r := gin.New()
	r.GET("/ping", RateLimiter(store, 2, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "pong", nil))
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, rec.Code)
		if i == 0 {
			assert.Contains(t, rec.Body.String(), `"remaining":1`)
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Contains(t, store.values, "rl:192.0.2.1:GET:/ping:resetAt")
}

func TestRateLimiter_StoreError(t *testing.T) {
	store := newMemRateStore()
	store.err = errors.New("connection refused")
	r := gin.New()
	r.GET("/ping", RateLimiter(store, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetOutput(io.Discard)

	r := gin.New()
	r.Use(RequestLogger(log))
	r.PATCH("/api/v1/cart/lines/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/lines/abc", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "updated_cart_line", entry.Data["action"])
	assert.Equal(t, "/api/v1/cart/lines/:id", entry.Data["route"])
	assert.Equal(t, http.StatusNoContent, entry.Data["status"])
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, "created_favorite", actionFor("POST", "/api/v1/favorites/:handle/toggle"))
	assert.Equal(t, "deleted_address", actionFor("DELETE", "/api/v1/user/addresses/:id"))
	assert.Equal(t, "", actionFor("GET", "/api/v1/cart"))
	assert.Equal(t, "", actionFor("POST", ""))
}
