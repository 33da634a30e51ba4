package order_controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeOrders struct {
	via   string
	first int
	after string
}

func (f *fakeOrders) GetCustomerOrders(_ context.Context, _ string, first int, after string) (*models.OrderPage, error) {
	f.via, f.first, f.after = "token", first, after
	return &models.OrderPage{
		Orders:   []models.Order{{Name: "#1001", OrderNumber: 1001}},
		PageInfo: models.PageInfo{HasNextPage: true, EndCursor: "next"},
	}, nil
}

func (f *fakeOrders) GetCustomerOrdersByID(_ context.Context, _ string, first int, after string) (*models.OrderPage, error) {
	f.via, f.first, f.after = "id", first, after
	return nil, nil
}

func serve(f *fakeOrders, cred models.SessionCredential, path string) *httptest.ResponseRecorder {
	Init(f)
	r := gin.New()
	r.GET("/user/orders", func(c *gin.Context) {
		middleware.SetSessionClaims(c, &services.SessionClaims{SessionID: "s1", Credential: cred})
	}, GetOrders)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetOrders_Storefront(t *testing.T) {
	f := &fakeOrders{}
	rec := serve(f, models.SessionCredential{Kind: models.CredentialStorefront, Token: "t"}, "/user/orders?first=500&after=abc")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token", f.via)
	assert.Equal(t, defaultOrdersPage, f.first)
	assert.Equal(t, "abc", f.after)
	assert.Equal(t, int64(1001), gjson.Get(rec.Body.String(), "data.orders.0.orderNumber").Int())
	assert.Equal(t, int64(defaultOrdersPage), gjson.Get(rec.Body.String(), "meta.page_size").Int())
	assert.True(t, gjson.Get(rec.Body.String(), "meta.has_next_page").Bool())
	assert.Equal(t, "next", gjson.Get(rec.Body.String(), "meta.end_cursor").String())
}

func TestGetOrders_LinkedEmpty(t *testing.T) {
	f := &fakeOrders{}
	rec := serve(f, models.SessionCredential{Kind: models.CredentialLinked, CustomerID: "1"}, "/user/orders")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id", f.via)
	assert.True(t, gjson.Get(rec.Body.String(), "data.orders").IsArray())
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "meta.count").Int())
	assert.False(t, gjson.Get(rec.Body.String(), "meta.has_next_page").Bool())
}

func TestGetOrders_Unauthorized(t *testing.T) {
	Init(&fakeOrders{})
	r := gin.New()
	r.GET("/user/orders", GetOrders)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
