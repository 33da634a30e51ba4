package profile_controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCustomers struct{ byToken, byID *models.Customer }

func (f fakeCustomers) GetCustomer(context.Context, string) (*models.Customer, error) {
	return f.byToken, nil
}

func (f fakeCustomers) GetCustomerByID(context.Context, string) (*models.Customer, error) {
	return f.byID, nil
}

func serve(f fakeCustomers, cred models.SessionCredential) *httptest.ResponseRecorder {
	Init(f)
	r := gin.New()
	r.GET("/user/me", func(c *gin.Context) {
		middleware.SetSessionClaims(c, &services.SessionClaims{SessionID: "s1", Credential: cred})
	}, GetMe)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/me", nil))
	return rec
}

func TestGetMe(t *testing.T) {
	f := fakeCustomers{
		byToken: &models.Customer{Email: "token@example.com"},
		byID:    &models.Customer{Email: "linked@example.com"},
	}

	rec := serve(f, models.SessionCredential{Kind: models.CredentialStorefront, Token: "t"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token@example.com", gjson.Get(rec.Body.String(), "data.email").String())

	rec = serve(f, models.SessionCredential{Kind: models.CredentialLinked, CustomerID: "1"})
	assert.Equal(t, "linked@example.com", gjson.Get(rec.Body.String(), "data.email").String())
}

func TestGetMe_RevokedToken(t *testing.T) {
	rec := serve(fakeCustomers{}, models.SessionCredential{Kind: models.CredentialStorefront, Token: "t"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
