package checkout

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/auth"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/cart"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/user"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/payment"
)

func testRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(svc, nil, "pk_test_public", log)

	r.GET("/api/checkout/callback", h.Callback)
	r.GET("/api/checkout/config", h.Config)

	authed := r.Group("/")
	authed.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserIDKey, int64(7))
		c.Set(auth.CtxRoleKey, user.RoleCustomer)
	})
	authed.POST("/api/checkout", h.Initiate)
	return r
}

func TestCallback_NoReferenceis_Cancelled(t *testing.T) {
	svc := newService(&mockCarts{}, newMockStore(), &mockGateway{})
	r := testRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/checkout/callback", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cancelled")
}

func TestCallback_UnknownReference(t *testing.T) {
	svc := newService(&mockCarts{}, newMockStore(), &mockGateway{})
	r := testRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/checkout/callback?reference=nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInitiate_EmptyCartIsBadRequest(t *testing.T) {
	svc := newService(&mockCarts{summary: cart.Summary{}}, newMockStore(), &mockGateway{})
	r := testRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart is empty")
}

func TestInitiate_GatewayDownIsBadGateway(t *testing.T) {
	svc := newService(&mockCarts{summary: twoItemCart()}, newMockStore(), &mockGateway{initErr: payment.ErrUnavailable})
	r := testRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestConfig_ExposesOnlyPublicKey(t *testing.T) {
	svc := newService(&mockCarts{}, newMockStore(), &mockGateway{})
	r := testRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/checkout/config", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pk_test_public")
	assert.NotContains(t, rec.Body.String(), "secret")
}
