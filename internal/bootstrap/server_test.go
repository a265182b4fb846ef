package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/account"
	"github.com/Domenick1991/carrental/internal/kvstore"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/auth"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/catalog"
	"github.com/Domenick1991/carrental/internal/service/checkout"
	"github.com/Domenick1991/carrental/internal/service/dashboard"
	"github.com/Domenick1991/carrental/internal/service/payments"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.Parse([]byte("http:\n  allowed_origins: [\"http://localhost:5173\"]\n"))
	require.NoError(t, err)

	log := zap.NewNop()
	store := kvstore.NewMemory()
	bookingRepo := repository.NewBookingRepository(store, log)
	paymentRepo := repository.NewPaymentRepository(store, log)
	sessions := repository.NewSessionRepository(store, log)

	bookingSvc := booking.NewBookingService(bookingRepo, log)
	catalogSvc := catalog.NewCatalogService(repository.NewCarRepository(store, log, repository.WithFirstCarID(catalog.FirstManagedCarID)), cfg.Booking.MaxRentalDays, log)
	checkoutSvc := checkout.NewCheckoutService(catalogSvc, bookingSvc, paymentRepo, sessions, checkout.StubGateway{}, log)
	authSvc := auth.NewAuthService(cfg.Admin, account.NewClient(cfg.Account, log), sessions, log)

	return NewRouter(cfg, Handlers{
		Bookings:  api.NewBookingHandler(bookingSvc),
		Cars:      api.NewCarHandler(catalogSvc),
		Checkout:  api.NewCheckoutHandler(checkoutSvc),
		Auth:      api.NewAuthHandler(authSvc),
		Dashboard: api.NewDashboardHandler(dashboard.NewDashboardService(bookingRepo, repository.NewCounterRepository(store, log), log)),
		Payments:  api.NewPaymentHandler(payments.NewPaymentService(paymentRepo, log)),
	}, log)
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_RentalFlow(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, "POST", "/api/admin/login", `{"username":"admin","password":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, "POST", "/api/checkout", `{"car":"fronx","days":2,"method":"PayPal"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var result checkout.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "admin", result.Booking.User)
	assert.Equal(t, float64(14000), result.Booking.TotalPrice)

	w = do(router, "PUT", "/api/admin/bookings/1/confirm", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmedCount":1`)

	w = do(router, "PUT", "/api/admin/bookings/1/cancel", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, "GET", "/api/admin/dashboard", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalRevenue":14000`)

	w = do(router, "POST", "/api/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/cars", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg, err := config.Parse([]byte("http:\n  address: \"127.0.0.1:0\"\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Run(ctx, cfg, http.NotFoundHandler(), zap.NewNop()))
}
