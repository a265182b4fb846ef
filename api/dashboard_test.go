package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kvstore"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/dashboard"
)

func TestDashboardHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := kvstore.NewMemory()
	service := dashboard.NewDashboardService(
		repository.NewBookingRepository(store, zap.NewNop()),
		repository.NewCounterRepository(store, zap.NewNop()),
		zap.NewNop(),
	)
	router := gin.New()
	NewDashboardHandler(service).Register(router.Group("/api/admin/dashboard"))

	w := serve(router, "GET", "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var stats domain.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 9, stats.TotalCars)

	w = serve(router, "PUT", "/api/admin/dashboard/totalUsers", []byte(`{"value":25}`))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 25, stats.TotalUsers)

	w = serve(router, "PUT", "/api/admin/dashboard/totalUsers", []byte(`{"value":-3}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, "PUT", "/api/admin/dashboard/totalRevenue", []byte(`{"value":3}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
