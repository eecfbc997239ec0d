package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/infrastructure/config"
	"github.com/jdcrm/backend/internal/infrastructure/resilience"
)

func newSimulatedFacade() *resilience.Facade {
	cfg := &config.FailoverConfig{Mode: "simulated", RemoteTimeout: time.Second}
	return resilience.New(cfg, resilience.Repositories{}, resilience.Repositories{}, nil, nil, zap.NewNop())
}

func TestSystemHealth(t *testing.T) {
	h := NewSystemHandler(newSimulatedFacade(), "jdcrm", "1.0.0")

	router := gin.New()
	router.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"service":"jdcrm"`)
}

func TestSystemConnectivity(t *testing.T) {
	h := NewSystemHandler(newSimulatedFacade(), "jdcrm", "1.0.0")

	router := gin.New()
	router.GET("/system/connectivity", h.Connectivity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/system/connectivity", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	// Simulated mode never reaches the remote store
	assert.Contains(t, w.Body.String(), `"state":"DEGRADED"`)
}
