package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/infrastructure/auth"
	"github.com/jdcrm/backend/internal/infrastructure/config"
	"github.com/jdcrm/backend/internal/infrastructure/resilience"
	"github.com/jdcrm/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	tokenService := auth.NewTokenService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: time.Hour,
		Issuer:                "jdcrm-test",
	})

	facade := resilience.New(
		&config.FailoverConfig{Mode: "simulated", RemoteTimeout: time.Second},
		resilience.Repositories{}, resilience.Repositories{}, nil, nil, zap.NewNop())

	system := handler.NewSystemHandler(facade, "jdcrm", "test")
	sse := handler.NewConnectivitySSEHandler(facade)
	t.Cleanup(sse.Stop)

	return New(Config{
		TokenService:   tokenService,
		SessionRevoker: auth.NewInMemorySessionRevoker(),
		Logger:         zap.NewNop(),
		Auth:           handler.NewAuthHandler(tokenService, auth.NewInMemorySessionRevoker(), nil, "production"),
		Leads:          handler.NewLeadHandler(nil),
		Agents:         handler.NewAgentHandler(nil, nil),
		Projects:       handler.NewProjectHandler(nil),
		Bookings:       handler.NewBookingHandler(nil),
		Dashboard:      handler.NewDashboardHandler(nil),
		System:         system,
		SSE:            sse,
	})
}

func TestRouterRegistersExpectedRoutes(t *testing.T) {
	engine := newTestEngine(t)

	type route struct{ method, path string }
	want := []route{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/v1/auth/token"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/leads"},
		{http.MethodPost, "/api/v1/leads"},
		{http.MethodPost, "/api/v1/leads/:id/assign"},
		{http.MethodPatch, "/api/v1/leads/:id/status"},
		{http.MethodPost, "/api/v1/leads/:id/interactions"},
		{http.MethodGet, "/api/v1/leads/:id/bookings"},
		{http.MethodGet, "/api/v1/agents/suggest"},
		{http.MethodPost, "/api/v1/projects/quick"},
		{http.MethodGet, "/api/v1/projects/:id/inventory"},
		{http.MethodPost, "/api/v1/bookings"},
		{http.MethodPost, "/api/v1/bookings/:id/confirm"},
		{http.MethodPost, "/api/v1/bookings/:id/cancel"},
		{http.MethodPut, "/api/v1/bookings/:id/schedule"},
		{http.MethodPost, "/api/v1/bookings/:id/schedule/template"},
		{http.MethodPost, "/api/v1/bookings/:id/payments"},
		{http.MethodPost, "/api/v1/bookings/:id/documents"},
		{http.MethodGet, "/api/v1/dashboard/stats"},
		{http.MethodGet, "/api/v1/system/connectivity"},
		{http.MethodGet, "/api/v1/system/connectivity/stream"},
	}

	registered := make(map[route]bool)
	for _, r := range engine.Routes() {
		registered[route{r.Method, r.Path}] = true
	}

	for _, r := range want {
		assert.True(t, registered[r], "missing route %s %s", r.method, r.path)
	}
}

func TestRouterHealthIsUnauthenticated(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
}

func TestRouterTokenMintDisabledInProduction(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
