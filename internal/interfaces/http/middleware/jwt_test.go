package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/infrastructure/auth"
	"github.com/jdcrm/backend/internal/infrastructure/config"
)

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware",
		AccessTokenExpiration: time.Hour,
		Issuer:                "jdcrm-test",
	})
}

func issueToken(t *testing.T, svc *auth.TokenService) string {
	t.Helper()
	token, _, err := svc.GenerateToken(auth.GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Name:     "Asha Rao",
		Role:     pipeline.AgentRoleManager,
	})
	require.NoError(t, err)
	return token
}

func setupProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/protected", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": claims.TenantID,
			"role":      string(claims.Role),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestTokenService()

	t.Run("valid token passes", func(t *testing.T) {
		r := setupProtectedRouter(DefaultJWTConfig(svc))
		token := issueToken(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Manager")
	})

	t.Run("missing header rejected", func(t *testing.T) {
		r := setupProtectedRouter(DefaultJWTConfig(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		r := setupProtectedRouter(DefaultJWTConfig(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Token abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token surfaces as auth expired", func(t *testing.T) {
		expiredSvc := auth.NewTokenService(config.JWTConfig{
			Secret:                "test-secret-key-for-middleware",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "jdcrm-test",
		})
		token := issueToken(t, expiredSvc)
		r := setupProtectedRouter(DefaultJWTConfig(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_AUTH_EXPIRED")
	})

	t.Run("revoked session surfaces as auth expired", func(t *testing.T) {
		revoker := auth.NewInMemorySessionRevoker()
		token := issueToken(t, svc)
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		require.NoError(t, revoker.Revoke(context.Background(), claims.ID, time.Hour))

		cfg := DefaultJWTConfig(svc)
		cfg.SessionRevoker = revoker
		r := setupProtectedRouter(cfg)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_AUTH_EXPIRED")
	})

	t.Run("skip path bypasses auth", func(t *testing.T) {
		r := setupProtectedRouter(DefaultJWTConfig(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		otherSvc := auth.NewTokenService(config.JWTConfig{
			Secret:                "a-completely-different-secret",
			AccessTokenExpiration: time.Hour,
			Issuer:                "jdcrm-test",
		})
		token := issueToken(t, otherSvc)
		r := setupProtectedRouter(DefaultJWTConfig(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
