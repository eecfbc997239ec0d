package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/infrastructure/config"
)

func newTestTokenService(expiration time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: expiration,
		Issuer:                "crm-backend",
	})
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	tenantID := uuid.New()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Name:     "Sunita Rao",
		Role:     pipeline.AgentRoleManager,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, pipeline.AgentRoleManager, claims.Role)
	assert.Equal(t, "crm-backend", claims.Issuer)

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTestTokenService(-time.Minute)

	token, _, err := svc.GenerateToken(GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Role:     pipeline.AgentRoleSalesExec,
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_TamperedToken(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	token, _, err := svc.GenerateToken(GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Role:     pipeline.AgentRoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenService(config.JWTConfig{
		Secret:                "a-completely-different-signing-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "crm-backend",
	})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_Permissions(t *testing.T) {
	tests := []struct {
		role    pipeline.AgentRole
		perm    string
		granted bool
	}{
		{pipeline.AgentRoleAdmin, PermManageUsers, true},
		{pipeline.AgentRoleManager, PermManageUsers, false},
		{pipeline.AgentRoleManager, PermManageBookings, true},
		{pipeline.AgentRoleSalesExec, PermCreateBookings, true},
		{pipeline.AgentRoleSalesExec, PermManageProjects, false},
		{pipeline.AgentRoleTelecaller, PermCreateInteraction, true},
		{pipeline.AgentRoleTelecaller, PermCreateBookings, false},
	}

	for _, tt := range tests {
		c := &Claims{Role: tt.role}
		assert.Equal(t, tt.granted, c.HasPermission(tt.perm),
			"%s / %s", tt.role, tt.perm)
	}

	c := &Claims{Role: pipeline.AgentRoleTelecaller}
	assert.True(t, c.HasAnyPermission(PermManageUsers, PermViewLeads))
	assert.False(t, c.HasAnyPermission(PermManageUsers, PermManageProjects))
}

func TestInMemorySessionRevoker(t *testing.T) {
	r := NewInMemorySessionRevoker()
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// User-level teardown invalidates anything issued earlier
	issuedBefore := time.Now().Add(-time.Second)
	require.NoError(t, r.RevokeUser(ctx, "user-1", time.Hour))

	revoked, err = r.IsUserRevoked(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsUserRevoked(ctx, "user-1", time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.False(t, revoked)
}
