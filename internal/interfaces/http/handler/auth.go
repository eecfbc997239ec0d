package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/application/pipeline"
	domainpipeline "github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/infrastructure/auth"
	"github.com/jdcrm/backend/internal/interfaces/http/middleware"
)

// AuthHandler issues development tokens and manages session state.
// Production deployments mint tokens from an external identity service
// sharing the same signing secret; the mint endpoint is disabled there.
type AuthHandler struct {
	BaseHandler
	tokenService *auth.TokenService
	revoker      auth.SessionRevoker
	agentService *pipeline.AgentService
	env          string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokenService *auth.TokenService, revoker auth.SessionRevoker, agentService *pipeline.AgentService, env string) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		revoker:      revoker,
		agentService: agentService,
		env:          env,
	}
}

// MintTokenRequest identifies the agent a development token is issued for
type MintTokenRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	AgentID  uuid.UUID `json:"agent_id" binding:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	AgentID   uuid.UUID `json:"agent_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}

// SessionResponse describes the authenticated session
type SessionResponse struct {
	UserID      string    `json:"user_id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MintToken godoc
//
//	@Summary		Issue a development token
//	@Description	Issue a signed access token for an existing agent. Disabled in production.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MintTokenRequest	true	"Agent identity"
//	@Success		200		{object}	dto.Response{data=TokenResponse}
//	@Failure		403		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Router			/auth/token [post]
func (h *AuthHandler) MintToken(c *gin.Context) {
	if h.env == "production" {
		h.Forbidden(c, "Token minting is disabled in this environment")
		return
	}

	var req MintTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	agent, err := h.agentService.GetByID(c.Request.Context(), req.TenantID, req.AgentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	token, expiresAt, err := h.tokenService.GenerateToken(auth.GenerateTokenInput{
		TenantID: req.TenantID,
		UserID:   req.AgentID,
		Name:     agent.Name,
		Role:     domainpipeline.AgentRole(agent.Role),
	})
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}

	h.Success(c, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		AgentID:   req.AgentID,
		Name:      agent.Name,
		Role:      agent.Role,
	})
}

// Me godoc
//
//	@Summary		Current session
//	@Description	Get the authenticated agent's identity and effective permissions
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=SessionResponse}
//	@Failure		401	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp := SessionResponse{
		UserID:      claims.UserID,
		TenantID:    claims.TenantID,
		Name:        claims.Name,
		Role:        string(claims.Role),
		Permissions: auth.PermissionsForRole(claims.Role),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}

	h.Success(c, resp)
}

// Logout godoc
//
//	@Summary		Revoke the current session
//	@Description	Invalidate the presented token for its remaining lifetime
//	@Tags			auth
//	@Produce		json
//	@Success		204	"Session revoked"
//	@Failure		401	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), claims.ID, claims.GetRemainingTTL()); err != nil {
		h.InternalError(c, "Failed to revoke session")
		return
	}

	h.NoContent(c)
}
