package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jdcrm/backend/internal/infrastructure/resilience"
)

// SystemHandler serves health and connectivity endpoints
type SystemHandler struct {
	BaseHandler
	facade    *resilience.Facade
	appName   string
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(facade *resilience.Facade, appName, version string) *SystemHandler {
	return &SystemHandler{
		facade:    facade,
		appName:   appName,
		version:   version,
		startedAt: time.Now(),
	}
}

// ConnectivityResponse reports the current data store reachability
type ConnectivityResponse struct {
	State     string    `json:"state"`
	CheckedAt time.Time `json:"checked_at"`
}

// Health godoc
//
//	@Summary		Health check
//	@Description	Liveness probe; always returns ok while the process serves requests
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.appName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Connectivity godoc
//
//	@Summary		Data store connectivity
//	@Description	Probe the remote store and report LIVE or DEGRADED
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=ConnectivityResponse}
//	@Security		BearerAuth
//	@Router			/system/connectivity [get]
func (h *SystemHandler) Connectivity(c *gin.Context) {
	state := h.facade.Probe(c.Request.Context())
	h.Success(c, ConnectivityResponse{
		State:     string(state),
		CheckedAt: time.Now(),
	})
}
