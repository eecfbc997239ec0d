package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/infrastructure/resilience"
	"github.com/jdcrm/backend/internal/interfaces/http/dto"
	"github.com/jdcrm/backend/internal/interfaces/http/middleware"
)

// SSEClient represents one connected event-stream subscriber
type SSEClient struct {
	ID       string
	UserID   string
	TenantID string
	Chan     chan SSEMessage
	Done     chan struct{}
}

// SSEMessage is a single server-sent event
type SSEMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
	ID    string      `json:"id,omitempty"`
}

// ConnectivityStatePayload is the wire shape of a connectivity event
type ConnectivityStatePayload struct {
	State     string    `json:"state"`
	Previous  string    `json:"previous,omitempty"`
	Op        string    `json:"op,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ConnectivitySSEHandler streams data store connectivity transitions to
// connected clients. It subscribes to the event bus and relays every
// ConnectivityChanged event; clients get the current state on connect so a
// UI can render the LIVE/DEGRADED banner without an extra request.
type ConnectivitySSEHandler struct {
	BaseHandler
	facade     *resilience.Facade
	clients    sync.Map
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	maxClients int
}

// ConnectivitySSEOption configures the SSE handler
type ConnectivitySSEOption func(*ConnectivitySSEHandler)

// WithSSELogger sets the logger
func WithSSELogger(logger *zap.Logger) ConnectivitySSEOption {
	return func(h *ConnectivitySSEHandler) {
		h.logger = logger
	}
}

// WithSSEHeartbeat sets the keep-alive interval
func WithSSEHeartbeat(interval time.Duration) ConnectivitySSEOption {
	return func(h *ConnectivitySSEHandler) {
		h.heartbeat = interval
	}
}

// WithSSEMaxClients caps concurrent subscribers
func WithSSEMaxClients(max int) ConnectivitySSEOption {
	return func(h *ConnectivitySSEHandler) {
		h.maxClients = max
	}
}

// NewConnectivitySSEHandler creates a new connectivity stream handler
func NewConnectivitySSEHandler(facade *resilience.Facade, opts ...ConnectivitySSEOption) *ConnectivitySSEHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &ConnectivitySSEHandler{
		facade:     facade,
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		maxClients: 1000,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start launches the heartbeat loop
func (h *ConnectivitySSEHandler) Start() {
	go h.heartbeatLoop()
}

// Stop disconnects all clients and stops background work
func (h *ConnectivitySSEHandler) Stop() {
	h.cancel()
	h.clients.Range(func(key, value interface{}) bool {
		if client, ok := value.(*SSEClient); ok {
			close(client.Done)
		}
		h.clients.Delete(key)
		return true
	})
}

// EventTypes implements shared.EventHandler
func (h *ConnectivitySSEHandler) EventTypes() []string {
	return []string{resilience.EventTypeConnectivityChanged}
}

// Handle implements shared.EventHandler and relays connectivity transitions
func (h *ConnectivitySSEHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	evt, ok := event.(*resilience.ConnectivityChangedEvent)
	if !ok {
		return nil
	}

	h.broadcast(SSEMessage{
		Event: "connectivity",
		ID:    evt.EventID().String(),
		Data: ConnectivityStatePayload{
			State:     evt.State.String(),
			Previous:  evt.Previous.String(),
			Op:        evt.Op,
			Timestamp: evt.OccurredAt(),
		},
	})
	return nil
}

func (h *ConnectivitySSEHandler) heartbeatLoop() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: "heartbeat",
				Data:  map[string]interface{}{"timestamp": time.Now().Unix()},
			})
		}
	}
}

func (h *ConnectivitySSEHandler) broadcast(msg SSEMessage) {
	h.clients.Range(func(key, value interface{}) bool {
		client, ok := value.(*SSEClient)
		if !ok {
			return true
		}
		select {
		case client.Chan <- msg:
		default:
			h.logger.Warn("SSE client buffer full, dropping message",
				zap.String("client_id", client.ID),
				zap.String("event", msg.Event))
		}
		return true
	})
}

// GetClientCount returns the number of connected subscribers
func (h *ConnectivitySSEHandler) GetClientCount() int {
	count := 0
	h.clients.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// Stream godoc
//
//	@Summary		Connectivity event stream
//	@Description	Subscribe to LIVE/DEGRADED transitions over server-sent events
//	@Tags			system
//	@Produce		text/event-stream
//	@Success		200	{string}	string	"event stream"
//	@Failure		503	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/system/connectivity/stream [get]
func (h *ConnectivitySSEHandler) Stream(c *gin.Context) {
	if h.GetClientCount() >= h.maxClients {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse(dto.ErrCodeInternal, "Too many active subscribers"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	client := &SSEClient{
		ID:       uuid.New().String(),
		UserID:   middleware.GetJWTUserID(c),
		TenantID: middleware.GetJWTTenantID(c),
		Chan:     make(chan SSEMessage, 16),
		Done:     make(chan struct{}),
	}
	h.clients.Store(client.ID, client)
	defer h.clients.Delete(client.ID)

	h.logger.Info("SSE client connected",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID))

	h.sendEvent(c, SSEMessage{
		Event: "connectivity",
		Data: ConnectivityStatePayload{
			State:     h.facade.Connectivity().String(),
			Timestamp: time.Now(),
		},
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()
	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("SSE client disconnected", zap.String("client_id", client.ID))
			return
		case <-client.Done:
			return
		case <-h.ctx.Done():
			return
		case msg := <-client.Chan:
			h.sendEvent(c, msg)
			c.Writer.Flush()
		}
	}
}

func (h *ConnectivitySSEHandler) sendEvent(c *gin.Context, msg SSEMessage) {
	data, err := json.Marshal(msg.Data)
	if err != nil {
		h.logger.Error("failed to marshal SSE payload", zap.Error(err))
		return
	}

	if msg.Event != "" {
		fmt.Fprintf(c.Writer, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(c.Writer, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", data)
}
