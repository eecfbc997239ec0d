package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/pipeline"
)

// CaptureLeadRequest represents a request to capture a new lead
type CaptureLeadRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Phone     string     `json:"phone" binding:"required,min=7,max=20"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Budget    string     `json:"budget" binding:"max=50"`
	Source    string     `json:"source" binding:"required"`
	ProjectID *uuid.UUID `json:"project_id"`
	OwnerID   *uuid.UUID `json:"owner_id"`
}

// AssignLeadRequest represents a request to assign a lead to an agent
type AssignLeadRequest struct {
	AgentID uuid.UUID `json:"agent_id" binding:"required"`
}

// UpdateLeadStatusRequest represents a request to move a lead through the pipeline
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LogInteractionRequest represents a request to record a touchpoint with a lead
type LogInteractionRequest struct {
	Kind           string     `json:"kind" binding:"required,oneof=note site_visit"`
	Body           string     `json:"body" binding:"max=2000"`
	NextFollowUpAt *time.Time `json:"next_follow_up_at"`
	CreatedBy      uuid.UUID  `json:"-"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email,omitempty"`
	Budget    string     `json:"budget,omitempty"`
	Source    string     `json:"source"`
	Status    string     `json:"status"`
	OwnerID   *uuid.UUID `json:"owner_id"`
	ProjectID *uuid.UUID `json:"project_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// InteractionResponse represents an interaction in API responses
type InteractionResponse struct {
	ID             uuid.UUID  `json:"id"`
	LeadID         uuid.UUID  `json:"lead_id"`
	Kind           string     `json:"kind"`
	Body           string     `json:"body"`
	NextFollowUpAt *time.Time `json:"next_follow_up_at"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

// LeadListFilter represents filter options for the lead list
type LeadListFilter struct {
	Search    string     `form:"search"`
	Status    string     `form:"status"`
	Source    string     `form:"source"`
	OwnerID   *uuid.UUID `form:"owner_id"`
	ProjectID *uuid.UUID `form:"project_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateAgentRequest represents a request to register a sales agent
type CreateAgentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Role        string `json:"role" binding:"required,oneof=Admin Manager 'Sales Exec' Telecaller"`
	CapacityCap int    `json:"capacity_cap" binding:"omitempty,min=0,max=1000"`
}

// UpdateAgentRequest adjusts an agent's capacity or availability
type UpdateAgentRequest struct {
	CapacityCap *int  `json:"capacity_cap" binding:"omitempty,min=0,max=1000"`
	Active      *bool `json:"active"`
}

// AgentResponse represents an agent in API responses
type AgentResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CapacityCap int       `json:"capacity_cap"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AgentListFilter represents filter options for the agent list
type AgentListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AgentLoadResponse reports one agent's capacity figures
type AgentLoadResponse struct {
	AgentID     uuid.UUID `json:"agent_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CapacityCap int       `json:"capacity_cap"`
	ActiveLeads int64     `json:"active_leads"`
	Load        float64   `json:"load"`
	Overloaded  bool      `json:"overloaded"`
}

// ToLeadResponse converts a domain Lead to LeadResponse
func ToLeadResponse(l *pipeline.Lead) LeadResponse {
	return LeadResponse{
		ID:        l.ID,
		TenantID:  l.TenantID,
		Name:      l.Name,
		Phone:     l.Phone,
		Email:     l.Email,
		Budget:    l.Budget,
		Source:    string(l.Source),
		Status:    string(l.Status),
		OwnerID:   l.OwnerID,
		ProjectID: l.ProjectID,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// ToLeadResponses converts a slice of domain Leads to responses
func ToLeadResponses(leads []pipeline.Lead) []LeadResponse {
	responses := make([]LeadResponse, len(leads))
	for i := range leads {
		responses[i] = ToLeadResponse(&leads[i])
	}
	return responses
}

// ToInteractionResponse converts a domain Interaction to InteractionResponse
func ToInteractionResponse(in *pipeline.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:             in.ID,
		LeadID:         in.LeadID,
		Kind:           string(in.Kind),
		Body:           in.Body,
		NextFollowUpAt: in.NextFollowUpAt,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      in.CreatedAt,
	}
}

// ToInteractionResponses converts a slice of domain Interactions to responses
func ToInteractionResponses(interactions []pipeline.Interaction) []InteractionResponse {
	responses := make([]InteractionResponse, len(interactions))
	for i := range interactions {
		responses[i] = ToInteractionResponse(&interactions[i])
	}
	return responses
}
