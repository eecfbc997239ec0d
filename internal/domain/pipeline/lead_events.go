package pipeline

import (
	"github.com/google/uuid"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeLead = "Lead"

// Event type constants
const (
	EventTypeLeadCreated       = "LeadCreated"
	EventTypeLeadAssigned      = "LeadAssigned"
	EventTypeLeadStatusChanged = "LeadStatusChanged"
	EventTypeInteractionLogged = "InteractionLogged"
)

// LeadCreatedEvent is raised when a new lead enters the pipeline
type LeadCreatedEvent struct {
	shared.BaseDomainEvent
	LeadID uuid.UUID  `json:"lead_id"`
	Name   string     `json:"name"`
	Phone  string     `json:"phone"`
	Source LeadSource `json:"source"`
}

// NewLeadCreatedEvent creates a new LeadCreatedEvent
func NewLeadCreatedEvent(lead *Lead) *LeadCreatedEvent {
	return &LeadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCreated, AggregateTypeLead, lead.ID, lead.TenantID),
		LeadID:          lead.ID,
		Name:            lead.Name,
		Phone:           lead.Phone,
		Source:          lead.Source,
	}
}

// EventType returns the event type name
func (e *LeadCreatedEvent) EventType() string {
	return EventTypeLeadCreated
}

// LeadAssignedEvent is raised when a lead is assigned or reassigned to an agent
type LeadAssignedEvent struct {
	shared.BaseDomainEvent
	LeadID  uuid.UUID  `json:"lead_id"`
	AgentID uuid.UUID  `json:"agent_id"`
	Status  LeadStatus `json:"status"`
}

// NewLeadAssignedEvent creates a new LeadAssignedEvent
func NewLeadAssignedEvent(lead *Lead, agentID uuid.UUID) *LeadAssignedEvent {
	return &LeadAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadAssigned, AggregateTypeLead, lead.ID, lead.TenantID),
		LeadID:          lead.ID,
		AgentID:         agentID,
		Status:          lead.Status,
	}
}

// EventType returns the event type name
func (e *LeadAssignedEvent) EventType() string {
	return EventTypeLeadAssigned
}

// LeadStatusChangedEvent is raised on every pipeline status transition,
// including the BOOKED side effect of a booking confirmation
type LeadStatusChangedEvent struct {
	shared.BaseDomainEvent
	LeadID         uuid.UUID  `json:"lead_id"`
	PreviousStatus LeadStatus `json:"previous_status"`
	NewStatus      LeadStatus `json:"new_status"`
}

// NewLeadStatusChangedEvent creates a new LeadStatusChangedEvent
func NewLeadStatusChangedEvent(lead *Lead, previous LeadStatus) *LeadStatusChangedEvent {
	return &LeadStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadStatusChanged, AggregateTypeLead, lead.ID, lead.TenantID),
		LeadID:          lead.ID,
		PreviousStatus:  previous,
		NewStatus:       lead.Status,
	}
}

// EventType returns the event type name
func (e *LeadStatusChangedEvent) EventType() string {
	return EventTypeLeadStatusChanged
}

// InteractionLoggedEvent is raised when a note or site visit is recorded
// against a lead
type InteractionLoggedEvent struct {
	shared.BaseDomainEvent
	LeadID        uuid.UUID       `json:"lead_id"`
	InteractionID uuid.UUID       `json:"interaction_id"`
	Kind          InteractionKind `json:"kind"`
}

// NewInteractionLoggedEvent creates a new InteractionLoggedEvent
func NewInteractionLoggedEvent(tenantID uuid.UUID, interaction *Interaction) *InteractionLoggedEvent {
	return &InteractionLoggedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInteractionLogged, AggregateTypeLead, interaction.LeadID, tenantID),
		LeadID:          interaction.LeadID,
		InteractionID:   interaction.ID,
		Kind:            interaction.Kind,
	}
}

// EventType returns the event type name
func (e *InteractionLoggedEvent) EventType() string {
	return EventTypeInteractionLogged
}
