package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/shared"
)

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByID finds a lead by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)

	// FindByIDForTenant finds a lead by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lead, error)

	// FindByPhone finds a lead by phone number for a tenant
	// Used to enforce phone uniqueness at capture time
	FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*Lead, error)

	// FindAllForTenant finds all leads for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// FindByOwner finds leads assigned to an agent
	FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// FindByStatus finds leads by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status LeadStatus, filter shared.Filter) ([]Lead, error)

	// FindUnassigned finds leads with no owner for a tenant
	FindUnassigned(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// Save creates or updates a lead
	Save(ctx context.Context, lead *Lead) error

	// DeleteForTenant deletes a lead for a tenant (soft delete)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts leads for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts leads by status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status LeadStatus) (int64, error)

	// CountActiveByOwner counts non-terminal leads assigned to an agent
	// Feeds the per-agent workload figure used by distribution
	CountActiveByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error)

	// CountCreatedSince counts leads captured at or after the given time
	CountCreatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (int64, error)

	// ExistsByPhone checks if a phone number is already captured for a tenant
	ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error)
}

// InteractionRepository defines the interface for interaction persistence.
// Interactions are append-only; there is no update or delete.
type InteractionRepository interface {
	// Save appends an interaction to a lead's timeline
	Save(ctx context.Context, interaction *Interaction) error

	// FindByID finds an interaction by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Interaction, error)

	// ListByLead lists a lead's interactions, most recent first
	ListByLead(ctx context.Context, tenantID, leadID uuid.UUID, filter shared.Filter) ([]Interaction, error)

	// CountByLead counts a lead's interactions
	CountByLead(ctx context.Context, tenantID, leadID uuid.UUID) (int64, error)

	// FindDueFollowUps finds interactions whose follow-up time falls on or before the given time
	FindDueFollowUps(ctx context.Context, tenantID uuid.UUID, by time.Time, filter shared.Filter) ([]Interaction, error)
}

// AgentRepository defines the interface for agent persistence
type AgentRepository interface {
	// FindByID finds an agent by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Agent, error)

	// FindByIDForTenant finds an agent by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Agent, error)

	// FindAllForTenant finds all agents for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Agent, error)

	// FindActive finds active agents for a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Agent, error)

	// FindActiveByRole finds active agents with the given role
	FindActiveByRole(ctx context.Context, tenantID uuid.UUID, role AgentRole) ([]Agent, error)

	// Save creates or updates an agent
	Save(ctx context.Context, agent *Agent) error

	// CountForTenant counts agents for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
