package resilience

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

type leadStore struct {
	f *Facade
}

func (s *leadStore) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Lead, error) {
	return execute(ctx, s.f, "lead.find_by_id", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (*pipeline.Lead, error) {
			return r.FindByID(ctx, id)
		})
}

func (s *leadStore) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pipeline.Lead, error) {
	return execute(ctx, s.f, "lead.find_by_id_for_tenant", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (*pipeline.Lead, error) {
			return r.FindByIDForTenant(ctx, tenantID, id)
		})
}

func (s *leadStore) FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*pipeline.Lead, error) {
	return execute(ctx, s.f, "lead.find_by_phone", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (*pipeline.Lead, error) {
			return r.FindByPhone(ctx, tenantID, phone)
		})
}

func (s *leadStore) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	return execute(ctx, s.f, "lead.find_all", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) ([]pipeline.Lead, error) {
			return r.FindAllForTenant(ctx, tenantID, filter)
		})
}

func (s *leadStore) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	return execute(ctx, s.f, "lead.find_by_owner", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) ([]pipeline.Lead, error) {
			return r.FindByOwner(ctx, tenantID, ownerID, filter)
		})
}

func (s *leadStore) FindByStatus(ctx context.Context, tenantID uuid.UUID, status pipeline.LeadStatus, filter shared.Filter) ([]pipeline.Lead, error) {
	return execute(ctx, s.f, "lead.find_by_status", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) ([]pipeline.Lead, error) {
			return r.FindByStatus(ctx, tenantID, status, filter)
		})
}

func (s *leadStore) FindUnassigned(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	return execute(ctx, s.f, "lead.find_unassigned", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) ([]pipeline.Lead, error) {
			return r.FindUnassigned(ctx, tenantID, filter)
		})
}

func (s *leadStore) Save(ctx context.Context, lead *pipeline.Lead) error {
	return executeErr(ctx, s.f, "lead.save", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) error {
			return r.Save(ctx, lead)
		})
}

func (s *leadStore) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return executeErr(ctx, s.f, "lead.delete", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) error {
			return r.DeleteForTenant(ctx, tenantID, id)
		})
}

func (s *leadStore) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	return execute(ctx, s.f, "lead.count", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (int64, error) {
			return r.CountForTenant(ctx, tenantID, filter)
		})
}

func (s *leadStore) CountByStatus(ctx context.Context, tenantID uuid.UUID, status pipeline.LeadStatus) (int64, error) {
	return execute(ctx, s.f, "lead.count_by_status", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (int64, error) {
			return r.CountByStatus(ctx, tenantID, status)
		})
}

func (s *leadStore) CountActiveByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error) {
	return execute(ctx, s.f, "lead.count_active_by_owner", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (int64, error) {
			return r.CountActiveByOwner(ctx, tenantID, ownerID)
		})
}

func (s *leadStore) CountCreatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (int64, error) {
	return execute(ctx, s.f, "lead.count_created_since", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (int64, error) {
			return r.CountCreatedSince(ctx, tenantID, since)
		})
}

func (s *leadStore) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	return execute(ctx, s.f, "lead.exists_by_phone", s.f.remote.Leads, s.f.simulated.Leads,
		func(ctx context.Context, r pipeline.LeadRepository) (bool, error) {
			return r.ExistsByPhone(ctx, tenantID, phone)
		})
}

type interactionStore struct {
	f *Facade
}

func (s *interactionStore) Save(ctx context.Context, interaction *pipeline.Interaction) error {
	return executeErr(ctx, s.f, "interaction.save", s.f.remote.Interactions, s.f.simulated.Interactions,
		func(ctx context.Context, r pipeline.InteractionRepository) error {
			return r.Save(ctx, interaction)
		})
}

func (s *interactionStore) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Interaction, error) {
	return execute(ctx, s.f, "interaction.find_by_id", s.f.remote.Interactions, s.f.simulated.Interactions,
		func(ctx context.Context, r pipeline.InteractionRepository) (*pipeline.Interaction, error) {
			return r.FindByID(ctx, id)
		})
}

func (s *interactionStore) ListByLead(ctx context.Context, tenantID, leadID uuid.UUID, filter shared.Filter) ([]pipeline.Interaction, error) {
	return execute(ctx, s.f, "interaction.list_by_lead", s.f.remote.Interactions, s.f.simulated.Interactions,
		func(ctx context.Context, r pipeline.InteractionRepository) ([]pipeline.Interaction, error) {
			return r.ListByLead(ctx, tenantID, leadID, filter)
		})
}

func (s *interactionStore) CountByLead(ctx context.Context, tenantID, leadID uuid.UUID) (int64, error) {
	return execute(ctx, s.f, "interaction.count_by_lead", s.f.remote.Interactions, s.f.simulated.Interactions,
		func(ctx context.Context, r pipeline.InteractionRepository) (int64, error) {
			return r.CountByLead(ctx, tenantID, leadID)
		})
}

func (s *interactionStore) FindDueFollowUps(ctx context.Context, tenantID uuid.UUID, by time.Time, filter shared.Filter) ([]pipeline.Interaction, error) {
	return execute(ctx, s.f, "interaction.find_due_follow_ups", s.f.remote.Interactions, s.f.simulated.Interactions,
		func(ctx context.Context, r pipeline.InteractionRepository) ([]pipeline.Interaction, error) {
			return r.FindDueFollowUps(ctx, tenantID, by, filter)
		})
}

type agentStore struct {
	f *Facade
}

func (s *agentStore) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Agent, error) {
	return execute(ctx, s.f, "agent.find_by_id", s.f.remote.Agents, s.f.simulated.Agents,
		func(ctx context.Context, r pipeline.AgentRepository) (*pipeline.Agent, error) {
			return r.FindByID(ctx, id)
		})
}

func (s *agentStore) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pipeline.Agent, error) {
	return execute(ctx, s.f, "agent.find_by_id_for_tenant", s.f.remote.Agents, s.f.simulated.Agents,
		func(ctx context.Context, r pipeline.AgentRepository) (*pipeline.Agent, error) {
			return r.FindByIDForTenant(ctx, tenantID, id)
		})
}

func (s *agentStore) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Agent, error) {
	return execute(ctx, s.f, "agent.find_all", s.f.remote.Agents, s.f.simulated.Agents,
		func(ctx context.Context, r pipeline.AgentRepository) ([]pipeline.Agent, error) {
			return r.FindAllForTenant(ctx, tenantID, filter)
		})
}

func (s *agentStore) FindActive(ctx context.Context, tenantID uuid.UUID) ([]pipeline.Agent, error) {
	return execute(ctx, s.f, "agent.find_active", s.f.remote.Agents, s.f.simulated.Agents,
		func(ctx context.Context, r pipeline.AgentRepository) ([]pipeline.Agent, error) {
			return r.FindActive(ctx, tenantID)
		})
}

func (s *agentStore) FindActiveByRole(ctx context.Context, tenantID uuid.UUID, role pipeline.AgentRole) ([]pipeline.Agent, error) {
	return execute(ctx, s.f, "agent.find_active_by_role", s.f.remote.Agents, s.f.simulated.Agents,
		func(ctx context.Context, r pipeline.AgentRepository) ([]pipeline.Agent, error) {
			return r.FindActiveByRole(ctx, tenantID, role)
		})
}

func (s *agentStore) Save(ctx context.Context, agent *pipeline.Agent) error {
	return executeErr(ctx, s.f, "agent.save", s.f.remote.Agents, s.f.simulated.Agents,
		func(ctx context.Context, r pipeline.AgentRepository) error {
			return r.Save(ctx, agent)
		})
}

func (s *agentStore) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	return execute(ctx, s.f, "agent.count", s.f.remote.Agents, s.f.simulated.Agents,
		func(ctx context.Context, r pipeline.AgentRepository) (int64, error) {
			return r.CountForTenant(ctx, tenantID, filter)
		})
}

var (
	_ pipeline.LeadRepository        = (*leadStore)(nil)
	_ pipeline.InteractionRepository = (*interactionStore)(nil)
	_ pipeline.AgentRepository       = (*agentStore)(nil)
)
