package pipeline

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// DistributionService is the capacity read model behind lead distribution.
// It computes per-agent load figures and suggests the least-loaded active
// agent for an unassigned lead. It never assigns anything itself.
type DistributionService struct {
	leadRepo  pipeline.LeadRepository
	agentRepo pipeline.AgentRepository
}

// NewDistributionService creates a new DistributionService
func NewDistributionService(leadRepo pipeline.LeadRepository, agentRepo pipeline.AgentRepository) *DistributionService {
	return &DistributionService{
		leadRepo:  leadRepo,
		agentRepo: agentRepo,
	}
}

// AgentLoad computes one agent's current load figures
func (s *DistributionService) AgentLoad(ctx context.Context, tenantID, agentID uuid.UUID) (*AgentLoadResponse, error) {
	agent, err := s.agentRepo.FindByIDForTenant(ctx, tenantID, agentID)
	if err != nil {
		return nil, err
	}

	active, err := s.leadRepo.CountActiveByOwner(ctx, tenantID, agentID)
	if err != nil {
		return nil, err
	}

	response := toAgentLoadResponse(agent, active)
	return &response, nil
}

// TeamLoad computes load figures for every active agent, least loaded first
func (s *DistributionService) TeamLoad(ctx context.Context, tenantID uuid.UUID) ([]AgentLoadResponse, error) {
	agents, err := s.agentRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]AgentLoadResponse, 0, len(agents))
	for i := range agents {
		active, err := s.leadRepo.CountActiveByOwner(ctx, tenantID, agents[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toAgentLoadResponse(&agents[i], active))
	}

	sortByLoad(responses)
	return responses, nil
}

// SuggestAssignee picks the active agent with the lowest load. Agents past
// their cap are skipped while any under-cap agent remains; when every agent
// is overloaded the least loaded one is still suggested.
func (s *DistributionService) SuggestAssignee(ctx context.Context, tenantID uuid.UUID) (*AgentLoadResponse, error) {
	loads, err := s.TeamLoad(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(loads) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No active agents available for assignment")
	}

	for i := range loads {
		if !loads[i].Overloaded {
			return &loads[i], nil
		}
	}

	return &loads[0], nil
}

func toAgentLoadResponse(agent *pipeline.Agent, activeLeads int64) AgentLoadResponse {
	return AgentLoadResponse{
		AgentID:     agent.ID,
		Name:        agent.Name,
		Role:        string(agent.Role),
		CapacityCap: agent.CapacityCap,
		ActiveLeads: activeLeads,
		Load:        agent.Load(activeLeads),
		Overloaded:  agent.IsOverloaded(activeLeads),
	}
}

// sortByLoad orders ascending by load, then by active-lead count so that
// uncapped agents with fewer leads come first.
func sortByLoad(loads []AgentLoadResponse) {
	sort.SliceStable(loads, func(i, j int) bool {
		if loads[i].Load != loads[j].Load {
			return loads[i].Load < loads[j].Load
		}
		return loads[i].ActiveLeads < loads[j].ActiveLeads
	})
}
