package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// AgentService manages the sales team roster
type AgentService struct {
	agentRepo pipeline.AgentRepository
	logger    *zap.Logger
}

// NewAgentService creates a new AgentService
func NewAgentService(agentRepo pipeline.AgentRepository, logger *zap.Logger) *AgentService {
	return &AgentService{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

// Create registers a new agent
func (s *AgentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateAgentRequest) (*AgentResponse, error) {
	agent, err := pipeline.NewAgent(tenantID, req.Name, pipeline.AgentRole(req.Role), req.CapacityCap)
	if err != nil {
		return nil, err
	}

	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to save agent: %w", err)
	}

	s.logger.Info("agent registered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("agent_id", agent.ID.String()),
		zap.String("role", req.Role),
	)

	resp := ToAgentResponse(agent)
	return &resp, nil
}

// GetByID retrieves an agent by ID
func (s *AgentService) GetByID(ctx context.Context, tenantID, agentID uuid.UUID) (*AgentResponse, error) {
	agent, err := s.agentRepo.FindByIDForTenant(ctx, tenantID, agentID)
	if err != nil {
		return nil, err
	}
	resp := ToAgentResponse(agent)
	return &resp, nil
}

// List retrieves a paginated list of agents
func (s *AgentService) List(ctx context.Context, tenantID uuid.UUID, filter AgentListFilter) ([]AgentResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	agents, err := s.agentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list agents: %w", err)
	}
	total, err := s.agentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count agents: %w", err)
	}

	return ToAgentResponses(agents), total, nil
}

// Update adjusts an agent's capacity cap or availability
func (s *AgentService) Update(ctx context.Context, tenantID, agentID uuid.UUID, req UpdateAgentRequest) (*AgentResponse, error) {
	agent, err := s.agentRepo.FindByIDForTenant(ctx, tenantID, agentID)
	if err != nil {
		return nil, err
	}

	if req.CapacityCap != nil {
		if *req.CapacityCap < 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Capacity cap cannot be negative")
		}
		agent.CapacityCap = *req.CapacityCap
	}
	if req.Active != nil {
		agent.Active = *req.Active
	}

	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to save agent: %w", err)
	}

	resp := ToAgentResponse(agent)
	return &resp, nil
}

// ToAgentResponse converts a domain Agent to AgentResponse
func ToAgentResponse(a *pipeline.Agent) AgentResponse {
	return AgentResponse{
		ID:          a.ID,
		TenantID:    a.TenantID,
		Name:        a.Name,
		Role:        string(a.Role),
		CapacityCap: a.CapacityCap,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAgentResponses converts a slice of domain Agents to responses
func ToAgentResponses(agents []pipeline.Agent) []AgentResponse {
	responses := make([]AgentResponse, len(agents))
	for i := range agents {
		responses[i] = ToAgentResponse(&agents[i])
	}
	return responses
}
