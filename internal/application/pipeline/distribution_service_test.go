package pipeline

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcrm/backend/internal/domain/pipeline"
)

func mustAgent(t *testing.T, tenantID uuid.UUID, name string, cap int) pipeline.Agent {
	t.Helper()
	agent, err := pipeline.NewAgent(tenantID, name, pipeline.AgentRoleSalesExec, cap)
	require.NoError(t, err)
	return *agent
}

func TestDistributionService_AgentLoad(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("computes load against the cap", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		agentRepo := new(MockAgentRepository)
		service := NewDistributionService(leadRepo, agentRepo)

		agent := mustAgent(t, tenantID, "Priya", 10)
		agentRepo.On("FindByIDForTenant", ctx, tenantID, agent.ID).Return(&agent, nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, agent.ID).Return(int64(4), nil)

		load, err := service.AgentLoad(ctx, tenantID, agent.ID)

		assert.NoError(t, err)
		assert.InDelta(t, 0.4, load.Load, 0.001)
		assert.False(t, load.Overloaded)
	})

	t.Run("uncapped agents always read zero load", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		agentRepo := new(MockAgentRepository)
		service := NewDistributionService(leadRepo, agentRepo)

		agent := mustAgent(t, tenantID, "Priya", 0)
		agentRepo.On("FindByIDForTenant", ctx, tenantID, agent.ID).Return(&agent, nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, agent.ID).Return(int64(250), nil)

		load, err := service.AgentLoad(ctx, tenantID, agent.ID)

		assert.NoError(t, err)
		assert.Zero(t, load.Load)
		assert.False(t, load.Overloaded)
	})

	t.Run("flags overload past the cap without blocking", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		agentRepo := new(MockAgentRepository)
		service := NewDistributionService(leadRepo, agentRepo)

		agent := mustAgent(t, tenantID, "Priya", 5)
		agentRepo.On("FindByIDForTenant", ctx, tenantID, agent.ID).Return(&agent, nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, agent.ID).Return(int64(7), nil)

		load, err := service.AgentLoad(ctx, tenantID, agent.ID)

		assert.NoError(t, err)
		assert.InDelta(t, 1.4, load.Load, 0.001)
		assert.True(t, load.Overloaded)
	})
}

func TestDistributionService_SuggestAssignee(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("picks the least loaded active agent", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		agentRepo := new(MockAgentRepository)
		service := NewDistributionService(leadRepo, agentRepo)

		busy := mustAgent(t, tenantID, "Busy", 10)
		idle := mustAgent(t, tenantID, "Idle", 10)
		agentRepo.On("FindActive", ctx, tenantID).Return([]pipeline.Agent{busy, idle}, nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, busy.ID).Return(int64(8), nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, idle.ID).Return(int64(2), nil)

		suggestion, err := service.SuggestAssignee(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, idle.ID, suggestion.AgentID)
	})

	t.Run("skips overloaded agents while under-cap agents remain", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		agentRepo := new(MockAgentRepository)
		service := NewDistributionService(leadRepo, agentRepo)

		over := mustAgent(t, tenantID, "Over", 2)
		under := mustAgent(t, tenantID, "Under", 10)
		agentRepo.On("FindActive", ctx, tenantID).Return([]pipeline.Agent{over, under}, nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, over.ID).Return(int64(5), nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, under.ID).Return(int64(9), nil)

		suggestion, err := service.SuggestAssignee(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, under.ID, suggestion.AgentID)
	})

	t.Run("still suggests when everyone is overloaded", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		agentRepo := new(MockAgentRepository)
		service := NewDistributionService(leadRepo, agentRepo)

		a := mustAgent(t, tenantID, "A", 2)
		b := mustAgent(t, tenantID, "B", 2)
		agentRepo.On("FindActive", ctx, tenantID).Return([]pipeline.Agent{a, b}, nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, a.ID).Return(int64(6), nil)
		leadRepo.On("CountActiveByOwner", ctx, tenantID, b.ID).Return(int64(4), nil)

		suggestion, err := service.SuggestAssignee(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, b.ID, suggestion.AgentID)
	})

	t.Run("fails when no active agents exist", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		agentRepo := new(MockAgentRepository)
		service := NewDistributionService(leadRepo, agentRepo)

		agentRepo.On("FindActive", ctx, tenantID).Return([]pipeline.Agent{}, nil)

		_, err := service.SuggestAssignee(ctx, tenantID)

		assert.Error(t, err)
	})
}

func TestDistributionService_TeamLoad(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	agentRepo := new(MockAgentRepository)
	service := NewDistributionService(leadRepo, agentRepo)

	a := mustAgent(t, tenantID, "A", 10)
	b := mustAgent(t, tenantID, "B", 10)
	c := mustAgent(t, tenantID, "C", 0)
	agentRepo.On("FindActive", ctx, tenantID).Return([]pipeline.Agent{a, b, c}, nil)
	leadRepo.On("CountActiveByOwner", ctx, tenantID, a.ID).Return(int64(5), nil)
	leadRepo.On("CountActiveByOwner", ctx, tenantID, b.ID).Return(int64(1), nil)
	leadRepo.On("CountActiveByOwner", ctx, tenantID, c.ID).Return(int64(3), nil)

	loads, err := service.TeamLoad(ctx, tenantID)

	assert.NoError(t, err)
	require.Len(t, loads, 3)
	// Uncapped C reads zero load; ties break on active-lead count.
	assert.Equal(t, c.ID, loads[0].AgentID)
	assert.Equal(t, b.ID, loads[1].AgentID)
	assert.Equal(t, a.ID, loads[2].AgentID)
}
