package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgent(t *testing.T) {
	tenantID := uuid.New()

	agent, err := NewAgent(tenantID, "Sunita Rao", AgentRoleSalesExec, 15)
	require.NoError(t, err)
	assert.Equal(t, "Sunita Rao", agent.Name)
	assert.Equal(t, AgentRoleSalesExec, agent.Role)
	assert.Equal(t, 15, agent.CapacityCap)
	assert.True(t, agent.Active)

	_, err = NewAgent(tenantID, "", AgentRoleSalesExec, 15)
	assert.Error(t, err)

	_, err = NewAgent(tenantID, "Sunita Rao", AgentRole("Intern"), 15)
	assert.Error(t, err)

	_, err = NewAgent(tenantID, "Sunita Rao", AgentRoleSalesExec, -1)
	assert.Error(t, err)
}

func TestAgent_Load(t *testing.T) {
	tests := []struct {
		name     string
		cap      int
		active   int64
		expected float64
	}{
		{"half full", 10, 5, 0.5},
		{"at cap", 10, 10, 1.0},
		{"over cap", 10, 15, 1.5},
		{"unlimited cap", 0, 100, 0},
		{"empty", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := NewAgent(uuid.New(), "Agent", AgentRoleTelecaller, tt.cap)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, agent.Load(tt.active), 0.0001)
		})
	}
}

func TestAgent_IsOverloaded(t *testing.T) {
	agent, err := NewAgent(uuid.New(), "Agent", AgentRoleSalesExec, 10)
	require.NoError(t, err)

	assert.False(t, agent.IsOverloaded(9))
	assert.False(t, agent.IsOverloaded(10), "at cap is not overloaded")
	assert.True(t, agent.IsOverloaded(11))

	unlimited, err := NewAgent(uuid.New(), "Agent", AgentRoleManager, 0)
	require.NoError(t, err)
	assert.False(t, unlimited.IsOverloaded(1000))
}
