package pipeline

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// AgentRole drives permissions in the presentation layer; the engine only
// consumes it for capacity tracking
type AgentRole string

const (
	AgentRoleAdmin      AgentRole = "Admin"
	AgentRoleManager    AgentRole = "Manager"
	AgentRoleSalesExec  AgentRole = "Sales Exec"
	AgentRoleTelecaller AgentRole = "Telecaller"
)

// IsValid checks if the role is a known agent role
func (r AgentRole) IsValid() bool {
	switch r {
	case AgentRoleAdmin, AgentRoleManager, AgentRoleSalesExec, AgentRoleTelecaller:
		return true
	}
	return false
}

// Agent represents a sales agent as seen by the distribution read model
type Agent struct {
	shared.TenantAggregateRoot
	Name        string
	Role        AgentRole
	CapacityCap int  // 0 means unlimited
	Active      bool // Inactive agents are skipped during distribution
}

// NewAgent creates a new agent
func NewAgent(tenantID uuid.UUID, name string, role AgentRole, capacityCap int) (*Agent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Agent name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown agent role")
	}
	if capacityCap < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Capacity cap cannot be negative")
	}

	return &Agent{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Role:                role,
		CapacityCap:         capacityCap,
		Active:              true,
	}, nil
}

// Load returns the agent's pipeline load as a fraction of its cap.
// A cap of zero means unlimited capacity and always reads as zero load.
func (a *Agent) Load(activeLeadCount int64) float64 {
	if a.CapacityCap == 0 {
		return 0
	}
	return float64(activeLeadCount) / float64(a.CapacityCap)
}

// IsOverloaded returns true when the agent holds more active leads than
// its cap allows. Overload is a signal for distribution decisions, not a
// hard limit; assignment beyond cap is permitted.
func (a *Agent) IsOverloaded(activeLeadCount int64) bool {
	return a.CapacityCap > 0 && activeLeadCount > int64(a.CapacityCap)
}
