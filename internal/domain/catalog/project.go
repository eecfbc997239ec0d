package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/shared"
)

// Project is a real-estate development whose units are sold through the
// pipeline. Towers and floors describe the inventory grid.
type Project struct {
	shared.TenantAggregateRoot
	Name     string
	Location string
	Towers   int
	Floors   int
	Active   bool
}

// NewProject creates a new active project
func NewProject(tenantID uuid.UUID, name, location string, towers, floors int) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project name cannot be empty")
	}
	if towers < 1 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project must have at least one tower")
	}
	if floors < 1 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project must have at least one floor")
	}

	return &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Location:            location,
		Towers:              towers,
		Floors:              floors,
		Active:              true,
	}, nil
}

// Deactivate hides the project from new lead and booking flows
func (p *Project) Deactivate() {
	p.Active = false
	p.Touch()
}
