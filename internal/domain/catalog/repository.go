package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/shared"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindByIDForTenant finds a project by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)

	// FindAllForTenant finds all projects for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Project, error)

	// FindActive finds active projects for a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Project, error)

	// Save creates or updates a project
	Save(ctx context.Context, project *Project) error

	// CountForTenant counts projects for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	// FindByID finds a unit by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindByIDForTenant finds a unit by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Unit, error)

	// FindByProject finds a project's units with filtering
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]Unit, error)

	// FindAvailableByProject finds a project's units still on the market
	FindAvailableByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]Unit, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *Unit) error

	// CountByProjectAndStatus counts a project's units in the given status
	// Feeds the inventory figures on the dashboard
	CountByProjectAndStatus(ctx context.Context, tenantID, projectID uuid.UUID, status UnitStatus) (int64, error)

	// CountByStatus counts units by status across all projects for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status UnitStatus) (int64, error)
}
