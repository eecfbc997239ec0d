package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// InventoryService manages projects and their sellable units
type InventoryService struct {
	projectRepo catalog.ProjectRepository
	unitRepo    catalog.UnitRepository
	logger      *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	projectRepo catalog.ProjectRepository,
	unitRepo catalog.UnitRepository,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		projectRepo: projectRepo,
		unitRepo:    unitRepo,
		logger:      logger,
	}
}

// CreateProject registers a new project without units
func (s *InventoryService) CreateProject(ctx context.Context, tenantID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	project, err := catalog.NewProject(tenantID, req.Name, req.Location, req.Towers, req.Floors)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	resp := ToProjectResponse(project)
	return &resp, nil
}

// QuickSetup registers a project and generates its full unit grid. Unit
// numbers follow the tower-floor-slot convention, e.g. "A-1204" is tower A,
// floor 12, slot 04.
func (s *InventoryService) QuickSetup(ctx context.Context, tenantID uuid.UUID, req QuickSetupRequest) (*ProjectResponse, int, error) {
	basePrice := valueobject.NewMoneyINR(req.BasePrice)
	if !basePrice.IsPositive() {
		return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Unit base price must be positive")
	}

	project, err := catalog.NewProject(tenantID, req.Name, req.Location, req.Towers, req.Floors)
	if err != nil {
		return nil, 0, err
	}
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, 0, fmt.Errorf("failed to save project: %w", err)
	}

	generated := 0
	for t := 0; t < req.Towers; t++ {
		tower := string(rune('A' + t))
		for floor := 1; floor <= req.Floors; floor++ {
			for slot := 1; slot <= req.UnitsPerFloor; slot++ {
				number := fmt.Sprintf("%s-%d%02d", tower, floor, slot)
				unit, err := catalog.NewUnit(tenantID, project.ID, number, tower, floor, req.AreaSqft, basePrice)
				if err != nil {
					return nil, generated, err
				}
				if err := s.unitRepo.Save(ctx, unit); err != nil {
					return nil, generated, fmt.Errorf("failed to save unit %s: %w", number, err)
				}
				generated++
			}
		}
	}

	s.logger.Info("project inventory generated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("project_id", project.ID.String()),
		zap.Int("units", generated),
	)

	resp := ToProjectResponse(project)
	return &resp, generated, nil
}

// GetProject retrieves a project by ID
func (s *InventoryService) GetProject(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(project)
	return &resp, nil
}

// ListProjects retrieves a paginated list of projects
func (s *InventoryService) ListProjects(ctx context.Context, tenantID uuid.UUID, filter ProjectListFilter) ([]ProjectResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	projects, err := s.projectRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	total, err := s.projectRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	return ToProjectResponses(projects), total, nil
}

// DeactivateProject hides a project from new lead and booking flows
func (s *InventoryService) DeactivateProject(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	project.Deactivate()
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	resp := ToProjectResponse(project)
	return &resp, nil
}

// AddUnit adds a single unit to a project
func (s *InventoryService) AddUnit(ctx context.Context, tenantID, projectID uuid.UUID, req CreateUnitRequest) (*UnitResponse, error) {
	project, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if !project.Active {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Cannot add units to an inactive project")
	}

	unit, err := catalog.NewUnit(tenantID, project.ID, req.Number, req.Tower, req.Floor, req.AreaSqft,
		valueobject.NewMoneyINR(req.BasePrice))
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	resp := ToUnitResponse(unit)
	return &resp, nil
}

// ListUnits retrieves a project's units with filtering
func (s *InventoryService) ListUnits(ctx context.Context, tenantID, projectID uuid.UUID, filter UnitListFilter) ([]UnitResponse, error) {
	// Verify the project exists before listing against it
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  map[string]interface{}{},
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Tower != "" {
		domainFilter.Filters["tower"] = filter.Tower
	}

	units, err := s.unitRepo.FindByProject(ctx, tenantID, projectID, domainFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return ToUnitResponses(units), nil
}

// ProjectInventory reports a project's unit counts by status
func (s *InventoryService) ProjectInventory(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectInventoryResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	resp := &ProjectInventoryResponse{ProjectID: projectID}
	counts := map[catalog.UnitStatus]*int64{
		catalog.UnitStatusAvailable: &resp.Available,
		catalog.UnitStatusHeld:      &resp.Held,
		catalog.UnitStatusSold:      &resp.Sold,
	}
	for status, dst := range counts {
		n, err := s.unitRepo.CountByProjectAndStatus(ctx, tenantID, projectID, status)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s units: %w", status, err)
		}
		*dst = n
		resp.Total += n
	}
	return resp, nil
}
