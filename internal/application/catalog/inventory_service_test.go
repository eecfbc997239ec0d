package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Project, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Project), args.Error(1)
}

func (m *MockProjectRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]catalog.Project, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]catalog.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *catalog.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUnitRepository is a mock implementation of UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]catalog.Unit, error) {
	args := m.Called(ctx, tenantID, projectID, filter)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAvailableByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]catalog.Unit, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) CountByProjectAndStatus(ctx context.Context, tenantID, projectID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	args := m.Called(ctx, tenantID, projectID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func newTestInventoryService() (*InventoryService, *MockProjectRepository, *MockUnitRepository) {
	projectRepo := new(MockProjectRepository)
	unitRepo := new(MockUnitRepository)
	svc := NewInventoryService(projectRepo, unitRepo, zap.NewNop())
	return svc, projectRepo, unitRepo
}

func TestInventoryService_CreateProject(t *testing.T) {
	tenantID := uuid.New()

	t.Run("successful creation", func(t *testing.T) {
		svc, projectRepo, _ := newTestInventoryService()
		projectRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Project")).Return(nil)

		resp, err := svc.CreateProject(context.Background(), tenantID, CreateProjectRequest{
			Name:     "Sunrise Heights",
			Location: "Pune",
			Towers:   2,
			Floors:   10,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Sunrise Heights", resp.Name)
		assert.True(t, resp.Active)
		projectRepo.AssertExpectations(t)
	})

	t.Run("invalid tower count", func(t *testing.T) {
		svc, _, _ := newTestInventoryService()

		_, err := svc.CreateProject(context.Background(), tenantID, CreateProjectRequest{
			Name:   "Sunrise Heights",
			Towers: 0,
			Floors: 10,
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})
}

func TestInventoryService_QuickSetup(t *testing.T) {
	tenantID := uuid.New()

	t.Run("generates the full unit grid", func(t *testing.T) {
		svc, projectRepo, unitRepo := newTestInventoryService()
		projectRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Project")).Return(nil)

		var numbers []string
		unitRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Unit")).
			Run(func(args mock.Arguments) {
				unit := args.Get(1).(*catalog.Unit)
				numbers = append(numbers, unit.Number)
			}).
			Return(nil)

		resp, count, err := svc.QuickSetup(context.Background(), tenantID, QuickSetupRequest{
			Name:          "Lakeview Residency",
			Location:      "Mumbai",
			Towers:        2,
			Floors:        3,
			UnitsPerFloor: 4,
			AreaSqft:      950,
			BasePrice:     decimal.NewFromInt(4500000),
		})

		assert.NoError(t, err)
		assert.Equal(t, 24, count)
		assert.Equal(t, "Lakeview Residency", resp.Name)
		assert.Contains(t, numbers, "A-101")
		assert.Contains(t, numbers, "A-304")
		assert.Contains(t, numbers, "B-203")
		unitRepo.AssertNumberOfCalls(t, "Save", 24)
	})

	t.Run("rejects non-positive base price", func(t *testing.T) {
		svc, _, _ := newTestInventoryService()

		_, _, err := svc.QuickSetup(context.Background(), tenantID, QuickSetupRequest{
			Name:          "Lakeview Residency",
			Towers:        1,
			Floors:        1,
			UnitsPerFloor: 1,
			AreaSqft:      950,
			BasePrice:     decimal.Zero,
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})
}

func TestInventoryService_AddUnit(t *testing.T) {
	tenantID := uuid.New()

	t.Run("successful add", func(t *testing.T) {
		svc, projectRepo, unitRepo := newTestInventoryService()
		project, _ := catalog.NewProject(tenantID, "Sunrise Heights", "Pune", 2, 10)
		projectRepo.On("FindByIDForTenant", mock.Anything, tenantID, project.ID).Return(project, nil)
		unitRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Unit")).Return(nil)

		resp, err := svc.AddUnit(context.Background(), tenantID, project.ID, CreateUnitRequest{
			Number:    "A-101",
			Tower:     "A",
			Floor:     1,
			AreaSqft:  1200,
			BasePrice: decimal.NewFromInt(6000000),
		})

		assert.NoError(t, err)
		assert.Equal(t, "A-101", resp.Number)
		assert.Equal(t, string(catalog.UnitStatusAvailable), resp.Status)
	})

	t.Run("inactive project", func(t *testing.T) {
		svc, projectRepo, _ := newTestInventoryService()
		project, _ := catalog.NewProject(tenantID, "Sunrise Heights", "Pune", 2, 10)
		project.Deactivate()
		projectRepo.On("FindByIDForTenant", mock.Anything, tenantID, project.ID).Return(project, nil)

		_, err := svc.AddUnit(context.Background(), tenantID, project.ID, CreateUnitRequest{
			Number:    "A-101",
			Tower:     "A",
			Floor:     1,
			AreaSqft:  1200,
			BasePrice: decimal.NewFromInt(6000000),
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STATE_CONFLICT", domainErr.Code)
	})

	t.Run("project not found", func(t *testing.T) {
		svc, projectRepo, _ := newTestInventoryService()
		projectID := uuid.New()
		projectRepo.On("FindByIDForTenant", mock.Anything, tenantID, projectID).
			Return(nil, shared.ErrNotFound)

		_, err := svc.AddUnit(context.Background(), tenantID, projectID, CreateUnitRequest{
			Number:    "A-101",
			Tower:     "A",
			Floor:     1,
			AreaSqft:  1200,
			BasePrice: decimal.NewFromInt(6000000),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestInventoryService_ListUnits(t *testing.T) {
	tenantID := uuid.New()

	t.Run("passes status filter through", func(t *testing.T) {
		svc, projectRepo, unitRepo := newTestInventoryService()
		project, _ := catalog.NewProject(tenantID, "Sunrise Heights", "Pune", 2, 10)
		unit, _ := catalog.NewUnit(tenantID, project.ID, "A-101", "A", 1, 1200,
			valueobject.NewMoneyINR(decimal.NewFromInt(6000000)))

		projectRepo.On("FindByIDForTenant", mock.Anything, tenantID, project.ID).Return(project, nil)
		unitRepo.On("FindByProject", mock.Anything, tenantID, project.ID,
			mock.MatchedBy(func(f shared.Filter) bool {
				return f.Filters["status"] == "AVAILABLE"
			})).Return([]catalog.Unit{*unit}, nil)

		units, err := svc.ListUnits(context.Background(), tenantID, project.ID, UnitListFilter{
			Status: "AVAILABLE",
		})

		assert.NoError(t, err)
		assert.Len(t, units, 1)
		assert.Equal(t, "A-101", units[0].Number)
	})
}

func TestInventoryService_ProjectInventory(t *testing.T) {
	tenantID := uuid.New()

	t.Run("sums the status counts", func(t *testing.T) {
		svc, projectRepo, unitRepo := newTestInventoryService()
		project, _ := catalog.NewProject(tenantID, "Sunrise Heights", "Pune", 2, 10)
		projectRepo.On("FindByIDForTenant", mock.Anything, tenantID, project.ID).Return(project, nil)
		unitRepo.On("CountByProjectAndStatus", mock.Anything, tenantID, project.ID, catalog.UnitStatusAvailable).Return(int64(12), nil)
		unitRepo.On("CountByProjectAndStatus", mock.Anything, tenantID, project.ID, catalog.UnitStatusHeld).Return(int64(3), nil)
		unitRepo.On("CountByProjectAndStatus", mock.Anything, tenantID, project.ID, catalog.UnitStatusSold).Return(int64(5), nil)

		resp, err := svc.ProjectInventory(context.Background(), tenantID, project.ID)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), resp.Available)
		assert.Equal(t, int64(3), resp.Held)
		assert.Equal(t, int64(5), resp.Sold)
		assert.Equal(t, int64(20), resp.Total)
	})
}
