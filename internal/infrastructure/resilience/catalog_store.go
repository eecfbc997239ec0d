package resilience

import (
	"context"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/shared"
)

type projectStore struct {
	f *Facade
}

func (s *projectStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Project, error) {
	return execute(ctx, s.f, "project.find_by_id", s.f.remote.Projects, s.f.simulated.Projects,
		func(ctx context.Context, r catalog.ProjectRepository) (*catalog.Project, error) {
			return r.FindByID(ctx, id)
		})
}

func (s *projectStore) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Project, error) {
	return execute(ctx, s.f, "project.find_by_id_for_tenant", s.f.remote.Projects, s.f.simulated.Projects,
		func(ctx context.Context, r catalog.ProjectRepository) (*catalog.Project, error) {
			return r.FindByIDForTenant(ctx, tenantID, id)
		})
}

func (s *projectStore) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Project, error) {
	return execute(ctx, s.f, "project.find_all", s.f.remote.Projects, s.f.simulated.Projects,
		func(ctx context.Context, r catalog.ProjectRepository) ([]catalog.Project, error) {
			return r.FindAllForTenant(ctx, tenantID, filter)
		})
}

func (s *projectStore) FindActive(ctx context.Context, tenantID uuid.UUID) ([]catalog.Project, error) {
	return execute(ctx, s.f, "project.find_active", s.f.remote.Projects, s.f.simulated.Projects,
		func(ctx context.Context, r catalog.ProjectRepository) ([]catalog.Project, error) {
			return r.FindActive(ctx, tenantID)
		})
}

func (s *projectStore) Save(ctx context.Context, project *catalog.Project) error {
	return executeErr(ctx, s.f, "project.save", s.f.remote.Projects, s.f.simulated.Projects,
		func(ctx context.Context, r catalog.ProjectRepository) error {
			return r.Save(ctx, project)
		})
}

func (s *projectStore) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	return execute(ctx, s.f, "project.count", s.f.remote.Projects, s.f.simulated.Projects,
		func(ctx context.Context, r catalog.ProjectRepository) (int64, error) {
			return r.CountForTenant(ctx, tenantID, filter)
		})
}

type unitStore struct {
	f *Facade
}

func (s *unitStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	return execute(ctx, s.f, "unit.find_by_id", s.f.remote.Units, s.f.simulated.Units,
		func(ctx context.Context, r catalog.UnitRepository) (*catalog.Unit, error) {
			return r.FindByID(ctx, id)
		})
}

func (s *unitStore) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Unit, error) {
	return execute(ctx, s.f, "unit.find_by_id_for_tenant", s.f.remote.Units, s.f.simulated.Units,
		func(ctx context.Context, r catalog.UnitRepository) (*catalog.Unit, error) {
			return r.FindByIDForTenant(ctx, tenantID, id)
		})
}

func (s *unitStore) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]catalog.Unit, error) {
	return execute(ctx, s.f, "unit.find_by_project", s.f.remote.Units, s.f.simulated.Units,
		func(ctx context.Context, r catalog.UnitRepository) ([]catalog.Unit, error) {
			return r.FindByProject(ctx, tenantID, projectID, filter)
		})
}

func (s *unitStore) FindAvailableByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]catalog.Unit, error) {
	return execute(ctx, s.f, "unit.find_available_by_project", s.f.remote.Units, s.f.simulated.Units,
		func(ctx context.Context, r catalog.UnitRepository) ([]catalog.Unit, error) {
			return r.FindAvailableByProject(ctx, tenantID, projectID)
		})
}

func (s *unitStore) Save(ctx context.Context, unit *catalog.Unit) error {
	return executeErr(ctx, s.f, "unit.save", s.f.remote.Units, s.f.simulated.Units,
		func(ctx context.Context, r catalog.UnitRepository) error {
			return r.Save(ctx, unit)
		})
}

func (s *unitStore) CountByProjectAndStatus(ctx context.Context, tenantID, projectID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	return execute(ctx, s.f, "unit.count_by_project_and_status", s.f.remote.Units, s.f.simulated.Units,
		func(ctx context.Context, r catalog.UnitRepository) (int64, error) {
			return r.CountByProjectAndStatus(ctx, tenantID, projectID, status)
		})
}

func (s *unitStore) CountByStatus(ctx context.Context, tenantID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	return execute(ctx, s.f, "unit.count_by_status", s.f.remote.Units, s.f.simulated.Units,
		func(ctx context.Context, r catalog.UnitRepository) (int64, error) {
			return r.CountByStatus(ctx, tenantID, status)
		})
}

var (
	_ catalog.ProjectRepository = (*projectStore)(nil)
	_ catalog.UnitRepository    = (*unitStore)(nil)
)
