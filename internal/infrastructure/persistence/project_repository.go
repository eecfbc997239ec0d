package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/infrastructure/persistence/models"
)

// GormProjectRepository implements catalog.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a project by ID within a tenant
func (r *GormProjectRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all projects for a tenant
func (r *GormProjectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.ProjectModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(location) LIKE ?", pattern, pattern)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	return r.findProjects(query)
}

// FindActive finds active projects for a tenant
func (r *GormProjectRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]catalog.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC")
	return r.findProjects(query)
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, project *catalog.Project) error {
	var model models.ProjectModel
	model.FromDomain(project)
	return r.db.WithContext(ctx).Save(&model).Error
}

// CountForTenant counts projects for a tenant
func (r *GormProjectRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProjectModel{}).Where("tenant_id = ?", tenantID)
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *GormProjectRepository) findProjects(query *gorm.DB) ([]catalog.Project, error) {
	var projectModels []models.ProjectModel
	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}
	projects := make([]catalog.Project, len(projectModels))
	for i, model := range projectModels {
		projects[i] = *model.ToDomain()
	}
	return projects, nil
}

var _ catalog.ProjectRepository = (*GormProjectRepository)(nil)
