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

// GormUnitRepository implements catalog.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a unit by ID within a tenant
func (r *GormUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Unit, error) {
	var model models.UnitModel
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

// FindByProject finds a project's units
func (r *GormUnitRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]catalog.Unit, error) {
	query := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID)

	if filter.Search != "" {
		query = query.Where("lower(number) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "tower":
			query = query.Where("tower = ?", value)
		case "floor":
			query = query.Where("floor = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order("tower ASC, floor ASC, number ASC")

	return r.findUnits(query)
}

// FindAvailableByProject finds a project's units still on the market
func (r *GormUnitRepository) FindAvailableByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]catalog.Unit, error) {
	query := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("tenant_id = ? AND project_id = ? AND status = ?", tenantID, projectID, catalog.UnitStatusAvailable).
		Order("tower ASC, floor ASC, number ASC")
	return r.findUnits(query)
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	var model models.UnitModel
	model.FromDomain(unit)
	return r.db.WithContext(ctx).Save(&model).Error
}

// CountByProjectAndStatus counts a project's units in the given status
func (r *GormUnitRepository) CountByProjectAndStatus(ctx context.Context, tenantID, projectID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("tenant_id = ? AND project_id = ? AND status = ?", tenantID, projectID, status).
		Count(&count).Error
	return count, err
}

// CountByStatus counts units by status across all projects for a tenant
func (r *GormUnitRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error
	return count, err
}

func (r *GormUnitRepository) findUnits(query *gorm.DB) ([]catalog.Unit, error) {
	var unitModels []models.UnitModel
	if err := query.Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]catalog.Unit, len(unitModels))
	for i, model := range unitModels {
		units[i] = *model.ToDomain()
	}
	return units, nil
}

var _ catalog.UnitRepository = (*GormUnitRepository)(nil)
