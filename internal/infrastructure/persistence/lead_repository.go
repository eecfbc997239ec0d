package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/infrastructure/persistence/models"
)

// GormLeadRepository implements pipeline.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a lead by ID within a tenant
func (r *GormLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pipeline.Lead, error) {
	var model models.LeadModel
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

// FindByPhone finds a lead by phone number within a tenant
func (r *GormLeadRepository) FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*pipeline.Lead, error) {
	if phone == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Phone cannot be empty")
	}
	var model models.LeadModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND phone = ?", tenantID, phone).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all leads for a tenant
func (r *GormLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}).Where("tenant_id = ?", tenantID), filter)
	return r.findLeads(query)
}

// FindByOwner finds leads assigned to an agent
func (r *GormLeadRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("tenant_id = ? AND owner_id = ?", tenantID, ownerID),
		filter,
	)
	return r.findLeads(query)
}

// FindByStatus finds leads by status for a tenant
func (r *GormLeadRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status pipeline.LeadStatus, filter shared.Filter) ([]pipeline.Lead, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)
	return r.findLeads(query)
}

// FindUnassigned finds leads with no owner for a tenant
func (r *GormLeadRepository) FindUnassigned(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("tenant_id = ? AND owner_id IS NULL", tenantID),
		filter,
	)
	return r.findLeads(query)
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *pipeline.Lead) error {
	var model models.LeadModel
	model.FromDomain(lead)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant deletes a lead for a tenant
func (r *GormLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.LeadModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts leads for a tenant
func (r *GormLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	err := query.Count(&count).Error
	return count, err
}

// CountByStatus counts leads by status for a tenant
func (r *GormLeadRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status pipeline.LeadStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error
	return count, err
}

// CountActiveByOwner counts non-terminal leads assigned to an agent
func (r *GormLeadRepository) CountActiveByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Where("tenant_id = ? AND owner_id = ? AND status NOT IN ?",
			tenantID, ownerID, []pipeline.LeadStatus{pipeline.LeadStatusBooked, pipeline.LeadStatusLost}).
		Count(&count).Error
	return count, err
}

// CountCreatedSince counts leads captured at or after the given time
func (r *GormLeadRepository) CountCreatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Count(&count).Error
	return count, err
}

// ExistsByPhone checks if a phone number is already captured for a tenant
func (r *GormLeadRepository) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Where("tenant_id = ? AND phone = ?", tenantID, phone).
		Count(&count).Error
	return count > 0, err
}

func (r *GormLeadRepository) findLeads(query *gorm.DB) ([]pipeline.Lead, error) {
	var leadModels []models.LeadModel
	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}
	leads := make([]pipeline.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormLeadRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// LIKE keeps the search portable across Postgres and SQLite
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR phone LIKE ? OR lower(email) LIKE ?",
			pattern, "%"+filter.Search+"%", pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "project_id":
			query = query.Where("project_id = ?", value)
		}
	}

	return query
}

var _ pipeline.LeadRepository = (*GormLeadRepository)(nil)
