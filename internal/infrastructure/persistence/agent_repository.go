package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/infrastructure/persistence/models"
)

// GormAgentRepository implements pipeline.AgentRepository using GORM
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository creates a new GormAgentRepository
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// FindByID finds an agent by ID
func (r *GormAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Agent, error) {
	var model models.AgentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an agent by ID within a tenant
func (r *GormAgentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pipeline.Agent, error) {
	var model models.AgentModel
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

// FindAllForTenant finds all agents for a tenant
func (r *GormAgentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Agent, error) {
	query := r.db.WithContext(ctx).Model(&models.AgentModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if role, ok := filter.Filters["role"]; ok {
		query = query.Where("role = ?", role)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	return r.findAgents(query)
}

// FindActive finds active agents for a tenant
func (r *GormAgentRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]pipeline.Agent, error) {
	query := r.db.WithContext(ctx).Model(&models.AgentModel{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC")
	return r.findAgents(query)
}

// FindActiveByRole finds active agents with the given role
func (r *GormAgentRepository) FindActiveByRole(ctx context.Context, tenantID uuid.UUID, role pipeline.AgentRole) ([]pipeline.Agent, error) {
	query := r.db.WithContext(ctx).Model(&models.AgentModel{}).
		Where("tenant_id = ? AND active = ? AND role = ?", tenantID, true, role).
		Order("name ASC")
	return r.findAgents(query)
}

// Save creates or updates an agent
func (r *GormAgentRepository) Save(ctx context.Context, agent *pipeline.Agent) error {
	var model models.AgentModel
	model.FromDomain(agent)
	return r.db.WithContext(ctx).Save(&model).Error
}

// CountForTenant counts agents for a tenant
func (r *GormAgentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.AgentModel{}).Where("tenant_id = ?", tenantID)
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *GormAgentRepository) findAgents(query *gorm.DB) ([]pipeline.Agent, error) {
	var agentModels []models.AgentModel
	if err := query.Find(&agentModels).Error; err != nil {
		return nil, err
	}
	agents := make([]pipeline.Agent, len(agentModels))
	for i, model := range agentModels {
		agents[i] = *model.ToDomain()
	}
	return agents, nil
}

var _ pipeline.AgentRepository = (*GormAgentRepository)(nil)
