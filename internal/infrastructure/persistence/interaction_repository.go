package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/infrastructure/persistence/models"
)

// GormInteractionRepository implements pipeline.InteractionRepository using GORM.
// Interactions carry no tenant column of their own; tenant scoping goes
// through the owning lead.
type GormInteractionRepository struct {
	db *gorm.DB
}

// NewGormInteractionRepository creates a new GormInteractionRepository
func NewGormInteractionRepository(db *gorm.DB) *GormInteractionRepository {
	return &GormInteractionRepository{db: db}
}

// Save appends an interaction to a lead's timeline
func (r *GormInteractionRepository) Save(ctx context.Context, interaction *pipeline.Interaction) error {
	var model models.InteractionModel
	model.FromDomain(interaction)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds an interaction by ID
func (r *GormInteractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Interaction, error) {
	var model models.InteractionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByLead lists a lead's interactions, most recent first
func (r *GormInteractionRepository) ListByLead(ctx context.Context, tenantID, leadID uuid.UUID, filter shared.Filter) ([]pipeline.Interaction, error) {
	query := r.tenantScoped(ctx, tenantID).
		Where("interactions.lead_id = ?", leadID).
		Order("interactions.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return r.findInteractions(query)
}

// CountByLead counts a lead's interactions
func (r *GormInteractionRepository) CountByLead(ctx context.Context, tenantID, leadID uuid.UUID) (int64, error) {
	var count int64
	err := r.tenantScoped(ctx, tenantID).
		Where("interactions.lead_id = ?", leadID).
		Count(&count).Error
	return count, err
}

// FindDueFollowUps finds interactions whose follow-up time falls on or before the given time
func (r *GormInteractionRepository) FindDueFollowUps(ctx context.Context, tenantID uuid.UUID, by time.Time, filter shared.Filter) ([]pipeline.Interaction, error) {
	query := r.tenantScoped(ctx, tenantID).
		Where("interactions.next_follow_up_at IS NOT NULL AND interactions.next_follow_up_at <= ?", by).
		Order("interactions.next_follow_up_at ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return r.findInteractions(query)
}

func (r *GormInteractionRepository) tenantScoped(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.InteractionModel{}).
		Joins("JOIN leads ON leads.id = interactions.lead_id").
		Where("leads.tenant_id = ?", tenantID)
}

func (r *GormInteractionRepository) findInteractions(query *gorm.DB) ([]pipeline.Interaction, error) {
	var interactionModels []models.InteractionModel
	if err := query.Find(&interactionModels).Error; err != nil {
		return nil, err
	}
	interactions := make([]pipeline.Interaction, len(interactionModels))
	for i, model := range interactionModels {
		interactions[i] = *model.ToDomain()
	}
	return interactions, nil
}

var _ pipeline.InteractionRepository = (*GormInteractionRepository)(nil)
