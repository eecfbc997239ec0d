package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
)

// LeadModel is the persistence model for the Lead aggregate root. TenantID
// is declared here rather than through TenantAggregateModel because it leads
// the composite unique index with Phone; phone numbers are unique per tenant,
// not globally.
type LeadModel struct {
	BaseModel
	TenantID  uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_leads_tenant_phone,priority:1"`
	Name      string              `gorm:"type:varchar(200);not null"`
	Phone     string              `gorm:"type:varchar(30);not null;uniqueIndex:idx_leads_tenant_phone,priority:2"`
	Email     string              `gorm:"type:varchar(200)"`
	Budget    string              `gorm:"type:varchar(100)"`
	Source    pipeline.LeadSource `gorm:"type:varchar(30);not null"`
	Status    pipeline.LeadStatus `gorm:"type:varchar(20);not null;default:'NEW';index"`
	OwnerID   *uuid.UUID          `gorm:"type:uuid;index"`
	ProjectID *uuid.UUID          `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead
func (m *LeadModel) ToDomain() *pipeline.Lead {
	return &pipeline.Lead{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
			TenantID:          m.TenantID,
		},
		Name:                m.Name,
		Phone:               m.Phone,
		Email:               m.Email,
		Budget:              m.Budget,
		Source:              m.Source,
		Status:              m.Status,
		OwnerID:             m.OwnerID,
		ProjectID:           m.ProjectID,
	}
}

// FromDomain populates the persistence model from a domain Lead
func (m *LeadModel) FromDomain(l *pipeline.Lead) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.TenantID = l.TenantID
	m.Name = l.Name
	m.Phone = l.Phone
	m.Email = l.Email
	m.Budget = l.Budget
	m.Source = l.Source
	m.Status = l.Status
	m.OwnerID = l.OwnerID
	m.ProjectID = l.ProjectID
}

// InteractionModel is the persistence model for lead interactions.
// Rows are append-only; there is no update path.
type InteractionModel struct {
	BaseModel
	LeadID         uuid.UUID                `gorm:"type:uuid;not null;index"`
	Kind           pipeline.InteractionKind `gorm:"type:varchar(20);not null"`
	Body           string                   `gorm:"type:text"`
	NextFollowUpAt *time.Time               `gorm:"index"`
	CreatedBy      uuid.UUID                `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (InteractionModel) TableName() string {
	return "interactions"
}

// ToDomain converts the persistence model to a domain Interaction
func (m *InteractionModel) ToDomain() *pipeline.Interaction {
	return &pipeline.Interaction{
		BaseEntity:     m.BaseModel.ToDomain(),
		LeadID:         m.LeadID,
		Kind:           m.Kind,
		Body:           m.Body,
		NextFollowUpAt: m.NextFollowUpAt,
		CreatedBy:      m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Interaction
func (m *InteractionModel) FromDomain(i *pipeline.Interaction) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.LeadID = i.LeadID
	m.Kind = i.Kind
	m.Body = i.Body
	m.NextFollowUpAt = i.NextFollowUpAt
	m.CreatedBy = i.CreatedBy
}

// AgentModel is the persistence model for sales agents
type AgentModel struct {
	TenantAggregateModel
	Name        string             `gorm:"type:varchar(200);not null"`
	Role        pipeline.AgentRole `gorm:"type:varchar(20);not null"`
	CapacityCap int                `gorm:"not null;default:0"`
	Active      bool               `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (AgentModel) TableName() string {
	return "agents"
}

// ToDomain converts the persistence model to a domain Agent
func (m *AgentModel) ToDomain() *pipeline.Agent {
	return &pipeline.Agent{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Role:                m.Role,
		CapacityCap:         m.CapacityCap,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain Agent
func (m *AgentModel) FromDomain(a *pipeline.Agent) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Name = a.Name
	m.Role = a.Role
	m.CapacityCap = a.CapacityCap
	m.Active = a.Active
}
