package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// ProjectModel is the persistence model for projects
type ProjectModel struct {
	TenantAggregateModel
	Name     string `gorm:"type:varchar(200);not null"`
	Location string `gorm:"type:varchar(300)"`
	Towers   int    `gorm:"not null;default:1"`
	Floors   int    `gorm:"not null;default:1"`
	Active   bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project
func (m *ProjectModel) ToDomain() *catalog.Project {
	return &catalog.Project{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Location:            m.Location,
		Towers:              m.Towers,
		Floors:              m.Floors,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain Project
func (m *ProjectModel) FromDomain(p *catalog.Project) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Location = p.Location
	m.Towers = p.Towers
	m.Floors = p.Floors
	m.Active = p.Active
}

// UnitModel is the persistence model for inventory units
type UnitModel struct {
	TenantAggregateModel
	ProjectID uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_units_project_number,priority:1"`
	Number    string             `gorm:"type:varchar(30);not null;uniqueIndex:idx_units_project_number,priority:2"`
	Tower     string             `gorm:"type:varchar(10)"`
	Floor     int                `gorm:"not null;default:0"`
	AreaSqft  int                `gorm:"not null;default:0"`
	BasePrice decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	Status    catalog.UnitStatus `gorm:"type:varchar(15);not null;default:'AVAILABLE';index"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit
func (m *UnitModel) ToDomain() *catalog.Unit {
	return &catalog.Unit{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ProjectID:           m.ProjectID,
		Number:              m.Number,
		Tower:               m.Tower,
		Floor:               m.Floor,
		AreaSqft:            m.AreaSqft,
		BasePrice:           valueobject.NewMoneyINR(m.BasePrice),
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Unit
func (m *UnitModel) FromDomain(u *catalog.Unit) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.ProjectID = u.ProjectID
	m.Number = u.Number
	m.Tower = u.Tower
	m.Floor = u.Floor
	m.AreaSqft = u.AreaSqft
	m.BasePrice = u.BasePrice.Amount()
	m.Status = u.Status
}
