package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// BookingModel is the persistence model for the Booking aggregate root.
// Charges and milestones are saved and loaded with their booking.
type BookingModel struct {
	TenantAggregateModel
	LeadID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	UnitID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	BaseCost    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	DealAmount  decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Status      booking.BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Applicant   string                `gorm:"type:varchar(300)"`
	CoApplicant string                `gorm:"type:varchar(300)"`
	Charges     []ChargeModel         `gorm:"foreignKey:BookingID;references:ID;constraint:OnDelete:CASCADE"`
	Milestones  []MilestoneModel      `gorm:"foreignKey:BookingID;references:ID;constraint:OnDelete:CASCADE"`
	ConfirmedAt *time.Time            `gorm:"index"`
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking
func (m *BookingModel) ToDomain() *booking.Booking {
	b := &booking.Booking{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		LeadID:              m.LeadID,
		UnitID:              m.UnitID,
		BaseCost:            valueobject.NewMoneyINR(m.BaseCost),
		DealAmount:          valueobject.NewMoneyINR(m.DealAmount),
		Status:              m.Status,
		Applicant:           m.Applicant,
		CoApplicant:         m.CoApplicant,
		ConfirmedAt:         m.ConfirmedAt,
		CancelledAt:         m.CancelledAt,
		Charges:             make([]booking.Charge, len(m.Charges)),
		Milestones:          make([]booking.Milestone, len(m.Milestones)),
	}
	for i, c := range m.Charges {
		b.Charges[i] = *c.ToDomain()
	}
	for i, ms := range m.Milestones {
		b.Milestones[i] = *ms.ToDomain()
	}
	return b
}

// FromDomain populates the persistence model from a domain Booking
func (m *BookingModel) FromDomain(b *booking.Booking) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.LeadID = b.LeadID
	m.UnitID = b.UnitID
	m.BaseCost = b.BaseCost.Amount()
	m.DealAmount = b.DealAmount.Amount()
	m.Status = b.Status
	m.Applicant = b.Applicant
	m.CoApplicant = b.CoApplicant
	m.ConfirmedAt = b.ConfirmedAt
	m.CancelledAt = b.CancelledAt

	m.Charges = make([]ChargeModel, len(b.Charges))
	for i := range b.Charges {
		m.Charges[i].FromDomain(&b.Charges[i])
	}
	m.Milestones = make([]MilestoneModel, len(b.Milestones))
	for i := range b.Milestones {
		m.Milestones[i].FromDomain(&b.Milestones[i])
	}
}

// ChargeModel is the persistence model for booking charges
type ChargeModel struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key"`
	BookingID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Name      string             `gorm:"type:varchar(100);not null"`
	Kind      booking.ChargeKind `gorm:"type:varchar(10);not null"`
	Value     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time          `gorm:"not null"`
	UpdatedAt time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChargeModel) TableName() string {
	return "booking_charges"
}

// ToDomain converts the persistence model to a domain Charge
func (m *ChargeModel) ToDomain() *booking.Charge {
	return &booking.Charge{
		ID:        m.ID,
		BookingID: m.BookingID,
		Name:      m.Name,
		Kind:      m.Kind,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Charge
func (m *ChargeModel) FromDomain(c *booking.Charge) {
	m.ID = c.ID
	m.BookingID = c.BookingID
	m.Name = c.Name
	m.Kind = c.Kind
	m.Value = c.Value
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// MilestoneModel is the persistence model for payment milestones
type MilestoneModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key"`
	BookingID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Name          string                `gorm:"type:varchar(100);not null"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	DueDate       *time.Time            `gorm:"index"`
	FundingSource booking.FundingSource `gorm:"type:varchar(10);not null;default:'Customer'"`
	PaymentStatus booking.PaymentStatus `gorm:"type:varchar(10);not null;default:'Pending'"`
	Position      int                   `gorm:"not null;default:0"`
	CreatedAt     time.Time             `gorm:"not null"`
	UpdatedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MilestoneModel) TableName() string {
	return "booking_milestones"
}

// ToDomain converts the persistence model to a domain Milestone
func (m *MilestoneModel) ToDomain() *booking.Milestone {
	return &booking.Milestone{
		ID:            m.ID,
		BookingID:     m.BookingID,
		Name:          m.Name,
		Amount:        valueobject.NewMoneyINR(m.Amount),
		DueDate:       m.DueDate,
		FundingSource: m.FundingSource,
		PaymentStatus: m.PaymentStatus,
		Position:      m.Position,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Milestone
func (m *MilestoneModel) FromDomain(ms *booking.Milestone) {
	m.ID = ms.ID
	m.BookingID = ms.BookingID
	m.Name = ms.Name
	m.Amount = ms.Amount.Amount()
	m.DueDate = ms.DueDate
	m.FundingSource = ms.FundingSource
	m.PaymentStatus = ms.PaymentStatus
	m.Position = ms.Position
	m.CreatedAt = ms.CreatedAt
	m.UpdatedAt = ms.UpdatedAt
}
