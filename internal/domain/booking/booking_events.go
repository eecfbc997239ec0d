package booking

import (
	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/shared"
)

// AggregateTypeBooking is the aggregate type name for booking events
const AggregateTypeBooking = "Booking"

// Event type names
const (
	EventTypeBookingCreated   = "BookingCreated"
	EventTypeBookingConfirmed = "BookingConfirmed"
	EventTypeBookingCancelled = "BookingCancelled"
	EventTypeMilestonePaid    = "MilestonePaid"
)

// BookingCreatedEvent is emitted when a booking is created
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	LeadID     uuid.UUID `json:"lead_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	DealAmount string    `json:"deal_amount"`
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeBooking, b.ID, b.TenantID),
		LeadID:          b.LeadID,
		UnitID:          b.UnitID,
		DealAmount:      b.DealAmount.String(),
	}
}

// EventType returns the event type name
func (e *BookingCreatedEvent) EventType() string {
	return EventTypeBookingCreated
}

// BookingConfirmedEvent is emitted when a booking is confirmed.
// Subscribers mark the associated lead BOOKED and the unit sold.
type BookingConfirmedEvent struct {
	shared.BaseDomainEvent
	LeadID     uuid.UUID `json:"lead_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	DealAmount string    `json:"deal_amount"`
}

// NewBookingConfirmedEvent creates a new BookingConfirmedEvent
func NewBookingConfirmedEvent(b *Booking) *BookingConfirmedEvent {
	return &BookingConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingConfirmed, AggregateTypeBooking, b.ID, b.TenantID),
		LeadID:          b.LeadID,
		UnitID:          b.UnitID,
		DealAmount:      b.DealAmount.String(),
	}
}

// EventType returns the event type name
func (e *BookingConfirmedEvent) EventType() string {
	return EventTypeBookingConfirmed
}

// BookingCancelledEvent is emitted when a pending booking is cancelled
type BookingCancelledEvent struct {
	shared.BaseDomainEvent
	LeadID uuid.UUID `json:"lead_id"`
	UnitID uuid.UUID `json:"unit_id"`
	Reason string    `json:"reason"`
}

// NewBookingCancelledEvent creates a new BookingCancelledEvent
func NewBookingCancelledEvent(b *Booking, reason string) *BookingCancelledEvent {
	return &BookingCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCancelled, AggregateTypeBooking, b.ID, b.TenantID),
		LeadID:          b.LeadID,
		UnitID:          b.UnitID,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *BookingCancelledEvent) EventType() string {
	return EventTypeBookingCancelled
}

// MilestonePaidEvent is emitted when a milestone payment is recorded
type MilestonePaidEvent struct {
	shared.BaseDomainEvent
	MilestoneID   uuid.UUID `json:"milestone_id"`
	MilestoneName string    `json:"milestone_name"`
	Amount        string    `json:"amount"`
}

// NewMilestonePaidEvent creates a new MilestonePaidEvent
func NewMilestonePaidEvent(b *Booking, m *Milestone) *MilestonePaidEvent {
	return &MilestonePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMilestonePaid, AggregateTypeBooking, b.ID, b.TenantID),
		MilestoneID:     m.ID,
		MilestoneName:   m.Name,
		Amount:          m.Amount.String(),
	}
}

// EventType returns the event type name
func (e *MilestonePaidEvent) EventType() string {
	return EventTypeMilestonePaid
}
