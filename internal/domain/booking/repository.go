package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/shared"
)

// BookingRepository defines the interface for booking persistence.
// Implementations load and save the full aggregate: charges and milestones
// travel with their booking.
type BookingRepository interface {
	// FindByID finds a booking by ID with its charges and milestones
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIDForTenant finds a booking by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Booking, error)

	// FindByLead finds the bookings associated with a lead
	FindByLead(ctx context.Context, tenantID, leadID uuid.UUID) ([]Booking, error)

	// FindConfirmedByLead finds a lead's confirmed booking, if any
	FindConfirmedByLead(ctx context.Context, tenantID, leadID uuid.UUID) (*Booking, error)

	// FindAllForTenant finds all bookings for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Booking, error)

	// FindByStatus finds bookings by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status BookingStatus, filter shared.Filter) ([]Booking, error)

	// Save creates or updates a booking together with its charges and milestones
	Save(ctx context.Context, b *Booking) error

	// CountForTenant counts bookings for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts bookings by status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status BookingStatus) (int64, error)

	// CountByLeadAndStatus counts a lead's bookings in the given status
	// Used to enforce the one-confirmed-booking-per-lead invariant
	CountByLeadAndStatus(ctx context.Context, tenantID, leadID uuid.UUID, status BookingStatus) (int64, error)
}
