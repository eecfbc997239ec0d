package resilience

import (
	"context"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/shared"
)

type bookingStore struct {
	f *Facade
}

func (s *bookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return execute(ctx, s.f, "booking.find_by_id", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) (*booking.Booking, error) {
			return r.FindByID(ctx, id)
		})
}

func (s *bookingStore) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*booking.Booking, error) {
	return execute(ctx, s.f, "booking.find_by_id_for_tenant", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) (*booking.Booking, error) {
			return r.FindByIDForTenant(ctx, tenantID, id)
		})
}

func (s *bookingStore) FindByLead(ctx context.Context, tenantID, leadID uuid.UUID) ([]booking.Booking, error) {
	return execute(ctx, s.f, "booking.find_by_lead", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) ([]booking.Booking, error) {
			return r.FindByLead(ctx, tenantID, leadID)
		})
}

func (s *bookingStore) FindConfirmedByLead(ctx context.Context, tenantID, leadID uuid.UUID) (*booking.Booking, error) {
	return execute(ctx, s.f, "booking.find_confirmed_by_lead", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) (*booking.Booking, error) {
			return r.FindConfirmedByLead(ctx, tenantID, leadID)
		})
}

func (s *bookingStore) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	return execute(ctx, s.f, "booking.find_all", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) ([]booking.Booking, error) {
			return r.FindAllForTenant(ctx, tenantID, filter)
		})
}

func (s *bookingStore) FindByStatus(ctx context.Context, tenantID uuid.UUID, status booking.BookingStatus, filter shared.Filter) ([]booking.Booking, error) {
	return execute(ctx, s.f, "booking.find_by_status", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) ([]booking.Booking, error) {
			return r.FindByStatus(ctx, tenantID, status, filter)
		})
}

func (s *bookingStore) Save(ctx context.Context, b *booking.Booking) error {
	return executeErr(ctx, s.f, "booking.save", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) error {
			return r.Save(ctx, b)
		})
}

func (s *bookingStore) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	return execute(ctx, s.f, "booking.count", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) (int64, error) {
			return r.CountForTenant(ctx, tenantID, filter)
		})
}

func (s *bookingStore) CountByStatus(ctx context.Context, tenantID uuid.UUID, status booking.BookingStatus) (int64, error) {
	return execute(ctx, s.f, "booking.count_by_status", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) (int64, error) {
			return r.CountByStatus(ctx, tenantID, status)
		})
}

func (s *bookingStore) CountByLeadAndStatus(ctx context.Context, tenantID, leadID uuid.UUID, status booking.BookingStatus) (int64, error) {
	return execute(ctx, s.f, "booking.count_by_lead_and_status", s.f.remote.Bookings, s.f.simulated.Bookings,
		func(ctx context.Context, r booking.BookingRepository) (int64, error) {
			return r.CountByLeadAndStatus(ctx, tenantID, leadID, status)
		})
}

var _ booking.BookingRepository = (*bookingStore)(nil)
