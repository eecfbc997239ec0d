package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByLead(ctx context.Context, tenantID, leadID uuid.UUID) ([]booking.Booking, error) {
	args := m.Called(ctx, tenantID, leadID)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindConfirmedByLead(ctx context.Context, tenantID, leadID uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, tenantID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status booking.BookingStatus, filter shared.Filter) ([]booking.Booking, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status booking.BookingStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CountByLeadAndStatus(ctx context.Context, tenantID, leadID uuid.UUID, status booking.BookingStatus) (int64, error) {
	args := m.Called(ctx, tenantID, leadID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockLeadRepository is a mock implementation of pipeline.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pipeline.Lead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*pipeline.Lead, error) {
	args := m.Called(ctx, tenantID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]pipeline.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	args := m.Called(ctx, tenantID, ownerID, filter)
	return args.Get(0).([]pipeline.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status pipeline.LeadStatus, filter shared.Filter) ([]pipeline.Lead, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]pipeline.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindUnassigned(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pipeline.Lead, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]pipeline.Lead), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *pipeline.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status pipeline.LeadStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountActiveByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountCreatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	args := m.Called(ctx, tenantID, phone)
	return args.Bool(0), args.Error(1)
}

// MockUnitRepository is a mock implementation of catalog.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]catalog.Unit, error) {
	args := m.Called(ctx, tenantID, projectID, filter)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAvailableByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]catalog.Unit, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) CountByProjectAndStatus(ctx context.Context, tenantID, projectID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	args := m.Called(ctx, tenantID, projectID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status catalog.UnitStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockDocumentStore is a mock implementation of storage.DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockDocumentStore) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockDocumentStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockDocumentStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type serviceMocks struct {
	bookings  *MockBookingRepository
	leads     *MockLeadRepository
	units     *MockUnitRepository
	documents *MockDocumentStore
	publisher *MockEventPublisher
}

func newBookingService() (*BookingService, *serviceMocks) {
	m := &serviceMocks{
		bookings:  new(MockBookingRepository),
		leads:     new(MockLeadRepository),
		units:     new(MockUnitRepository),
		documents: new(MockDocumentStore),
		publisher: new(MockEventPublisher),
	}
	service := NewBookingService(m.bookings, m.leads, m.units, m.documents, m.publisher, zap.NewNop())
	return service, m
}

func newTestLead(t *testing.T, tenantID uuid.UUID) *pipeline.Lead {
	t.Helper()
	lead, err := pipeline.NewLead(tenantID, "Rakesh Sharma", "9876543210", pipeline.LeadSourceWalkIn)
	require.NoError(t, err)
	lead.Status = pipeline.LeadStatusNegotiation
	lead.ClearDomainEvents()
	return lead
}

func newTestUnit(t *testing.T, tenantID uuid.UUID) *catalog.Unit {
	t.Helper()
	unit, err := catalog.NewUnit(tenantID, uuid.New(), "A-1204", "A", 12, 1450,
		valueobject.NewMoneyINRFromFloat(8_000_000))
	require.NoError(t, err)
	return unit
}

// newPendingBooking builds the worked pricing example: base 8,000,000 with
// GST 5% and Legal 15,000 gives a deal amount of 8,415,000.
func newPendingBooking(t *testing.T, tenantID, leadID, unitID uuid.UUID) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(tenantID, leadID, unitID, valueobject.NewMoneyINRFromFloat(8_000_000), true)
	require.NoError(t, err)
	_, err = b.AddCharge("GST", booking.ChargeKindPercent, decimal.NewFromInt(5))
	require.NoError(t, err)
	_, err = b.AddCharge("Legal", booking.ChargeKindFixed, decimal.NewFromInt(15_000))
	require.NoError(t, err)
	b.ClearDomainEvents()
	return b
}

func fortySixtyTemplate() ApplyTemplateRequest {
	return ApplyTemplateRequest{Entries: []TemplateEntryInput{
		{Name: "On Booking", Percentage: decimal.NewFromInt(40)},
		{Name: "On Possession", Percentage: decimal.NewFromInt(60)},
	}}
}

func TestBookingService_Create(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("opens a pending booking and holds the unit", func(t *testing.T) {
		service, m := newBookingService()
		lead := newTestLead(t, tenantID)
		unit := newTestUnit(t, tenantID)

		m.leads.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		m.units.On("Save", ctx, unit).Return(nil)
		m.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateBookingRequest{
			LeadID:   lead.ID,
			UnitID:   unit.ID,
			BaseCost: decimal.NewFromInt(8_000_000),
			Charges: []ChargeInput{
				{Name: "GST", Kind: "percent", Value: decimal.NewFromInt(5)},
				{Name: "Legal", Kind: "fixed", Value: decimal.NewFromInt(15_000)},
			},
			TermsAccepted: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "8415000.00", resp.DealAmount)
		assert.Equal(t, catalog.UnitStatusHeld, unit.Status)
	})

	t.Run("rejects a booking without accepted terms", func(t *testing.T) {
		service, m := newBookingService()
		lead := newTestLead(t, tenantID)
		unit := newTestUnit(t, tenantID)

		m.leads.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)

		_, err := service.Create(ctx, tenantID, CreateBookingRequest{
			LeadID:   lead.ID,
			UnitID:   unit.ID,
			BaseCost: decimal.NewFromInt(8_000_000),
		})

		assert.Error(t, err)
		m.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a unit that is not available", func(t *testing.T) {
		service, m := newBookingService()
		lead := newTestLead(t, tenantID)
		unit := newTestUnit(t, tenantID)
		require.NoError(t, unit.Hold())

		m.leads.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)

		_, err := service.Create(ctx, tenantID, CreateBookingRequest{
			LeadID:        lead.ID,
			UnitID:        unit.ID,
			BaseCost:      decimal.NewFromInt(8_000_000),
			TermsAccepted: true,
		})

		assert.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "STATE_CONFLICT", domainErr.Code)
	})

	t.Run("rejects a booking for a closed lead", func(t *testing.T) {
		service, m := newBookingService()
		lead := newTestLead(t, tenantID)
		lead.Status = pipeline.LeadStatusLost

		m.leads.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)

		_, err := service.Create(ctx, tenantID, CreateBookingRequest{
			LeadID:        lead.ID,
			UnitID:        uuid.New(),
			BaseCost:      decimal.NewFromInt(8_000_000),
			TermsAccepted: true,
		})

		assert.Error(t, err)
	})

	t.Run("releases the held unit when the booking save fails", func(t *testing.T) {
		service, m := newBookingService()
		lead := newTestLead(t, tenantID)
		unit := newTestUnit(t, tenantID)

		m.leads.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		m.units.On("Save", ctx, unit).Return(nil)
		m.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(errors.New("write failed"))

		_, err := service.Create(ctx, tenantID, CreateBookingRequest{
			LeadID:        lead.ID,
			UnitID:        unit.ID,
			BaseCost:      decimal.NewFromInt(8_000_000),
			TermsAccepted: true,
		})

		assert.Error(t, err)
		assert.Equal(t, catalog.UnitStatusAvailable, unit.Status)
	})
}

func TestBookingService_ScheduleTemplate(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("splits the deal amount per the template", func(t *testing.T) {
		service, m := newBookingService()
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("Save", ctx, b).Return(nil)

		summary, err := service.ApplyScheduleTemplate(ctx, tenantID, b.ID, fortySixtyTemplate())

		require.NoError(t, err)
		require.Len(t, summary.Milestones, 2)
		assert.Equal(t, "3366000.00", summary.Milestones[0].Amount)
		assert.Equal(t, "5049000.00", summary.Milestones[1].Amount)
		assert.True(t, summary.Valid)
	})

	t.Run("rejects percentages that do not sum to 100", func(t *testing.T) {
		service, m := newBookingService()
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)

		_, err := service.ApplyScheduleTemplate(ctx, tenantID, b.ID, ApplyTemplateRequest{
			Entries: []TemplateEntryInput{
				{Name: "On Booking", Percentage: decimal.NewFromInt(40)},
				{Name: "On Possession", Percentage: decimal.NewFromInt(50)},
			},
		})

		assert.Error(t, err)
		m.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replace schedule tolerates interim mismatch", func(t *testing.T) {
		service, m := newBookingService()
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("Save", ctx, b).Return(nil)

		summary, err := service.ReplaceSchedule(ctx, tenantID, b.ID, ReplaceScheduleRequest{
			Milestones: []MilestoneInput{
				{Name: "Token", Amount: decimal.NewFromInt(500_000), FundingSource: "Customer"},
			},
		})

		require.NoError(t, err)
		assert.False(t, summary.Valid)
		assert.Equal(t, "500000.00", summary.ScheduleTotal)
	})
}

func TestBookingService_Confirm(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	setup := func(t *testing.T) (*BookingService, *serviceMocks, *booking.Booking, *pipeline.Lead, *catalog.Unit) {
		service, m := newBookingService()
		lead := newTestLead(t, tenantID)
		unit := newTestUnit(t, tenantID)
		require.NoError(t, unit.Hold())
		b := newPendingBooking(t, tenantID, lead.ID, unit.ID)
		require.NoError(t, b.ApplyScheduleTemplate([]booking.TemplateEntry{
			{Name: "On Booking", Percentage: decimal.NewFromInt(40)},
			{Name: "On Possession", Percentage: decimal.NewFromInt(60)},
		}))
		return service, m, b, lead, unit
	}

	t.Run("confirms and runs the lead and unit side effects", func(t *testing.T) {
		service, m, b, lead, unit := setup(t)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("CountByLeadAndStatus", ctx, tenantID, lead.ID, booking.BookingStatusConfirmed).Return(int64(0), nil)
		m.leads.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		m.bookings.On("Save", ctx, b).Return(nil)
		m.leads.On("Save", ctx, lead).Return(nil)
		m.units.On("Save", ctx, unit).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Confirm(ctx, tenantID, b.ID)

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.Equal(t, pipeline.LeadStatusBooked, lead.Status)
		assert.Equal(t, catalog.UnitStatusSold, unit.Status)
	})

	t.Run("rejects confirmation while the schedule mismatches", func(t *testing.T) {
		service, m := newBookingService()
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())
		lead := newTestLead(t, tenantID)
		unit := newTestUnit(t, tenantID)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("CountByLeadAndStatus", ctx, tenantID, b.LeadID, booking.BookingStatusConfirmed).Return(int64(0), nil)
		m.leads.On("FindByIDForTenant", ctx, tenantID, b.LeadID).Return(lead, nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, b.UnitID).Return(unit, nil)

		_, err := service.Confirm(ctx, tenantID, b.ID)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SCHEDULE_MISMATCH", domainErr.Code)
		m.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a second confirmed booking for the same lead", func(t *testing.T) {
		service, m, b, lead, _ := setup(t)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("CountByLeadAndStatus", ctx, tenantID, lead.ID, booking.BookingStatusConfirmed).Return(int64(1), nil)

		_, err := service.Confirm(ctx, tenantID, b.ID)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "STATE_CONFLICT", domainErr.Code)
	})

	t.Run("confirmed bookings cannot be confirmed again", func(t *testing.T) {
		service, m, b, lead, unit := setup(t)
		require.NoError(t, b.Confirm())
		b.ClearDomainEvents()

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("CountByLeadAndStatus", ctx, tenantID, lead.ID, booking.BookingStatusConfirmed).Return(int64(0), nil)
		m.leads.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)

		_, err := service.Confirm(ctx, tenantID, b.ID)

		assert.Error(t, err)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("cancels a pending booking and releases the unit", func(t *testing.T) {
		service, m := newBookingService()
		lead := newTestLead(t, tenantID)
		unit := newTestUnit(t, tenantID)
		require.NoError(t, unit.Hold())
		b := newPendingBooking(t, tenantID, lead.ID, unit.ID)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("Save", ctx, b).Return(nil)
		m.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		m.units.On("Save", ctx, unit).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Cancel(ctx, tenantID, b.ID, CancelBookingRequest{Reason: "customer backed out"})

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.Equal(t, catalog.UnitStatusAvailable, unit.Status)
		assert.Equal(t, pipeline.LeadStatusNegotiation, lead.Status)
	})

	t.Run("cannot cancel a confirmed booking", func(t *testing.T) {
		service, m := newBookingService()
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())
		require.NoError(t, b.ApplyScheduleTemplate([]booking.TemplateEntry{
			{Name: "Full", Percentage: decimal.NewFromInt(100)},
		}))
		require.NoError(t, b.Confirm())
		b.ClearDomainEvents()

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)

		_, err := service.Cancel(ctx, tenantID, b.ID, CancelBookingRequest{})

		assert.Error(t, err)
	})
}

func TestBookingService_RecordPayment(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	confirmedBooking := func(t *testing.T) *booking.Booking {
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())
		require.NoError(t, b.ApplyScheduleTemplate([]booking.TemplateEntry{
			{Name: "On Booking", Percentage: decimal.NewFromInt(40)},
			{Name: "On Possession", Percentage: decimal.NewFromInt(60)},
		}))
		require.NoError(t, b.Confirm())
		b.ClearDomainEvents()
		return b
	}

	t.Run("marks a milestone paid and updates the totals", func(t *testing.T) {
		service, m := newBookingService()
		b := confirmedBooking(t)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("Save", ctx, b).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		summary, err := service.RecordPayment(ctx, tenantID, b.ID, RecordPaymentRequest{MilestoneName: "On Booking"})

		require.NoError(t, err)
		assert.Equal(t, "3366000.00", summary.PaidTotal)
		assert.Equal(t, "5049000.00", summary.OutstandingTotal)
	})

	t.Run("recording twice is a no-op success", func(t *testing.T) {
		service, m := newBookingService()
		b := confirmedBooking(t)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.bookings.On("Save", ctx, b).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := service.RecordPayment(ctx, tenantID, b.ID, RecordPaymentRequest{MilestoneName: "On Booking"})
		require.NoError(t, err)
		summary, err := service.RecordPayment(ctx, tenantID, b.ID, RecordPaymentRequest{MilestoneName: "On Booking"})
		require.NoError(t, err)

		assert.Equal(t, "3366000.00", summary.PaidTotal)
	})

	t.Run("unknown milestone fails", func(t *testing.T) {
		service, m := newBookingService()
		b := confirmedBooking(t)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)

		_, err := service.RecordPayment(ctx, tenantID, b.ID, RecordPaymentRequest{MilestoneName: "On Handover"})

		assert.ErrorIs(t, err, shared.ErrMilestoneNotFound)
	})

	t.Run("payments on a pending booking fail", func(t *testing.T) {
		service, m := newBookingService()
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)

		_, err := service.RecordPayment(ctx, tenantID, b.ID, RecordPaymentRequest{MilestoneName: "On Booking"})

		assert.Error(t, err)
	})
}

func TestBookingService_UploadDocument(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("stores the document and returns a link", func(t *testing.T) {
		service, m := newBookingService()
		b := newPendingBooking(t, tenantID, uuid.New(), uuid.New())
		expires := time.Now().Add(documentURLTTL)

		m.bookings.On("FindByIDForTenant", ctx, tenantID, b.ID).Return(b, nil)
		m.documents.On("Upload", ctx, mock.AnythingOfType("string"), []byte("receipt"), "application/pdf").Return(nil)
		m.documents.On("DownloadURL", ctx, mock.AnythingOfType("string"), documentURLTTL).
			Return("https://storage.example.com/doc", expires, nil)

		resp, err := service.UploadDocument(ctx, tenantID, b.ID, "receipt.pdf", "application/pdf", []byte("receipt"))

		require.NoError(t, err)
		assert.Contains(t, resp.Key, b.ID.String())
		assert.Equal(t, "https://storage.example.com/doc", resp.URL)
		assert.Equal(t, 7, resp.Size)
	})

	t.Run("rejects an empty document", func(t *testing.T) {
		service, m := newBookingService()

		_, err := service.UploadDocument(ctx, tenantID, uuid.New(), "empty.pdf", "application/pdf", nil)

		assert.Error(t, err)
		m.documents.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
