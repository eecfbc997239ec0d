package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
	"github.com/jdcrm/backend/internal/infrastructure/storage"
)

// documentURLTTL bounds how long a presigned document link stays valid
const documentURLTTL = 15 * time.Minute

// BookingService handles the booking lifecycle: opening a pending booking
// against an available unit, charge and schedule editing, confirmation with
// its lead/unit side effects, cancellation and milestone payments.
type BookingService struct {
	bookingRepo    booking.BookingRepository
	leadRepo       pipeline.LeadRepository
	unitRepo       catalog.UnitRepository
	documents      storage.DocumentStore
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo booking.BookingRepository,
	leadRepo pipeline.LeadRepository,
	unitRepo catalog.UnitRepository,
	documents storage.DocumentStore,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:    bookingRepo,
		leadRepo:       leadRepo,
		unitRepo:       unitRepo,
		documents:      documents,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Create opens a pending booking for a lead against an available unit.
// The unit is held; the lead's pipeline status is left alone until
// confirmation. Terms must be accepted up front.
func (s *BookingService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, req.LeadID)
	if err != nil {
		return nil, err
	}
	if !lead.IsActive() {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Cannot open a booking for a closed lead")
	}

	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, req.UnitID)
	if err != nil {
		return nil, err
	}

	baseCost := valueobject.NewMoneyINR(req.BaseCost)
	b, err := booking.NewBooking(tenantID, lead.ID, unit.ID, baseCost, req.TermsAccepted)
	if err != nil {
		return nil, err
	}

	if req.Applicant != "" || req.CoApplicant != "" {
		b.SetApplicants(req.Applicant, req.CoApplicant)
	}

	for _, charge := range req.Charges {
		if _, err := b.AddCharge(charge.Name, booking.ChargeKind(charge.Kind), charge.Value); err != nil {
			return nil, err
		}
	}

	if err := unit.Hold(); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		// A held unit with no booking would block the inventory; put it back.
		if releaseErr := unit.Release(); releaseErr == nil {
			_ = s.unitRepo.Save(ctx, unit)
		}
		return nil, err
	}

	s.publishEvents(ctx, b)

	response := ToBookingResponse(b)
	return &response, nil
}

// GetByID retrieves a booking with its charges and schedule
func (s *BookingService) GetByID(ctx context.Context, tenantID, bookingID uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	response := ToBookingResponse(b)
	return &response, nil
}

// List retrieves bookings with filtering and pagination
func (s *BookingService) List(ctx context.Context, tenantID uuid.UUID, filter BookingListFilter) ([]BookingResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.LeadID != nil {
		domainFilter.Filters["lead_id"] = *filter.LeadID
	}

	bookings, err := s.bookingRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.bookingRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBookingResponses(bookings), total, nil
}

// ListForLead retrieves a lead's bookings
func (s *BookingService) ListForLead(ctx context.Context, tenantID, leadID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.bookingRepo.FindByLead(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

// AddCharge adds a charge to a pending booking and recomputes the deal amount
func (s *BookingService) AddCharge(ctx context.Context, tenantID, bookingID uuid.UUID, req AddChargeRequest) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := b.AddCharge(req.Name, booking.ChargeKind(req.Kind), req.Value); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToBookingResponse(b)
	return &response, nil
}

// RemoveCharge removes a charge from a pending booking
func (s *BookingService) RemoveCharge(ctx context.Context, tenantID, bookingID, chargeID uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := b.RemoveCharge(chargeID); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToBookingResponse(b)
	return &response, nil
}

// ApplyScheduleTemplate rebuilds the payment schedule from a percentage
// template against the current deal amount
func (s *BookingService) ApplyScheduleTemplate(ctx context.Context, tenantID, bookingID uuid.UUID, req ApplyTemplateRequest) (*ScheduleSummaryResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	template := make([]booking.TemplateEntry, len(req.Entries))
	for i, entry := range req.Entries {
		template[i] = booking.TemplateEntry{Name: entry.Name, Percentage: entry.Percentage}
	}

	if err := b.ApplyScheduleTemplate(template); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToScheduleSummaryResponse(b)
	return &response, nil
}

// ReplaceSchedule swaps the full milestone list of a pending booking.
// Interim mismatch with the deal amount is allowed; Confirm enforces it.
func (s *BookingService) ReplaceSchedule(ctx context.Context, tenantID, bookingID uuid.UUID, req ReplaceScheduleRequest) (*ScheduleSummaryResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status != booking.BookingStatusPending {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Cannot edit the schedule on a non-pending booking")
	}

	existing := make([]uuid.UUID, len(b.Milestones))
	for i := range b.Milestones {
		existing[i] = b.Milestones[i].ID
	}
	for _, id := range existing {
		if err := b.RemoveMilestone(id); err != nil {
			return nil, err
		}
	}

	for _, m := range req.Milestones {
		amount := valueobject.NewMoneyINR(m.Amount)
		if _, err := b.AddMilestone(m.Name, amount, booking.FundingSource(m.FundingSource), m.DueDate); err != nil {
			return nil, err
		}
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToScheduleSummaryResponse(b)
	return &response, nil
}

// GetSchedule returns the payment-plan view of a booking
func (s *BookingService) GetSchedule(ctx context.Context, tenantID, bookingID uuid.UUID) (*ScheduleSummaryResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	response := ToScheduleSummaryResponse(b)
	return &response, nil
}

// Confirm transitions a pending booking to CONFIRMED. The schedule must
// match the deal amount, the lead must not already hold a confirmed
// booking, and the side effects run here: the lead goes BOOKED and the
// unit is marked sold.
func (s *BookingService) Confirm(ctx context.Context, tenantID, bookingID uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.bookingRepo.CountByLeadAndStatus(ctx, tenantID, b.LeadID, booking.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if confirmed > 0 {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Lead already has a confirmed booking")
	}

	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, b.LeadID)
	if err != nil {
		return nil, err
	}
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, b.UnitID)
	if err != nil {
		return nil, err
	}

	if err := b.Confirm(); err != nil {
		return nil, err
	}
	if err := lead.MarkBooked(); err != nil {
		return nil, err
	}
	if err := unit.MarkSold(); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, b)
	s.publishLeadEvents(ctx, lead)

	response := ToBookingResponse(b)
	return &response, nil
}

// Cancel transitions a pending booking to CANCELLED and releases the held
// unit. The lead's status is left alone.
func (s *BookingService) Cancel(ctx context.Context, tenantID, bookingID uuid.UUID, req CancelBookingRequest) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := b.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, b.UnitID)
	if err == nil {
		if releaseErr := unit.Release(); releaseErr == nil {
			if err := s.unitRepo.Save(ctx, unit); err != nil {
				return nil, err
			}
		}
	}

	s.publishEvents(ctx, b)

	response := ToBookingResponse(b)
	return &response, nil
}

// RecordPayment marks the named milestone paid on a confirmed booking.
// Recording an already-paid milestone is a no-op success.
func (s *BookingService) RecordPayment(ctx context.Context, tenantID, bookingID uuid.UUID, req RecordPaymentRequest) (*ScheduleSummaryResponse, error) {
	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := b.RecordPayment(req.MilestoneName); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, b)

	response := ToScheduleSummaryResponse(b)
	return &response, nil
}

// UploadDocument stores an opaque booking document (agreement scan, payment
// receipt) and returns a time-limited download link
func (s *BookingService) UploadDocument(ctx context.Context, tenantID, bookingID uuid.UUID, filename, contentType string, data []byte) (*DocumentResponse, error) {
	if len(data) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document is empty")
	}

	b, err := s.bookingRepo.FindByIDForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	key := storage.BookingDocumentKey(tenantID, b.ID, filename)
	if err := s.documents.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	url, expiresAt, err := s.documents.DownloadURL(ctx, key, documentURLTTL)
	if err != nil {
		return nil, err
	}

	return &DocumentResponse{
		Key:         key,
		URL:         url,
		ExpiresAt:   expiresAt,
		ContentType: contentType,
		Size:        len(data),
	}, nil
}

// DocumentURL returns a fresh time-limited link for a stored document
func (s *BookingService) DocumentURL(ctx context.Context, tenantID, bookingID uuid.UUID, filename string) (*DocumentResponse, error) {
	key := storage.BookingDocumentKey(tenantID, bookingID, filename)

	exists, err := s.documents.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.documents.DownloadURL(ctx, key, documentURLTTL)
	if err != nil {
		return nil, err
	}

	return &DocumentResponse{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

func (s *BookingService) publishEvents(ctx context.Context, b *booking.Booking) {
	if s.eventPublisher == nil {
		return
	}
	events := b.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish booking events",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err),
		)
	}
	b.ClearDomainEvents()
}

func (s *BookingService) publishLeadEvents(ctx context.Context, lead *pipeline.Lead) {
	if s.eventPublisher == nil {
		return
	}
	events := lead.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish lead events",
			zap.String("lead_id", lead.ID.String()),
			zap.Error(err),
		)
	}
	lead.ClearDomainEvents()
}
