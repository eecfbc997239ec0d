package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// BookingStatus represents the state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed, BookingStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for CONFIRMED and CANCELLED
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// Booking represents a pending or confirmed sale of a specific inventory
// unit to a lead. It is the aggregate root for the deal's charges and
// payment schedule; the deal amount is derived from the base cost and the
// charge set and recomputed on every charge mutation.
type Booking struct {
	shared.TenantAggregateRoot
	LeadID      uuid.UUID
	UnitID      uuid.UUID
	BaseCost    valueobject.Money
	Charges     []Charge
	DealAmount  valueobject.Money // Derived, never stored stale
	Status      BookingStatus
	Milestones  []Milestone
	Applicant   string // Pass-through identity fields, opaque to the engine
	CoApplicant string
	ConfirmedAt *time.Time
	CancelledAt *time.Time
}

// NewBooking creates a booking in PENDING status. The caller must have
// affirmed terms acceptance; the associated lead keeps whatever status it
// had — only confirmation moves it to BOOKED.
func NewBooking(tenantID, leadID, unitID uuid.UUID, baseCost valueobject.Money, termsAccepted bool) (*Booking, error) {
	if leadID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lead ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A unit must be selected")
	}
	if !baseCost.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Base cost must be positive")
	}
	if !termsAccepted {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Terms must be accepted before booking")
	}

	b := &Booking{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LeadID:              leadID,
		UnitID:              unitID,
		BaseCost:            baseCost.RoundMinor(),
		Charges:             make([]Charge, 0),
		DealAmount:          baseCost.RoundMinor(),
		Status:              BookingStatusPending,
		Milestones:          make([]Milestone, 0),
	}

	b.AddDomainEvent(NewBookingCreatedEvent(b))

	return b, nil
}

// SetApplicants sets the pass-through applicant identity fields
func (b *Booking) SetApplicants(applicant, coApplicant string) {
	b.Applicant = applicant
	b.CoApplicant = coApplicant
	b.Touch()
}

// AddCharge adds a charge and recomputes the deal amount.
// Only allowed while the booking is PENDING.
func (b *Booking) AddCharge(name string, kind ChargeKind, value decimal.Decimal) (*Charge, error) {
	if b.Status != BookingStatusPending {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Cannot modify charges on a non-pending booking")
	}

	charge, err := NewCharge(b.ID, name, kind, value)
	if err != nil {
		return nil, err
	}

	b.Charges = append(b.Charges, *charge)
	if err := b.recomputeDealAmount(); err != nil {
		b.Charges = b.Charges[:len(b.Charges)-1]
		return nil, err
	}
	b.Touch()

	return charge, nil
}

// RemoveCharge removes a charge and recomputes the deal amount
func (b *Booking) RemoveCharge(chargeID uuid.UUID) error {
	if b.Status != BookingStatusPending {
		return shared.NewDomainError("STATE_CONFLICT", "Cannot modify charges on a non-pending booking")
	}

	for idx := range b.Charges {
		if b.Charges[idx].ID == chargeID {
			b.Charges = append(b.Charges[:idx], b.Charges[idx+1:]...)
			if err := b.recomputeDealAmount(); err != nil {
				return err
			}
			b.Touch()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Charge not found")
}

// UpdateBaseCost replaces the base cost and recomputes the deal amount
func (b *Booking) UpdateBaseCost(baseCost valueobject.Money) error {
	if b.Status != BookingStatusPending {
		return shared.NewDomainError("STATE_CONFLICT", "Cannot change base cost on a non-pending booking")
	}
	if !baseCost.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Base cost must be positive")
	}

	b.BaseCost = baseCost.RoundMinor()
	if err := b.recomputeDealAmount(); err != nil {
		return err
	}
	b.Touch()
	return nil
}

// ApplyScheduleTemplate discards any existing schedule and rebuilds it from
// the template against the current deal amount
func (b *Booking) ApplyScheduleTemplate(template []TemplateEntry) error {
	if b.Status != BookingStatusPending {
		return shared.NewDomainError("STATE_CONFLICT", "Cannot rebuild the schedule on a non-pending booking")
	}

	milestones, err := ApplyTemplate(b.ID, b.DealAmount, template)
	if err != nil {
		return err
	}

	b.Milestones = milestones
	b.Touch()
	return nil
}

// AddMilestone appends a milestone to the schedule. Interim inconsistency
// with the deal amount is allowed; Confirm enforces the total.
func (b *Booking) AddMilestone(name string, amount valueobject.Money, source FundingSource, dueDate *time.Time) (*Milestone, error) {
	if b.Status != BookingStatusPending {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Cannot edit the schedule on a non-pending booking")
	}

	milestone, err := NewMilestone(b.ID, name, amount, source)
	if err != nil {
		return nil, err
	}
	milestone.DueDate = dueDate
	milestone.Position = len(b.Milestones)

	b.Milestones = append(b.Milestones, *milestone)
	b.Touch()

	return milestone, nil
}

// RemoveMilestone removes a milestone from the schedule
func (b *Booking) RemoveMilestone(milestoneID uuid.UUID) error {
	if b.Status != BookingStatusPending {
		return shared.NewDomainError("STATE_CONFLICT", "Cannot edit the schedule on a non-pending booking")
	}

	for idx := range b.Milestones {
		if b.Milestones[idx].ID == milestoneID {
			b.Milestones = append(b.Milestones[:idx], b.Milestones[idx+1:]...)
			for i := range b.Milestones {
				b.Milestones[i].Position = i
			}
			b.Touch()
			return nil
		}
	}

	return shared.ErrMilestoneNotFound
}

// UpdateMilestone edits a milestone's name, amount, due date and funding source
func (b *Booking) UpdateMilestone(milestoneID uuid.UUID, name string, amount valueobject.Money, source FundingSource, dueDate *time.Time) error {
	if b.Status != BookingStatusPending {
		return shared.NewDomainError("STATE_CONFLICT", "Cannot edit the schedule on a non-pending booking")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Milestone amount cannot be negative")
	}
	if !source.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unknown funding source")
	}

	for idx := range b.Milestones {
		if b.Milestones[idx].ID == milestoneID {
			b.Milestones[idx].Name = name
			b.Milestones[idx].Amount = amount.RoundMinor()
			b.Milestones[idx].FundingSource = source
			b.Milestones[idx].DueDate = dueDate
			b.Milestones[idx].Touch()
			b.Touch()
			return nil
		}
	}

	return shared.ErrMilestoneNotFound
}

// ValidateSchedule runs the pre-submission gate against the current deal amount
func (b *Booking) ValidateSchedule() error {
	return ValidateSchedule(b.Milestones, b.DealAmount)
}

// FundingBreakdown computes the Customer vs BankLoan subtotals on demand
func (b *Booking) FundingBreakdown() FundingBreakdown {
	return BreakdownByFundingSource(b.Milestones)
}

// Confirm transitions the booking from PENDING to CONFIRMED. The schedule
// must pass validation; callers then mark the associated lead BOOKED.
func (b *Booking) Confirm() error {
	if !b.Status.CanTransitionTo(BookingStatusConfirmed) {
		return shared.NewDomainError("STATE_CONFLICT",
			fmt.Sprintf("Cannot confirm a booking in %s status", b.Status))
	}
	if !b.DealAmount.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Deal amount must be positive")
	}
	if err := b.ValidateSchedule(); err != nil {
		return err
	}

	now := time.Now()
	b.Status = BookingStatusConfirmed
	b.ConfirmedAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBookingConfirmedEvent(b))

	return nil
}

// Cancel transitions the booking from PENDING to CANCELLED. The associated
// lead's status is left alone; the caller may re-open it manually.
func (b *Booking) Cancel(reason string) error {
	if !b.Status.CanTransitionTo(BookingStatusCancelled) {
		return shared.NewDomainError("STATE_CONFLICT",
			fmt.Sprintf("Cannot cancel a booking in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BookingStatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBookingCancelledEvent(b, reason))

	return nil
}

// RecordPayment marks the named milestone Paid. Valid only on a CONFIRMED
// booking. Idempotent: recording a payment against an already-paid milestone
// is a no-op success.
func (b *Booking) RecordPayment(milestoneName string) error {
	if b.Status != BookingStatusConfirmed {
		return shared.NewDomainError("STATE_CONFLICT",
			fmt.Sprintf("Cannot record payments on a %s booking", b.Status))
	}

	for idx := range b.Milestones {
		if b.Milestones[idx].Name != milestoneName {
			continue
		}
		if b.Milestones[idx].IsPaid() {
			return nil
		}
		b.Milestones[idx].PaymentStatus = PaymentStatusPaid
		b.Milestones[idx].Touch()
		b.Touch()

		b.AddDomainEvent(NewMilestonePaidEvent(b, &b.Milestones[idx]))

		return nil
	}

	return shared.ErrMilestoneNotFound
}

// PaidTotal sums the amounts of paid milestones
func (b *Booking) PaidTotal() valueobject.Money {
	total := valueobject.ZeroINR()
	for i := range b.Milestones {
		if b.Milestones[i].IsPaid() {
			total = total.MustAdd(b.Milestones[i].Amount)
		}
	}
	return total
}

// OutstandingTotal is the deal amount minus paid milestones
func (b *Booking) OutstandingTotal() valueobject.Money {
	outstanding, err := b.DealAmount.Subtract(b.PaidTotal())
	if err != nil {
		return valueobject.ZeroINR()
	}
	return outstanding
}

func (b *Booking) recomputeDealAmount() error {
	total, err := ComputeDealTotal(b.BaseCost, b.Charges)
	if err != nil {
		return err
	}
	b.DealAmount = total
	return nil
}
