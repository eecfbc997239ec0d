package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// FundingSource identifies who pays a milestone
type FundingSource string

const (
	FundingSourceCustomer FundingSource = "Customer"
	FundingSourceBankLoan FundingSource = "BankLoan"
)

// IsValid checks if the source is a known funding source
func (f FundingSource) IsValid() bool {
	return f == FundingSourceCustomer || f == FundingSourceBankLoan
}

// PaymentStatus is the collection state of a single milestone
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// Milestone is one scheduled partial payment within a booking's payment plan
type Milestone struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Name          string
	Amount        valueobject.Money
	DueDate       *time.Time
	FundingSource FundingSource
	PaymentStatus PaymentStatus
	Position      int // Keeps the schedule's display order stable
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMilestone creates a new pending milestone
func NewMilestone(bookingID uuid.UUID, name string, amount valueobject.Money, source FundingSource) (*Milestone, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Milestone name cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Milestone amount cannot be negative")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown funding source")
	}

	now := time.Now()
	return &Milestone{
		ID:            uuid.New(),
		BookingID:     bookingID,
		Name:          name,
		Amount:        amount.RoundMinor(),
		FundingSource: source,
		PaymentStatus: PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsPaid returns true when the milestone has been collected
func (m *Milestone) IsPaid() bool {
	return m.PaymentStatus == PaymentStatusPaid
}

// Touch bumps the update timestamp
func (m *Milestone) Touch() {
	m.UpdatedAt = time.Now()
}

// TemplateEntry is one (name, percentage) pair of a schedule template
type TemplateEntry struct {
	Name       string
	Percentage decimal.Decimal
}

// ApplyTemplate builds a fresh schedule from a template. The template's
// percentages must sum to exactly 100. Every generated milestone starts
// Pending with funding source Customer; the caller replaces any existing
// schedule with the result.
func ApplyTemplate(bookingID uuid.UUID, dealTotal valueobject.Money, template []TemplateEntry) ([]Milestone, error) {
	if len(template) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Schedule template cannot be empty")
	}

	sum := decimal.Zero
	for _, entry := range template {
		if entry.Percentage.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Template percentage cannot be negative")
		}
		sum = sum.Add(entry.Percentage)
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Template percentages must sum to 100")
	}

	milestones := make([]Milestone, 0, len(template))
	target := dealTotal.RoundMinor()
	allocated := valueobject.ZeroINR()
	for i, entry := range template {
		amount := dealTotal.CalculatePercentage(entry.Percentage)
		if i == len(template)-1 {
			// The last milestone absorbs the accumulated rounding
			// remainder so the schedule sums to the deal total exactly.
			remainder, err := target.Subtract(allocated)
			if err != nil {
				return nil, err
			}
			amount = remainder
		}
		milestone, err := NewMilestone(bookingID, entry.Name, amount, FundingSourceCustomer)
		if err != nil {
			return nil, err
		}
		milestone.Position = i
		milestones = append(milestones, *milestone)
		allocated = allocated.MustAdd(milestone.Amount)
	}

	return milestones, nil
}

// scheduleTolerance is one currency minor unit. Per-milestone rounding may
// leave the schedule off from the deal total by at most this much.
var scheduleTolerance = decimal.New(1, -valueobject.MinorUnitPlaces)

// ScheduleTotal sums the milestone amounts
func ScheduleTotal(milestones []Milestone) valueobject.Money {
	total := valueobject.ZeroINR()
	for i := range milestones {
		total = total.MustAdd(milestones[i].Amount)
	}
	return total
}

// ValidateSchedule is the pre-submission gate: the schedule must be non-empty
// and its total must match the deal total within one minor unit. Interim
// editing states are free to violate this; only submission enforces it.
func ValidateSchedule(milestones []Milestone, dealTotal valueobject.Money) error {
	if len(milestones) == 0 {
		return shared.NewDomainError("SCHEDULE_MISMATCH", "Payment schedule cannot be empty")
	}

	diff := ScheduleTotal(milestones).Amount().Sub(dealTotal.Amount()).Abs()
	if diff.GreaterThan(scheduleTolerance) {
		return shared.NewDomainError("SCHEDULE_MISMATCH",
			"Schedule total does not match the deal amount")
	}

	return nil
}

// FundingBreakdown is the per-source subtotal of a schedule, recomputed on
// demand and never stored.
type FundingBreakdown struct {
	Customer valueobject.Money
	BankLoan valueobject.Money
}

// BreakdownByFundingSource computes the Customer vs BankLoan subtotals
func BreakdownByFundingSource(milestones []Milestone) FundingBreakdown {
	breakdown := FundingBreakdown{
		Customer: valueobject.ZeroINR(),
		BankLoan: valueobject.ZeroINR(),
	}
	for i := range milestones {
		switch milestones[i].FundingSource {
		case FundingSourceBankLoan:
			breakdown.BankLoan = breakdown.BankLoan.MustAdd(milestones[i].Amount)
		default:
			breakdown.Customer = breakdown.Customer.MustAdd(milestones[i].Amount)
		}
	}
	return breakdown
}
