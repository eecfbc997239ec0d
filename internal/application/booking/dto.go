package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcrm/backend/internal/domain/booking"
)

// ChargeInput is one charge line in a booking request
type ChargeInput struct {
	Name  string          `json:"name" binding:"required,min=1,max=100"`
	Kind  string          `json:"kind" binding:"required,oneof=fixed percent"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// CreateBookingRequest represents a request to open a pending booking
type CreateBookingRequest struct {
	LeadID        uuid.UUID       `json:"lead_id" binding:"required"`
	UnitID        uuid.UUID       `json:"unit_id" binding:"required"`
	BaseCost      decimal.Decimal `json:"base_cost" binding:"required"`
	Charges       []ChargeInput   `json:"charges"`
	Applicant     string          `json:"applicant" binding:"max=200"`
	CoApplicant   string          `json:"co_applicant" binding:"max=200"`
	TermsAccepted bool            `json:"terms_accepted"`
}

// AddChargeRequest represents a request to add a charge to a pending booking
type AddChargeRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=100"`
	Kind  string          `json:"kind" binding:"required,oneof=fixed percent"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// TemplateEntryInput is one (name, percentage) pair of a schedule template
type TemplateEntryInput struct {
	Name       string          `json:"name" binding:"required,min=1,max=100"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
}

// ApplyTemplateRequest rebuilds the payment schedule from a template
type ApplyTemplateRequest struct {
	Entries []TemplateEntryInput `json:"entries" binding:"required,min=1,dive"`
}

// MilestoneInput is one milestone row in a schedule replacement
type MilestoneInput struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DueDate       *time.Time      `json:"due_date"`
	FundingSource string          `json:"funding_source" binding:"required,oneof=Customer BankLoan"`
}

// ReplaceScheduleRequest replaces the full payment schedule
type ReplaceScheduleRequest struct {
	Milestones []MilestoneInput `json:"milestones" binding:"required,min=1,dive"`
}

// RecordPaymentRequest marks a named milestone paid
type RecordPaymentRequest struct {
	MilestoneName string `json:"milestone_name" binding:"required"`
}

// CancelBookingRequest cancels a pending booking
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ChargeResponse represents a charge with its computed contribution
type ChargeResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	Value        decimal.Decimal `json:"value"`
	Contribution string          `json:"contribution"`
}

// MilestoneResponse represents a milestone in API responses
type MilestoneResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Amount        string     `json:"amount"`
	DueDate       *time.Time `json:"due_date"`
	FundingSource string     `json:"funding_source"`
	PaymentStatus string     `json:"payment_status"`
	Position      int        `json:"position"`
}

// BookingResponse represents a booking with its charges and schedule
type BookingResponse struct {
	ID          uuid.UUID           `json:"id"`
	TenantID    uuid.UUID           `json:"tenant_id"`
	LeadID      uuid.UUID           `json:"lead_id"`
	UnitID      uuid.UUID           `json:"unit_id"`
	BaseCost    string              `json:"base_cost"`
	DealAmount  string              `json:"deal_amount"`
	Status      string              `json:"status"`
	Applicant   string              `json:"applicant,omitempty"`
	CoApplicant string              `json:"co_applicant,omitempty"`
	Charges     []ChargeResponse    `json:"charges"`
	Milestones  []MilestoneResponse `json:"milestones"`
	ConfirmedAt *time.Time          `json:"confirmed_at"`
	CancelledAt *time.Time          `json:"cancelled_at"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ScheduleSummaryResponse is the payment-plan view of a booking
type ScheduleSummaryResponse struct {
	BookingID        uuid.UUID           `json:"booking_id"`
	DealAmount       string              `json:"deal_amount"`
	ScheduleTotal    string              `json:"schedule_total"`
	PaidTotal        string              `json:"paid_total"`
	OutstandingTotal string              `json:"outstanding_total"`
	CustomerFunded   string              `json:"customer_funded"`
	BankLoanFunded   string              `json:"bank_loan_funded"`
	Valid            bool                `json:"valid"`
	Milestones       []MilestoneResponse `json:"milestones"`
}

// DocumentResponse describes an uploaded booking document
type DocumentResponse struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
}

// BookingListFilter represents filter options for the booking list
type BookingListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	LeadID   *uuid.UUID `form:"lead_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToChargeResponse converts a domain Charge to ChargeResponse
func ToChargeResponse(b *booking.Booking, c *booking.Charge) ChargeResponse {
	return ChargeResponse{
		ID:           c.ID,
		Name:         c.Name,
		Kind:         string(c.Kind),
		Value:        c.Value,
		Contribution: c.Contribution(b.BaseCost).Amount().StringFixed(2),
	}
}

// ToMilestoneResponse converts a domain Milestone to MilestoneResponse
func ToMilestoneResponse(m *booking.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:            m.ID,
		Name:          m.Name,
		Amount:        m.Amount.Amount().StringFixed(2),
		DueDate:       m.DueDate,
		FundingSource: string(m.FundingSource),
		PaymentStatus: string(m.PaymentStatus),
		Position:      m.Position,
	}
}

// ToBookingResponse converts a domain Booking to BookingResponse
func ToBookingResponse(b *booking.Booking) BookingResponse {
	charges := make([]ChargeResponse, len(b.Charges))
	for i := range b.Charges {
		charges[i] = ToChargeResponse(b, &b.Charges[i])
	}
	milestones := make([]MilestoneResponse, len(b.Milestones))
	for i := range b.Milestones {
		milestones[i] = ToMilestoneResponse(&b.Milestones[i])
	}

	return BookingResponse{
		ID:          b.ID,
		TenantID:    b.TenantID,
		LeadID:      b.LeadID,
		UnitID:      b.UnitID,
		BaseCost:    b.BaseCost.Amount().StringFixed(2),
		DealAmount:  b.DealAmount.Amount().StringFixed(2),
		Status:      string(b.Status),
		Applicant:   b.Applicant,
		CoApplicant: b.CoApplicant,
		Charges:     charges,
		Milestones:  milestones,
		ConfirmedAt: b.ConfirmedAt,
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBookingResponses converts a slice of domain Bookings to responses
func ToBookingResponses(bookings []booking.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = ToBookingResponse(&bookings[i])
	}
	return responses
}

// ToScheduleSummaryResponse builds the payment-plan view of a booking
func ToScheduleSummaryResponse(b *booking.Booking) ScheduleSummaryResponse {
	milestones := make([]MilestoneResponse, len(b.Milestones))
	for i := range b.Milestones {
		milestones[i] = ToMilestoneResponse(&b.Milestones[i])
	}

	breakdown := b.FundingBreakdown()
	return ScheduleSummaryResponse{
		BookingID:        b.ID,
		DealAmount:       b.DealAmount.Amount().StringFixed(2),
		ScheduleTotal:    booking.ScheduleTotal(b.Milestones).Amount().StringFixed(2),
		PaidTotal:        b.PaidTotal().Amount().StringFixed(2),
		OutstandingTotal: b.OutstandingTotal().Amount().StringFixed(2),
		CustomerFunded:   breakdown.Customer.Amount().StringFixed(2),
		BankLoanFunded:   breakdown.BankLoan.Amount().StringFixed(2),
		Valid:            b.ValidateSchedule() == nil,
		Milestones:       milestones,
	}
}
