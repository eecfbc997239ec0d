package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

// ChargeKind distinguishes how a charge contributes to the deal total
type ChargeKind string

const (
	ChargeKindFixed   ChargeKind = "fixed"
	ChargeKindPercent ChargeKind = "percent"
)

// IsValid checks if the kind is a known charge kind
func (k ChargeKind) IsValid() bool {
	return k == ChargeKindFixed || k == ChargeKindPercent
}

// Charge is an additional cost component layered on a booking's base cost.
// A fixed charge contributes its value directly; a percent charge contributes
// value% of the base cost. Charges belong exclusively to their booking.
type Charge struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Name      string
	Kind      ChargeKind
	Value     decimal.Decimal // Amount for fixed, percentage for percent
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCharge creates a new charge
func NewCharge(bookingID uuid.UUID, name string, kind ChargeKind, value decimal.Decimal) (*Charge, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Charge name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Charge kind must be fixed or percent")
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charge value cannot be negative")
	}

	now := time.Now()
	return &Charge{
		ID:        uuid.New(),
		BookingID: bookingID,
		Name:      name,
		Kind:      kind,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Touch bumps the update timestamp
func (c *Charge) Touch() {
	c.UpdatedAt = time.Now()
}

// Contribution computes this charge's rounded contribution against a base cost.
// Each contribution is rounded to the currency minor unit on its own, so the
// itemized display always sums to the stored total.
func (c *Charge) Contribution(baseCost valueobject.Money) valueobject.Money {
	if c.Kind == ChargeKindPercent {
		return baseCost.CalculatePercentage(c.Value)
	}
	return valueobject.NewMoneyINR(c.Value).RoundMinor()
}

// ComputeDealTotal computes a deal's total value from a base cost and a set
// of charges. Pure; callers must re-invoke it whenever the base cost or the
// charge set changes rather than trust a cached total.
func ComputeDealTotal(baseCost valueobject.Money, charges []Charge) (valueobject.Money, error) {
	if baseCost.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Base cost cannot be negative")
	}

	total := baseCost.RoundMinor()
	for i := range charges {
		if charges[i].Value.IsNegative() {
			return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Charge value cannot be negative")
		}
		var err error
		total, err = total.Add(charges[i].Contribution(baseCost))
		if err != nil {
			return valueobject.Money{}, err
		}
	}

	return total.RoundMinor(), nil
}
