package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcrm/backend/internal/domain/shared/valueobject"
)

func mustCharge(t *testing.T, name string, kind ChargeKind, value float64) Charge {
	charge, err := NewCharge(uuid.New(), name, kind, decimal.NewFromFloat(value))
	require.NoError(t, err)
	return *charge
}

func TestCharge_TouchAdvancesTimestamp(t *testing.T) {
	charge := mustCharge(t, "GST", ChargeKindPercent, 5)

	before := charge.UpdatedAt
	time.Sleep(time.Millisecond)
	charge.Touch()
	assert.True(t, charge.UpdatedAt.After(before))
}

func TestNewCharge_Validation(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		name       string
		chargeName string
		kind       ChargeKind
		value      float64
		expectErr  bool
	}{
		{"fixed charge", "Legal", ChargeKindFixed, 15000, false},
		{"percent charge", "GST", ChargeKindPercent, 5, false},
		{"zero value allowed", "Waived", ChargeKindFixed, 0, false},
		{"empty name", "", ChargeKindFixed, 100, true},
		{"unknown kind", "GST", ChargeKind("ratio"), 5, true},
		{"negative value", "GST", ChargeKindPercent, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCharge(bookingID, tt.chargeName, tt.kind, decimal.NewFromFloat(tt.value))
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComputeDealTotal(t *testing.T) {
	tests := []struct {
		name     string
		baseCost float64
		charges  []Charge
		expected string
	}{
		{
			name:     "no charges",
			baseCost: 8000000,
			charges:  nil,
			expected: "8000000",
		},
		{
			// Base 8,000,000 + GST 5% (400,000) + Legal 15,000 = 8,415,000
			name:     "gst and legal",
			baseCost: 8000000,
			charges: []Charge{
				mustCharge(t, "GST", ChargeKindPercent, 5),
				mustCharge(t, "Legal", ChargeKindFixed, 15000),
			},
			expected: "8415000",
		},
		{
			name:     "percent contribution rounds on its own",
			baseCost: 100.555,
			charges: []Charge{
				mustCharge(t, "Tax A", ChargeKindPercent, 10),
				mustCharge(t, "Tax B", ChargeKindPercent, 10),
			},
			// base rounds to 100.56; each 10% of 100.555 rounds to 10.06
			expected: "120.68",
		},
		{
			name:     "fixed only",
			baseCost: 500000,
			charges: []Charge{
				mustCharge(t, "Parking", ChargeKindFixed, 250000),
				mustCharge(t, "Club", ChargeKindFixed, 100000),
			},
			expected: "850000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ComputeDealTotal(valueobject.NewMoneyINRFromFloat(tt.baseCost), tt.charges)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, total.Amount().String())
		})
	}
}

func TestComputeDealTotal_NegativeBaseCost(t *testing.T) {
	_, err := ComputeDealTotal(valueobject.NewMoneyINRFromFloat(-1), nil)
	assert.Error(t, err)
}

func TestComputeDealTotal_Deterministic(t *testing.T) {
	base := valueobject.NewMoneyINRFromFloat(1234567.89)
	charges := []Charge{
		mustCharge(t, "GST", ChargeKindPercent, 5),
		mustCharge(t, "Stamp", ChargeKindPercent, 7.5),
		mustCharge(t, "Legal", ChargeKindFixed, 25000),
	}

	first, err := ComputeDealTotal(base, charges)
	require.NoError(t, err)
	second, err := ComputeDealTotal(base, charges)
	require.NoError(t, err)
	assert.True(t, first.Equals(second))
}

func TestComputeDealTotal_MonotonicInBaseCost(t *testing.T) {
	charges := []Charge{
		mustCharge(t, "GST", ChargeKindPercent, 5),
		mustCharge(t, "Legal", ChargeKindFixed, 15000),
	}

	lower, err := ComputeDealTotal(valueobject.NewMoneyINRFromFloat(1000000), charges)
	require.NoError(t, err)
	higher, err := ComputeDealTotal(valueobject.NewMoneyINRFromFloat(1000001), charges)
	require.NoError(t, err)

	less, err := lower.LessThan(higher)
	require.NoError(t, err)
	assert.True(t, less)
}
