package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), INR)
		require.NoError(t, err)
		assert.Equal(t, INR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyINRFromFloat(100.50)
	b := NewMoneyINRFromFloat(49.50)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		usd, _ := NewMoney(decimal.NewFromInt(1), USD)
		_, err := a.Add(usd)
		assert.Error(t, err)
	})
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyINRFromFloat(100)
	b := NewMoneyINRFromFloat(30)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))
}

func TestMoney_CalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		percent  int64
		expected string
	}{
		{"five percent of eight million", 8000000, 5, "400000"},
		{"whole of base", 1234.56, 100, "1234.56"},
		{"zero percent", 500, 0, "0"},
		{"rounds to minor unit", 100.555, 10, "10.06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMoneyINRFromFloat(tt.base)
			pct := m.CalculatePercentage(decimal.NewFromInt(tt.percent))
			expected, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)
			assert.True(t, pct.Amount().Equal(expected),
				"got %s, want %s", pct.Amount(), expected)
		})
	}
}

func TestMoney_RoundMinor(t *testing.T) {
	m := NewMoneyINRFromFloat(10.005)
	assert.Equal(t, "10.01", m.RoundMinor().Amount().String())
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyINRFromFloat(10)
	large := NewMoneyINRFromFloat(20)

	less, err := small.LessThan(large)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := large.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.True(t, small.Equals(NewMoneyINRFromFloat(10)))
	assert.False(t, small.Equals(large))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyINRFromFloat(8415000)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_UnmarshalJSONDefaultsCurrency(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"150000"}`), &m))
	assert.Equal(t, DefaultCurrency, m.Currency())
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("8415000"))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(8415000)))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
