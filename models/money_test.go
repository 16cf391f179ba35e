package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		tax      string
		want     string
	}{
		{"whole amounts", "100.00", "7.00", "107.00"},
		{"fractional cents round", "0.10", "0.20", "0.30"},
		{"classic float trap", "19.99", "0.01", "20.00"},
		{"zero tax", "250.50", "0", "250.50"},
		{"blank subtotal counts as zero", "", "5.25", "5.25"},
		{"garbage tax counts as zero", "12.00", "abc", "12.00"},
		{"both empty", "", "", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(ParseAmount(tt.subtotal), ParseAmount(tt.tax))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestMoneyCentsRoundTrip(t *testing.T) {
	m := ParseAmount("1234.56")
	assert.Equal(t, int64(123456), m.Cents())
	assert.True(t, MoneyFromCents(123456).Equal(m.Decimal))
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"7", "$7.00"},
		{"107", "$107.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.89", "$1,234,567.89"},
		{"-42.10", "-$42.10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmount(tt.in).Format())
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(ParseAmount("107"))
	require.NoError(t, err)
	assert.Equal(t, "107.00", string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte("99.95"), &m))
	assert.Equal(t, int64(9995), m.Cents())

	// quoted amounts are accepted too
	require.NoError(t, json.Unmarshal([]byte(`"12.30"`), &m))
	assert.Equal(t, int64(1230), m.Cents())

	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &m))
}

func TestMoneyScanTreatsEveryDriverTypeAsCents(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"null column", nil, "0.00"},
		{"int64 cents", int64(10700), "107.00"},
		{"float64 cents from an aggregate", float64(10700), "107.00"},
		{"text cents", []byte("10700"), "107.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			require.NoError(t, m.Scan(tt.src))
			assert.Equal(t, tt.want, m.StringFixed(2))
		})
	}

	var m Money
	assert.Error(t, m.Scan(true))
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount("100.00"))
	assert.True(t, ValidAmount(" 7 "))
	assert.False(t, ValidAmount(""))
	assert.False(t, ValidAmount("12.3.4"))
}
