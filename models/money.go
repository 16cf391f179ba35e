package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal currency amount with two fractional digits.
// It marshals to JSON as a bare number, and persists as integer cents.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to two fractional digits.
func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// MoneyFromCents converts an integer cent amount into Money.
func MoneyFromCents(cents int64) Money {
	return Money{decimal.New(cents, -2)}
}

// ParseAmount parses a decimal amount string. Blank or unparsable input
// yields zero, matching how a partially typed form field is treated during
// live recomputation.
func ParseAmount(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}
	}
	return Money{d.Round(2)}
}

// ValidAmount reports whether s parses as a decimal number.
func ValidAmount(s string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil
}

// ComputeTotal derives an invoice total from its subtotal and tax.
func ComputeTotal(subtotal, tax Money) Money {
	return Money{subtotal.Add(tax.Decimal).Round(2)}
}

// Plus returns m + other.
func (m Money) Plus(other Money) Money {
	return Money{m.Add(other.Decimal).Round(2)}
}

// Cents returns the amount as integer cents.
func (m Money) Cents() int64 {
	return m.Shift(2).Round(0).IntPart()
}

// Format renders the amount for display with a currency symbol, thousands
// grouping, and exactly two fractional digits, e.g. "$1,234.50".
func (m Money) Format() string {
	whole, frac, _ := strings.Cut(m.Abs().StringFixed(2), ".")
	var b strings.Builder
	if m.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = Money{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*m = Money{d.Round(2)}
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Cents(), nil
}

// Scan reads an integer-cents column. Drivers deliver it as int64, float64
// (aggregates), or text depending on the engine; every branch is cents.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Money{}
	case int64:
		*m = MoneyFromCents(v)
	case float64:
		*m = MoneyFromCents(decimal.NewFromFloat(v).Round(0).IntPart())
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("scanning money from %q: %w", v, err)
		}
		*m = MoneyFromCents(d.IntPart())
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
	return nil
}
