// Package money models BRL amounts as integer centavos.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in centavos. Arithmetic never goes through floats.
type Money int64

// Zero is the additive identity.
const Zero Money = 0

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FromCents wraps an integer centavo amount.
func FromCents(cents int64) Money { return Money(cents) }

// FromDecimal rounds a decimal amount to the nearest centavo.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).Round(0).IntPart())
}

// Parse reads a decimal string such as "41.99".
func Parse(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Zero, fmt.Errorf("parse money %q: %w", raw, err)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse for static tables; it panics on malformed input.
func MustParse(raw string) Money {
	m, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the raw centavo count.
func (m Money) Cents() int64 { return int64(m) }

// Add returns m + o.
func (m Money) Add(o Money) Money { return m + o }

// Mul scales m by an integer quantity.
func (m Money) Mul(q int) Money { return m * Money(q) }

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool { return m < 0 }

// Decimal returns m in currency units.
func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -2) }

// String renders m with two fractional digits and a dot separator.
func (m Money) String() string { return m.Decimal().StringFixed(2) }

// Digits renders m with two fractional digits and no separator ("83.98" -> "8398").
func (m Money) Digits() string { return strings.Replace(m.String(), ".", "", 1) }

// BRL renders m for pt-BR display, e.g. "R$ 1.234,56".
func (m Money) BRL() string {
	return brl.Sprintf("R$ %.2f", m.Decimal().InexactFloat64())
}

// MarshalJSON encodes m as a bare decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*m = Zero
		return nil
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
