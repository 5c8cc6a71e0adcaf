// Package money converts ledger amounts, stored as integer cents, into the
// decimal forms used by external providers and human-readable descriptions.
package money

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const scale = -2

// FromCents returns cents as a two decimal place amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, scale)
}

// ToCents rounds amount half away from zero to whole cents.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(-scale).Round(0).IntPart()
}

// Format renders cents with exactly two decimal places, e.g. 15000 -> "150.00".
func Format(cents int64) string {
	return FromCents(cents).StringFixed(-scale)
}

// Number renders cents as a JSON number with two decimal places.
func Number(cents int64) json.Number {
	return json.Number(Format(cents))
}
