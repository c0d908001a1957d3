package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount. It wraps decimal.Decimal so that
// balances never accumulate floating-point error, but serializes as a bare
// JSON number (1000, not "1000") to keep the wire format of the API.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from an integer number of currency units.
func NewMoney(units int64) Money {
	return Money{decimal.NewFromInt(units)}
}

// MarshalJSON emits the amount as an unquoted JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal reports whether m and other represent the same amount.
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}
