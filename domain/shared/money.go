package shared

import "errors"

// DefaultCurrency is the single currency the storefront trades in.
// Multi-currency is out of scope; the code still carries the currency
// next to every amount so totals from mixed sources cannot be added
// together silently.
const DefaultCurrency = "VND"

// Money value object - an amount in minor currency units.
type Money struct {
	amount   int64  // stored in minor units
	currency string // currency code (e.g. VND)
}

var (
	ErrCurrencyMismatch = errors.New("cannot combine money with different currencies")
	ErrAmountOverflow   = errors.New("money amount overflow")
)

// NewMoney creates a new Money value object.
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns a new Money with both amounts combined.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, ErrCurrencyMismatch
	}
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return nil, ErrAmountOverflow
	}
	return &Money{
		amount:   sum,
		currency: m.currency,
	}, nil
}

// Multiply returns a new Money scaled by quantity, checking for overflow.
func (m Money) Multiply(quantity int) (*Money, error) {
	q := int64(quantity)
	if q != 0 && m.amount != 0 {
		product := m.amount * q
		if product/q != m.amount {
			return nil, ErrAmountOverflow
		}
		return &Money{amount: product, currency: m.currency}, nil
	}
	return &Money{amount: 0, currency: m.currency}, nil
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// Equals compares two Money value objects.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
