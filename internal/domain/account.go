package domain

import "github.com/shopspring/decimal"

// Balance is the pair of money buckets embedded in a player row.
type Balance struct {
	Cash decimal.Decimal `json:"cash"`
	Bank decimal.Decimal `json:"bank"`
}

// NewBalance builds a balance from whole currency units.
func NewBalance(cash, bank int64) Balance {
	return Balance{
		Cash: decimal.NewFromInt(cash),
		Bank: decimal.NewFromInt(bank),
	}
}

// Total returns cash plus bank.
func (b Balance) Total() decimal.Decimal {
	return b.Cash.Add(b.Bank)
}

// IsValid reports whether both buckets are non-negative.
func (b Balance) IsValid() bool {
	return !b.Cash.IsNegative() && !b.Bank.IsNegative()
}

// Equal compares both buckets numerically.
func (b Balance) Equal(other Balance) bool {
	return b.Cash.Equal(other.Cash) && b.Bank.Equal(other.Bank)
}

// MoneyScale is the number of fractional digits kept for money columns.
const MoneyScale = 2
