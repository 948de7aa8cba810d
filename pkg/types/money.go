package types

import "github.com/shopspring/decimal"

// Money is the external representation of a monetary amount. The amount is
// carried as a decimal string to avoid floating-point precision loss across
// the wire.
type Money struct {
	CurrencyCode string `json:"currencyCode"`
	Amount       string `json:"amount"`
}

// NewMoney renders the decimal with two fractional digits.
func NewMoney(currencyCode string, amount decimal.Decimal) Money {
	return Money{
		CurrencyCode: currencyCode,
		Amount:       amount.StringFixed(2),
	}
}

// ZeroMoney is the canonical zero value for a currency.
func ZeroMoney(currencyCode string) Money {
	return NewMoney(currencyCode, decimal.Zero)
}
