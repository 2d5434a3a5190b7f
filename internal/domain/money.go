package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// AmountScale is the number of decimal places every stored amount carries.
const AmountScale = 2

var (
	// MaxPrice bounds prices, stored as NUMERIC(12, 2).
	MaxPrice = decimal.New(1, 10)
	// MaxTotal bounds order totals, stored as NUMERIC(14, 2).
	MaxTotal = decimal.New(1, 12)
)

// validateAmount rejects negative amounts, amounts of limit or more and amounts with
// more than AmountScale decimal places, the store would round those.
func validateAmount(name string, amount, limit decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return fmt.Errorf("%s is negative: %w", name, ErrValidation)
	case amount.GreaterThanOrEqual(limit):
		return fmt.Errorf("%s must be less than %s: %w", name, limit, ErrValidation)
	case !amount.Equal(amount.Round(AmountScale)):
		return fmt.Errorf("%s has more than %d decimal places: %w", name, AmountScale, ErrValidation)
	}
	return nil
}
