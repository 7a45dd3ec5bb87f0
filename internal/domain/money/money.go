// Package money validates and formats decimal amounts.
//
// Amounts are stored as numeric(12,2): at most 10 integer digits and two
// fractional digits, never negative.
package money

import (
	"fmt"

	"finance-tracker/internal/domain/errs"
	"github.com/shopspring/decimal"
)

const (
	MaxDigits     = 12
	DecimalPlaces = 2
)

var upperBound = decimal.New(1, MaxDigits-DecimalPlaces)

// Validate rejects negative amounts, amounts with more than two decimal places,
// and amounts that do not fit numeric(12,2).
func Validate(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must be greater than or equal to 0", errs.ErrValidation)
	}
	if !amount.Equal(amount.Truncate(DecimalPlaces)) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", errs.ErrValidation, DecimalPlaces)
	}
	if amount.GreaterThanOrEqual(upperBound) {
		return fmt.Errorf("%w: amount must have at most %d digits before the decimal point", errs.ErrValidation, MaxDigits-DecimalPlaces)
	}
	return nil
}

// Format renders an amount with exactly two decimal places.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(DecimalPlaces)
}

// Percent returns part/total*100 rounded to one decimal place, or zero when
// total is zero.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
}
