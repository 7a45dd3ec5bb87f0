package transactions

import (
	"fmt"

	"finance-tracker/internal/domain/errs"
)

var (
	ErrExpenseNotFound = fmt.Errorf("expense %w", errs.ErrNotFound)
	ErrIncomeNotFound  = fmt.Errorf("income %w", errs.ErrNotFound)
	ErrUnknownCategory = fmt.Errorf("%w: category does not exist", errs.ErrValidation)
	ErrDateRequired    = fmt.Errorf("%w: date is required", errs.ErrValidation)
)

func (k Kind) NotFound() error {
	if k == KindIncome {
		return ErrIncomeNotFound
	}
	return ErrExpenseNotFound
}
