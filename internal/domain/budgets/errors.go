package budgets

import (
	"fmt"

	"finance-tracker/internal/domain/errs"
)

var (
	ErrBudgetNotFound   = fmt.Errorf("budget %w", errs.ErrNotFound)
	ErrUnknownCategory  = fmt.Errorf("%w: category does not exist", errs.ErrValidation)
	ErrInvalidPeriod    = fmt.Errorf("%w: period must be one of daily, weekly, monthly, yearly", errs.ErrValidation)
	ErrDatesRequired    = fmt.Errorf("%w: start_date and end_date are required", errs.ErrValidation)
	ErrInvalidDateRange = fmt.Errorf("%w: start_date must not be after end_date", errs.ErrValidation)
)
