package categories

import (
	"fmt"

	"finance-tracker/internal/domain/errs"
)

var (
	ErrCategoryNotFound = fmt.Errorf("category %w", errs.ErrNotFound)
	ErrCategoryInUse    = fmt.Errorf("category is referenced by expenses, incomes or budgets: %w", errs.ErrConflict)
)
