package summary

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository aggregates expenses. Implementations must not hold state between calls;
// the service invokes the three methods concurrently.
type Repository interface {
	Total(ctx context.Context, filter MonthFilter) (decimal.Decimal, error)
	ByCategory(ctx context.Context, filter MonthFilter) ([]CategoryTotal, error)
	Daily(ctx context.Context, filter MonthFilter, limit int) ([]DailyTotal, error)
}
