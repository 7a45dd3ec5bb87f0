package summary

import (
	"time"

	"finance-tracker/internal/domain/access"
	"github.com/shopspring/decimal"
)

// DailyLimit caps daily totals to the most recent dates that have expenses.
const DailyLimit = 7

type Period struct {
	Year  int
	Month time.Month
}

// Range is the half-open interval [first day of month, first day of next month).
func (p Period) Range() (time.Time, time.Time) {
	from := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (p Period) MonthName() string {
	return p.Month.String()
}

// MonthFilter is what the repository needs to aggregate one scoped month.
type MonthFilter struct {
	Scope access.Scope
	From  time.Time
	To    time.Time
}

type CategoryTotal struct {
	CategoryName string
	Total        decimal.Decimal
	Count        int64
	Percentage   decimal.Decimal
}

type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
}

type Report struct {
	Period      Period
	Total       decimal.Decimal
	ByCategory  []CategoryTotal
	DailyTotals []DailyTotal
}
