package budgets

import (
	"time"

	"finance-tracker/internal/domain/query"
	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

func (p Period) Valid() bool {
	for _, period := range Periods {
		if p == period {
			return true
		}
	}
	return false
}

var (
	OrderFields     = []string{"start_date", "amount", "created_at"}
	DefaultOrdering = query.Ordering{{Field: "start_date", Desc: true}, {Field: "created_at", Desc: true}}
)

type Budget struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       string          `gorm:"size:64;index;not null"`
	CategoryID   uint            `gorm:"index;not null"`
	CategoryName string          `gorm:"->;-:migration"`
	Description  string          `gorm:"type:text;not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Period       Period          `gorm:"size:16;not null"`
	StartDate    time.Time       `gorm:"type:date;not null"`
	EndDate      time.Time       `gorm:"type:date;not null"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (b Budget) OwnerID() string {
	return b.UserID
}

type ListParams struct {
	CategoryID *uint
	Ordering   query.Ordering
}

type CreateInput struct {
	CategoryID  uint
	Description string
	Amount      decimal.Decimal
	Period      Period
	StartDate   time.Time
	EndDate     time.Time
}

// UpdateInput carries only the fields present in the request; nil means unchanged.
// Replace demands every required field, as a full replacement does.
type UpdateInput struct {
	CategoryID  *uint
	Description *string
	Amount      *decimal.Decimal
	Period      *Period
	StartDate   *time.Time
	EndDate     *time.Time
	Replace     bool
}

func (in UpdateInput) missing() []string {
	if !in.Replace {
		return nil
	}
	var fields []string
	if in.CategoryID == nil {
		fields = append(fields, "category")
	}
	if in.Amount == nil {
		fields = append(fields, "amount")
	}
	if in.Period == nil {
		fields = append(fields, "period")
	}
	if in.StartDate == nil {
		fields = append(fields, "start_date")
	}
	if in.EndDate == nil {
		fields = append(fields, "end_date")
	}
	return fields
}
