package transactions

import (
	"time"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/query"
	"github.com/shopspring/decimal"
)

// Kind selects between the two structurally identical ledgers.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Resource() access.Resource {
	if k == KindIncome {
		return access.ResourceIncome
	}
	return access.ResourceExpense
}

func (k Kind) Table() string {
	if k == KindIncome {
		return "incomes"
	}
	return "expenses"
}

var (
	OrderFields     = []string{"date", "amount", "created_at"}
	DefaultOrdering = query.Ordering{{Field: "date", Desc: true}, {Field: "created_at", Desc: true}}
)

// Transaction maps onto both the expenses and incomes tables, so indexes are
// declared in the SQL migrations rather than in tags.
type Transaction struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       string          `gorm:"size:64;not null"`
	CategoryID   uint            `gorm:"not null"`
	CategoryName string          `gorm:"->;-:migration"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description  string          `gorm:"type:text;not null"`
	Date         time.Time       `gorm:"type:date;not null"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (t Transaction) OwnerID() string {
	return t.UserID
}

type ListParams struct {
	CategoryID *uint
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
	Ordering   query.Ordering
}

type CreateInput struct {
	CategoryID  uint
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// UpdateInput carries only the fields present in the request; nil means unchanged.
// Replace demands every required field, as a full replacement does.
type UpdateInput struct {
	CategoryID  *uint
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
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
	if in.Date == nil {
		fields = append(fields, "date")
	}
	return fields
}
