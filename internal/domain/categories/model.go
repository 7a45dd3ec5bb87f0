package categories

import (
	"time"

	"finance-tracker/internal/domain/query"
)

const maxNameLength = 100

var (
	OrderFields     = []string{"name", "created_at"}
	DefaultOrdering = query.Ordering{{Field: "name"}}
)

// Category is global for reads; only CreatedBy may change it.
type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text;not null"`
	IsExpense   bool      `gorm:"not null"`
	CreatedBy   string    `gorm:"size:64;index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (c Category) OwnerID() string {
	return c.CreatedBy
}

type ListParams struct {
	IsExpense *bool
	Ordering  query.Ordering
}

type CreateInput struct {
	Name        string
	Description string
	IsExpense   bool
}

// UpdateInput carries only the fields present in the request; nil means unchanged.
// Replace demands every required field, as a full replacement does.
type UpdateInput struct {
	Name        *string
	Description *string
	IsExpense   *bool
	Replace     bool
}

func (in UpdateInput) missing() []string {
	if !in.Replace || in.Name != nil {
		return nil
	}
	return []string{"name"}
}
