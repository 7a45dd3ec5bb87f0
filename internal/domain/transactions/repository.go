package transactions

import (
	"context"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/query"
)

// Repository is bound to a single Kind's table.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, filters query.Filters, ordering query.Ordering) ([]Transaction, error)
	GetByID(ctx context.Context, scope access.Scope, id uint) (*Transaction, error)
	Create(ctx context.Context, item *Transaction) error
	Update(ctx context.Context, item *Transaction) error
	Delete(ctx context.Context, id uint) (bool, error)
	CategoryName(ctx context.Context, categoryID uint) (string, bool, error)
}
