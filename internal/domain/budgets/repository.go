package budgets

import (
	"context"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/query"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, filters query.Filters, ordering query.Ordering) ([]Budget, error)
	GetByID(ctx context.Context, scope access.Scope, id uint) (*Budget, error)
	Create(ctx context.Context, budget *Budget) error
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, id uint) (bool, error)
	CategoryName(ctx context.Context, categoryID uint) (string, bool, error)
}
