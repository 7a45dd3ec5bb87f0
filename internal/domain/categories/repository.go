package categories

import (
	"context"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/query"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, filters query.Filters, ordering query.Ordering) ([]Category, error)
	GetByID(ctx context.Context, scope access.Scope, id uint) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountReferences(ctx context.Context, id uint) (int64, error)
}
