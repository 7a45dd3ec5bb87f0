package budgets

import (
	"context"
	"errors"

	"finance-tracker/internal/domain/access"
	budgetsdomain "finance-tracker/internal/domain/budgets"
	"finance-tracker/internal/domain/query"
	"finance-tracker/internal/repository/postgres/querybuilder"
	"gorm.io/gorm"
)

var columns = querybuilder.Columns{
	Owner:    "b.user_id",
	Category: "b.category_id",
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(budgetsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("budgets b").
		Select("b.*, c.name AS category_name").
		Joins("JOIN categories c ON c.id = b.category_id")
}

func (r *PostgresRepository) List(ctx context.Context, filters query.Filters, ordering query.Ordering) ([]budgetsdomain.Budget, error) {
	q, err := querybuilder.Apply(r.base(ctx), filters, columns)
	if err != nil {
		return nil, err
	}
	q = querybuilder.Order(q, ordering, "b.")

	var items []budgetsdomain.Budget
	if err := q.Order("b.id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, scope access.Scope, id uint) (*budgetsdomain.Budget, error) {
	q, err := querybuilder.Apply(r.base(ctx), query.Scoped(scope), columns)
	if err != nil {
		return nil, err
	}

	var budget budgetsdomain.Budget
	if err := q.Where("b.id = ?", id).Take(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetsdomain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *PostgresRepository) Create(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *PostgresRepository) Update(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("id = ?", budget.ID).
		Updates(map[string]interface{}{
			"category_id": budget.CategoryID,
			"description": budget.Description,
			"amount":      budget.Amount,
			"period":      budget.Period,
			"start_date":  budget.StartDate,
			"end_date":    budget.EndDate,
			"updated_at":  budget.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetsdomain.Budget{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CategoryName(ctx context.Context, categoryID uint) (string, bool, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Table("categories").
		Where("id = ?", categoryID).
		Limit(1).
		Pluck("name", &names).Error; err != nil {
		return "", false, err
	}
	if len(names) == 0 {
		return "", false, nil
	}
	return names[0], true, nil
}
