package categories

import (
	"context"
	"errors"

	"finance-tracker/internal/domain/access"
	categoriesdomain "finance-tracker/internal/domain/categories"
	"finance-tracker/internal/domain/query"
	"finance-tracker/internal/repository/postgres/querybuilder"
	"gorm.io/gorm"
)

var columns = querybuilder.Columns{
	Owner:     "c.created_by",
	IsExpense: "c.is_expense",
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(categoriesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("categories c").Select("c.*")
}

func (r *PostgresRepository) List(ctx context.Context, filters query.Filters, ordering query.Ordering) ([]categoriesdomain.Category, error) {
	q, err := querybuilder.Apply(r.base(ctx), filters, columns)
	if err != nil {
		return nil, err
	}
	q = querybuilder.Order(q, ordering, "c.")

	var items []categoriesdomain.Category
	if err := q.Order("c.id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, scope access.Scope, id uint) (*categoriesdomain.Category, error) {
	q, err := querybuilder.Apply(r.base(ctx), query.Scoped(scope), columns)
	if err != nil {
		return nil, err
	}

	var category categoriesdomain.Category
	if err := q.Where("c.id = ?", id).Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) Create(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) Update(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"is_expense":  category.IsExpense,
			"updated_at":  category.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categoriesdomain.Category{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountReferences(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		"SELECT (SELECT COUNT(*) FROM expenses WHERE category_id = ?) + "+
			"(SELECT COUNT(*) FROM incomes WHERE category_id = ?) + "+
			"(SELECT COUNT(*) FROM budgets WHERE category_id = ?)",
		id, id, id,
	).Scan(&count).Error
	return count, err
}
