package transactions

import (
	"context"
	"errors"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/query"
	txdomain "finance-tracker/internal/domain/transactions"
	"finance-tracker/internal/repository/postgres/querybuilder"
	"gorm.io/gorm"
)

var columns = querybuilder.Columns{
	Owner:        "t.user_id",
	Category:     "t.category_id",
	Date:         "t.date",
	Description:  "t.description",
	CategoryName: "c.name",
}

// PostgresRepository serves one Kind; expenses and incomes share the schema.
type PostgresRepository struct {
	db   *gorm.DB
	kind txdomain.Kind
}

func NewPostgres(db *gorm.DB, kind txdomain.Kind) *PostgresRepository {
	return &PostgresRepository{db: db, kind: kind}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(txdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx, kind: r.kind})
	})
}

func (r *PostgresRepository) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.kind.Table())
}

func (r *PostgresRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(r.kind.Table() + " t").
		Select("t.*, c.name AS category_name").
		Joins("JOIN categories c ON c.id = t.category_id")
}

func (r *PostgresRepository) List(ctx context.Context, filters query.Filters, ordering query.Ordering) ([]txdomain.Transaction, error) {
	q, err := querybuilder.Apply(r.base(ctx), filters, columns)
	if err != nil {
		return nil, err
	}
	q = querybuilder.Order(q, ordering, "t.")

	var items []txdomain.Transaction
	if err := q.Order("t.id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, scope access.Scope, id uint) (*txdomain.Transaction, error) {
	q, err := querybuilder.Apply(r.base(ctx), query.Scoped(scope), columns)
	if err != nil {
		return nil, err
	}

	var item txdomain.Transaction
	if err := q.Where("t.id = ?", id).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.kind.NotFound()
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *txdomain.Transaction) error {
	return r.table(ctx).Create(item).Error
}

func (r *PostgresRepository) Update(ctx context.Context, item *txdomain.Transaction) error {
	return r.table(ctx).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"category_id": item.CategoryID,
			"amount":      item.Amount,
			"description": item.Description,
			"date":        item.Date,
			"updated_at":  item.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.table(ctx).Where("id = ?", id).Delete(&txdomain.Transaction{})
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
