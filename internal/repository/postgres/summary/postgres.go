package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/domain/money"
	summarydomain "finance-tracker/internal/domain/summary"
	"finance-tracker/internal/repository/postgres/querybuilder"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Total(ctx context.Context, filter summarydomain.MonthFilter) (decimal.Decimal, error) {
	where, args := r.monthWhere(filter)
	query := "SELECT COALESCE(SUM(e.amount), 0) AS total FROM expenses e WHERE " + where

	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return decimal.Zero, fmt.Errorf("summary total: %w", err)
	}
	return row.Total.Round(money.DecimalPlaces), nil
}

func (r *PostgresRepository) ByCategory(ctx context.Context, filter summarydomain.MonthFilter) ([]summarydomain.CategoryTotal, error) {
	where, args := r.monthWhere(filter)
	query := fmt.Sprintf("SELECT c.name AS category_name, COALESCE(SUM(e.amount), 0) AS total, COUNT(e.id) AS count "+
		"FROM expenses e JOIN categories c ON c.id = e.category_id "+
		"WHERE %s GROUP BY c.name ORDER BY total DESC, c.name ASC", where)

	var rows []struct {
		CategoryName string          `gorm:"column:category_name"`
		Total        decimal.Decimal `gorm:"column:total"`
		Count        int64           `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("summary by category: %w", err)
	}

	result := make([]summarydomain.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		result = append(result, summarydomain.CategoryTotal{
			CategoryName: row.CategoryName,
			Total:        row.Total.Round(money.DecimalPlaces),
			Count:        row.Count,
		})
	}
	return result, nil
}

func (r *PostgresRepository) Daily(ctx context.Context, filter summarydomain.MonthFilter, limit int) ([]summarydomain.DailyTotal, error) {
	where, args := r.monthWhere(filter)
	query := fmt.Sprintf("SELECT e.date AS date, COALESCE(SUM(e.amount), 0) AS total "+
		"FROM expenses e WHERE %s GROUP BY e.date ORDER BY e.date DESC LIMIT ?", where)
	args = append(args, limit)

	var rows []struct {
		Date  time.Time       `gorm:"column:date"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("summary daily: %w", err)
	}

	result := make([]summarydomain.DailyTotal, 0, len(rows))
	for _, row := range rows {
		result = append(result, summarydomain.DailyTotal{
			Date:  row.Date.UTC(),
			Total: row.Total.Round(money.DecimalPlaces),
		})
	}
	return result, nil
}

func (r *PostgresRepository) monthWhere(filter summarydomain.MonthFilter) (string, []interface{}) {
	param := querybuilder.DateParam(r.db)
	conditions := []string{"e.date >= " + param, "e.date < " + param}
	args := []interface{}{filter.From, filter.To}

	if !filter.Scope.All() {
		conditions = append(conditions, "e.user_id = ?")
		args = append(args, filter.Scope.OwnerID)
	}

	return strings.Join(conditions, " AND "), args
}
