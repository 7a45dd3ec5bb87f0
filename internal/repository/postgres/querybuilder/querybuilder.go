// Package querybuilder translates domain filters and orderings into gorm clauses.
// The generated SQL runs unchanged on PostgreSQL and SQLite.
package querybuilder

import (
	"fmt"
	"strings"

	"finance-tracker/internal/domain/query"
	"gorm.io/gorm"
)

// Columns maps filter kinds onto qualified column names. An empty column means
// the table does not support that filter.
type Columns struct {
	Owner        string
	Category     string
	Date         string
	Description  string
	CategoryName string
	IsExpense    string
}

func Apply(db *gorm.DB, filters query.Filters, cols Columns) (*gorm.DB, error) {
	for _, f := range filters {
		column, err := cols.column(f.Kind)
		if err != nil {
			return nil, err
		}

		switch f.Kind {
		case query.FilterOwner:
			db = db.Where(column+" = ?", f.OwnerID)
		case query.FilterCategory:
			db = db.Where(column+" = ?", f.ID)
		case query.FilterDateFrom:
			db = db.Where(column+" >= "+DateParam(db), f.Date)
		case query.FilterDateTo:
			db = db.Where(column+" <= "+DateParam(db), f.Date)
		case query.FilterIsExpense:
			db = db.Where(column+" = ?", f.Flag)
		case query.FilterSearch:
			db = applySearch(db, f.Text, cols)
		}
	}
	return db, nil
}

// applySearch matches the description or, when mapped, the category name.
// PostgreSQL folds case with ILIKE. SQLite's LOWER folds ASCII only, so
// non-ASCII text matches there only when the case already agrees.
func applySearch(db *gorm.DB, text string, cols Columns) *gorm.DB {
	postgres := isPostgres(db)
	if !postgres {
		text = strings.ToLower(text)
	}
	pattern := "%" + escapeLike(text) + "%"

	match := func(column string) string {
		if postgres {
			return column + ` ILIKE ? ESCAPE '\'`
		}
		return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
	}

	if cols.CategoryName == "" {
		return db.Where(match(cols.Description), pattern)
	}
	return db.Where("("+match(cols.Description)+" OR "+match(cols.CategoryName)+")", pattern, pattern)
}

func (c Columns) column(kind query.FilterKind) (string, error) {
	var column string
	switch kind {
	case query.FilterOwner:
		column = c.Owner
	case query.FilterCategory:
		column = c.Category
	case query.FilterDateFrom, query.FilterDateTo:
		column = c.Date
	case query.FilterSearch:
		column = c.Description
	case query.FilterIsExpense:
		column = c.IsExpense
	}
	if column == "" {
		return "", fmt.Errorf("querybuilder: filter kind %d not supported", kind)
	}
	return column, nil
}

// Order applies ordering, qualifying each field with prefix. Fields must already
// be restricted to a known allow-list.
func Order(db *gorm.DB, ordering query.Ordering, prefix string) *gorm.DB {
	if len(ordering) == 0 {
		return db
	}
	return db.Order(ordering.Clause(func(field string) string {
		return prefix + field
	}))
}

// DateParam is the placeholder for a calendar-day argument. PostgreSQL would
// infer date from the compared column anyway; the cast keeps the parameter
// type explicit where the other operand is an expression.
func DateParam(db *gorm.DB) string {
	if isPostgres(db) {
		return "CAST(? AS date)"
	}
	return "?"
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector != nil && db.Dialector.Name() == "postgres"
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
