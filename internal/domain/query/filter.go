// Package query describes list filters and ordering independently of the store.
// Repositories translate Filters into their own query language.
package query

import (
	"strings"
	"time"

	"finance-tracker/internal/domain/access"
)

type FilterKind int

const (
	FilterOwner FilterKind = iota + 1
	FilterCategory
	FilterDateFrom
	FilterDateTo
	FilterSearch
	FilterIsExpense
)

// Filter is a tagged variant; only the field matching Kind is meaningful.
type Filter struct {
	Kind    FilterKind
	OwnerID string
	ID      uint
	Date    time.Time
	Text    string
	Flag    bool
}

func Owner(ownerID string) Filter {
	return Filter{Kind: FilterOwner, OwnerID: ownerID}
}

func Category(categoryID uint) Filter {
	return Filter{Kind: FilterCategory, ID: categoryID}
}

// DateFrom is an inclusive lower bound.
func DateFrom(date time.Time) Filter {
	return Filter{Kind: FilterDateFrom, Date: date}
}

// DateTo is an inclusive upper bound.
func DateTo(date time.Time) Filter {
	return Filter{Kind: FilterDateTo, Date: date}
}

// Search matches description or category name, case-insensitively.
func Search(text string) Filter {
	return Filter{Kind: FilterSearch, Text: text}
}

func IsExpense(flag bool) Filter {
	return Filter{Kind: FilterIsExpense, Flag: flag}
}

// Filters are conjunctive.
type Filters []Filter

// Scoped starts a filter list from the caller's visible scope.
func Scoped(scope access.Scope) Filters {
	if scope.All() {
		return Filters{}
	}
	return Filters{Owner(scope.OwnerID)}
}

func (fs Filters) With(filters ...Filter) Filters {
	out := make(Filters, 0, len(fs)+len(filters))
	out = append(out, fs...)
	return append(out, filters...)
}

func (fs Filters) Has(kind FilterKind) bool {
	for _, f := range fs {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// ParseBoolLiteral is true only for a case-insensitive "true".
func ParseBoolLiteral(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
