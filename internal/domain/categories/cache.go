package categories

import (
	"strconv"
	"time"

	"finance-tracker/internal/domain/query"
)

// ListCache holds List results. Categories are global, so one purge after any
// write keeps every cached listing consistent.
type ListCache interface {
	Get(key string) ([]Category, bool)
	Set(key string, categories []Category, ttl time.Duration)
	Purge()
}

type noopListCache struct{}

func (noopListCache) Get(string) ([]Category, bool) {
	return nil, false
}

func (noopListCache) Set(string, []Category, time.Duration) {}

func (noopListCache) Purge() {}

func listKey(isExpense *bool, ordering query.Ordering) string {
	kind := "all"
	if isExpense != nil {
		kind = strconv.FormatBool(*isExpense)
	}
	return kind + "|" + ordering.Clause(func(field string) string { return field })
}
