package inmemory

import (
	"sync"
	"time"

	categoriesdomain "finance-tracker/internal/domain/categories"
)

// CategoriesCache is a process-local categories.ListCache. Entries expire
// lazily on read.
type CategoriesCache struct {
	mu    sync.RWMutex
	items map[string]categoriesItem
	now   func() time.Time
}

type categoriesItem struct {
	value     []categoriesdomain.Category
	expiresAt time.Time
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{
		items: make(map[string]categoriesItem),
		now:   time.Now,
	}
}

func (c *CategoriesCache) Get(key string) ([]categoriesdomain.Category, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *CategoriesCache) Set(key string, categories []categoriesdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.items[key] = categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *CategoriesCache) Purge() {
	c.mu.Lock()
	c.items = make(map[string]categoriesItem)
	c.mu.Unlock()
}

func cloneCategories(categories []categoriesdomain.Category) []categoriesdomain.Category {
	cloned := make([]categoriesdomain.Category, len(categories))
	copy(cloned, categories)
	return cloned
}
