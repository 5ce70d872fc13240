package search

import (
	"strings"
	"sync"

	"mealdex/internal/catalog"
)

// Cache memoizes search result sets for the lifetime of a session, keyed by
// the trimmed query string. Keys keep their case, so a case-variant query is
// a miss. Entries never expire.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]catalog.MealSummary
}

// NewCache creates an empty result cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]catalog.MealSummary)}
}

// GetOrFetch returns the cached result set for term, calling fetch on a
// miss. Only successful fetches are stored: a NotFound or transport failure
// leaves no entry, so the same failing term is re-fetched next time.
func (c *Cache) GetOrFetch(term string, fetch func(string) ([]catalog.MealSummary, error)) ([]catalog.MealSummary, error) {
	key := strings.TrimSpace(term)

	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	meals, err := fetch(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = meals
	c.mu.Unlock()
	return meals, nil
}

// Len reports the number of cached queries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
