package rule

import "sync"

// cacheKey identifies one packrat memoization slot: a rule instance tried
// at a specific cursor position. Keyed by the rule's construction-order
// id (spec §4.3, §9: a stable-enough identity substitute for a compiler
// type-id), not by any content hash — two structurally identical rule
// instances are deliberately distinct keys, which the spec calls out as
// an acceptable, merely-opportunistic limitation of caching.
type cacheKey struct {
	pos    int
	ruleID uint64
}

// cacheEntry is the recorded outcome of one (position, rule) attempt.
// cursorAfter is meaningful only when promoted is true, mirroring
// spec §3.4: "cursor_after is stored only when the attempt promoted".
type cacheEntry struct {
	result      Result
	cursorAfter int
	promoted    bool
}

// Cache is the packrat memoization table attached to one Stream. Its
// lifetime is exactly one parse: a fresh Stream gets a fresh Cache, and
// nothing here is process-wide (contrast the regex pattern cache in
// regexcache.go, which is intentionally process-wide and immutable once
// warm).
type Cache struct {
	mu    sync.Mutex
	table map[cacheKey]cacheEntry
}

func newCache() *Cache {
	return &Cache{table: make(map[cacheKey]cacheEntry)}
}

func (c *Cache) lookup(key cacheKey) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.table[key]
	return e, ok
}

func (c *Cache) store(key cacheKey, e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table[key] = e
}

// Size reports how many (position, rule) slots have been computed so
// far; the package's cache tests use it to observe which slots were
// memoized.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.table)
}
