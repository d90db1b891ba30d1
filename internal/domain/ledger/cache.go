package ledger

import (
	"sync"
	"time"

	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// Cache keeps recently loaded per-product entry lists so repeated week
// views within the TTL skip the database. Mutations must call
// Invalidate after commit.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	items map[id.ID]cacheItem
}

type cacheItem struct {
	entries  []StockEntry
	loadedAt time.Time
}

// NewCache creates a cache with the given TTL. A non-positive TTL
// disables caching entirely.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[id.ID]cacheItem),
	}
}

// Get returns the cached entries for the product and whether they are
// still fresh.
func (c *Cache) Get(productID id.ID) ([]StockEntry, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[productID]
	if !ok || c.now().Sub(item.loadedAt) > c.ttl {
		return nil, false
	}
	return item.entries, true
}

// Put stores the product's entries, replacing any previous snapshot.
func (c *Cache) Put(productID id.ID, entries []StockEntry) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[productID] = cacheItem{entries: entries, loadedAt: c.now()}
}

// Invalidate drops the product's snapshot.
func (c *Cache) Invalidate(productID id.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, productID)
}

// InvalidateAll clears the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[id.ID]cacheItem)
}
