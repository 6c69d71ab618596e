package inmemory

import (
	"sync"
	"time"

	recordsdomain "cepip-app-go/internal/domain/records"
)

type LookupCache struct {
	mu    sync.RWMutex
	items map[recordsdomain.Lookup]lookupItem
	now   func() time.Time
}

type lookupItem struct {
	value     []recordsdomain.LookupItem
	expiresAt time.Time
}

func NewLookupCache() *LookupCache {
	return &LookupCache{
		items: make(map[recordsdomain.Lookup]lookupItem),
		now:   time.Now,
	}
}

func (c *LookupCache) Get(lookup recordsdomain.Lookup) ([]recordsdomain.LookupItem, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[lookup]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[lookup]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, lookup)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneItems(item.value), true
}

func (c *LookupCache) Set(lookup recordsdomain.Lookup, items []recordsdomain.LookupItem, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.items[lookup] = lookupItem{
		value:     cloneItems(items),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *LookupCache) Clear() {
	c.mu.Lock()
	c.items = make(map[recordsdomain.Lookup]lookupItem)
	c.mu.Unlock()
}

func cloneItems(items []recordsdomain.LookupItem) []recordsdomain.LookupItem {
	if items == nil {
		return nil
	}
	cloned := make([]recordsdomain.LookupItem, len(items))
	copy(cloned, items)
	return cloned
}
