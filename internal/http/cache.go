package http

import (
	"container/list"
	"sync"
	"time"

	"inflation/internal/services"
)

// changeCache memoizes successful value-change responses. Keys embed the
// rate-table version, so a reload misses every old entry by construction;
// superseded entries age out through TTL expiry and LRU eviction.
type changeCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type changeEntry struct {
	key       string
	result    services.ValueChangeResult
	expiresAt time.Time
}

func newChangeCache(maxSize int, ttl time.Duration) *changeCache {
	return &changeCache{
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *changeCache) get(key string) (services.ValueChangeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return services.ValueChangeResult{}, false
	}

	entry := elem.Value.(*changeEntry)
	if time.Now().After(entry.expiresAt) {
		c.remove(elem)
		return services.ValueChangeResult{}, false
	}

	c.order.MoveToFront(elem)
	return entry.result, true
}

func (c *changeCache) set(key string, result services.ValueChangeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &changeEntry{
		key:       key,
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, ok := c.entries[key]; ok {
		elem.Value = entry
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(entry)

	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// cleanExpired evicts every expired entry and reports how many went.
func (c *changeCache) cleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var expired []*list.Element
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*changeEntry).expiresAt) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		c.remove(elem)
	}
	return len(expired)
}

func (c *changeCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// remove expects the mutex to be held.
func (c *changeCache) remove(elem *list.Element) {
	delete(c.entries, elem.Value.(*changeEntry).key)
	c.order.Remove(elem)
}
