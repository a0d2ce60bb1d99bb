package apiclient

import (
	"container/list"
	"sync"
	"time"
)

type cachedResponse struct {
	url       string
	body      []byte
	expiresAt time.Time
}

// responseCache is a thread-safe LRU of GET response bodies keyed by URL.
type responseCache struct {
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
	now      func() time.Time
}

func newResponseCache(capacity int, ttl time.Duration) *responseCache {
	return &responseCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		now:      time.Now,
	}
}

func (c *responseCache) get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[url]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*cachedResponse)
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.eviction.Remove(elem)
		delete(c.items, url)
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	return entry.body, true
}

func (c *responseCache) put(url string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if elem, ok := c.items[url]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*cachedResponse)
		entry.body = body
		entry.expiresAt = expiresAt
		return
	}

	c.items[url] = c.eviction.PushFront(&cachedResponse{url: url, body: body, expiresAt: expiresAt})
	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*cachedResponse).url)
	}
}

func (c *responseCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.eviction.Init()
}

func (c *responseCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}
