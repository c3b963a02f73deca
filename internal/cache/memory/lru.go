package memory

import (
	"container/list"
	"sync"
	"time"

	"github.com/Gunvolt24/flowers/pkg/metrics"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// lruTTL — потокобезопасный LRU с TTL (sliding: Get продлевает срок).
// clone вызывается на входе и выходе, наружу данные кэша не утекают.
// name — метка cache в метриках.
type lruTTL[V any] struct {
	name     string
	capacity int
	ttl      time.Duration
	clone    func(V) V

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func newLRUTTL[V any](name string, capacity int, ttl time.Duration, clone func(V) V) *lruTTL[V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &lruTTL[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		clone:    clone,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *lruTTL[V]) get(key string) (V, bool) {
	var zero V
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		c.op("miss")
		return zero, false
	}
	ent := elem.Value.(*entry[V])
	if c.isExpired(ent, now) {
		c.op("expired")
		c.removeElement(elem)
		c.reportSize()
		return zero, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	c.op("hit")
	return c.clone(ent.value), true
}

func (c *lruTTL[V]) set(key string, value V) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = c.clone(value)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry[V]{
		key:       key,
		value:     c.clone(value),
		expiresAt: c.expiryFrom(now),
	})
	c.index[key] = elem
	c.reportSize()

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
}

// remove — true, если ключ был в кэше.
func (c *lruTTL[V]) remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return false
	}
	c.removeElement(elem)
	c.op("invalidated")
	c.reportSize()
	return true
}

func (c *lruTTL[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// ------вспомогательные функции------

// evictLRU — удаляет наименее используемый элемент.
func (c *lruTTL[V]) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		c.op("evicted")
		c.reportSize()
	}
}

func (c *lruTTL[V]) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry[V])
	delete(c.index, ent.key)
	c.ll.Remove(elem)
}

func (c *lruTTL[V]) isExpired(ent *entry[V], now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *lruTTL[V]) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет элементы с истекшим TTL из хвоста до первого актуального.
func (c *lruTTL[V]) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		if !now.After(back.Value.(*entry[V]).expiresAt) {
			return
		}
		c.removeElement(back)
		c.op("expired")
		c.reportSize()
	}
}

func (c *lruTTL[V]) op(name string) {
	metrics.CacheOps.WithLabelValues(c.name, name).Inc()
}

func (c *lruTTL[V]) reportSize() {
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.index)))
}
