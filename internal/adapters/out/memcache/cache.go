// Package memcache is an in-process ports.Cache for single-instance
// deployments and tests. Entries expire individually; the least recently
// used entry is evicted once the cache is full.
package memcache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type Cache struct {
	cache *lru.Cache
}

// New returns a Cache holding up to size entries. size must be > 0.
func New(size int) *Cache {
	var cache, err = lru.New(size)
	if err != nil {
		panic(err.Error()) // Only errors on size <= 0.
	}
	return &Cache{cache: cache}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	// An expired entry is a miss and is dropped.
	e := v.(entry)
	if !timeNow().Before(e.expires) {
		c.cache.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.Add(key, entry{
		value:   append([]byte(nil), value...),
		expires: timeNow().Add(ttl),
	})
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.cache.Remove(key)
	}
	return nil
}

type entry struct {
	value   []byte
	expires time.Time
}

var timeNow = time.Now
