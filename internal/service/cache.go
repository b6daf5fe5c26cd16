package service

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	cacheKeyProjects      = "projects"
	cacheKeySkills        = "skills"
	cacheKeyResume        = "resume"
	cacheKeyPublishedBlog = "blogs:published"
)

// ContentCache 缓存公开页面读取的列表，写操作后按 key 失效。nil 表示不缓存。
type ContentCache struct {
	store *cache.Cache
}

// NewContentCache creates a cache whose entries expire after ttl.
func NewContentCache(ttl time.Duration) *ContentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ContentCache{store: cache.New(ttl, ttl*2)}
}

func (c *ContentCache) get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	return c.store.Get(key)
}

func (c *ContentCache) set(key string, value interface{}) {
	if c == nil {
		return
	}
	c.store.Set(key, value, cache.DefaultExpiration)
}

// Invalidate drops the given keys.
func (c *ContentCache) Invalidate(keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		c.store.Delete(key)
	}
}

// cachedList returns the cached slice for key or loads and stores it.
// Callers receive a copy so they may reorder or filter freely.
func cachedList[T any](c *ContentCache, key string, load func() ([]T, error)) ([]T, error) {
	if v, ok := c.get(key); ok {
		if items, ok := v.([]T); ok {
			return append([]T(nil), items...), nil
		}
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	c.set(key, items)
	return append([]T(nil), items...), nil
}
