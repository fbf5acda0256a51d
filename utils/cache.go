package utils

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/nci/gomemcache/memcache"
)

// RenderCache caches rendered responses in memcached, keyed by the md5
// of the request URI. A nil cache is a no-op so callers need not guard
// every call site.
type RenderCache struct {
	mc *memcache.Client
}

// NewRenderCache opens a lazy connection; errors surface in Get/Put.
func NewRenderCache(uri string) *RenderCache {
	if len(uri) == 0 {
		return nil
	}
	return &RenderCache{mc: memcache.New(uri)}
}

func cacheKey(query string) string {
	buff := md5.Sum([]byte(query))
	return hex.EncodeToString(buff[:])
}

func (c *RenderCache) Get(query string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	item, err := c.mc.Get(cacheKey(query))
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

func (c *RenderCache) Put(query string, value []byte) {
	if c == nil {
		return
	}
	// don't care about errors; memcache may not necessarily retain this anyway
	c.mc.Set(&memcache.Item{Key: cacheKey(query), Value: value})
}
