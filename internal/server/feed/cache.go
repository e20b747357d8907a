package feed

import (
	"fmt"
	"time"

	"feedpress/internal/cache"
)

// CacheKey keys one rendered document. Version is the registry version
// at render time, so a reload naturally misses the old entries.
type CacheKey struct {
	Name    string
	Type    string
	Version uint64
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%d", k.Name, k.Type, k.Version)
}

type docCache = cache.Cache[CacheKey, string]

func newDocCache(ttl time.Duration) *docCache {
	return cache.New[CacheKey, string](cache.Config{TTL: ttl}, CacheKey.String)
}

const TypeRSS = "rss"
const TypeAtom = "atom"
const TypeJSON = "json"
