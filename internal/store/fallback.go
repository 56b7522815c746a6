package store

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// Fallback is the local key-value store used when the remote store is
// unreachable. It is process-wide, best-effort and eventually consistent
// with the remote store: once the remote becomes reachable again it is
// authoritative and no merge is attempted. Writes also serve immediate
// re-reads, so the store doubles as the in-memory cache for degraded mode.
type Fallback interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// FallbackKey derives the deterministic key for a record from its
// collection and identifying parts.
func FallbackKey(collection string, parts ...string) string {
	return collection + ":" + strings.Join(parts, ":")
}

type lruFallback struct {
	cache *lru.Cache
}

// NewFallback creates an LRU-backed fallback store holding at most size
// entries. Eviction under pressure is acceptable: the fallback is a
// degraded-mode convenience, never the system of record.
func NewFallback(size int) (Fallback, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &lruFallback{cache: cache}, nil
}

func (f *lruFallback) Get(key string) (string, bool) {
	val, ok := f.cache.Get(key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func (f *lruFallback) Set(key, value string) {
	f.cache.Add(key, value)
}

func (f *lruFallback) Delete(key string) {
	f.cache.Remove(key)
}
