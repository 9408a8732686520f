package catalog

import lru "github.com/hashicorp/golang-lru/v2"

// defaultCacheCapacity is the default maximum number of PlaylistData
// instances held in memory at once (spec.md §4.5, Cache.kMaxCacheSize
// in the original).
const defaultCacheCapacity = 1000

// CacheListener is notified when the PlaylistData it owns is evicted
// from the Cache, so it can drop its own reference and reload lazily
// on next access. Playlist implements this interface.
type CacheListener interface {
	RemovedFromCache()
}

type cacheEntry struct {
	data  *PlaylistData
	owner CacheListener
}

// Cache is a bounded, strictly-LRU store of PlaylistData keyed by
// playlist id. Unlike the original implementation's cache (spec.md §9
// notes it never promotes on hit and never evicts), every Get promotes
// its entry to most-recently-used and insertion past capacity evicts
// the true least-recently-used entry, invoking that entry's owner's
// RemovedFromCache hook.
//
// The eviction hook runs while the underlying lru.Cache holds its own
// internal lock and, in turn, acquires the evicted owner's Playlist
// lock - the one documented exception to the Catalog -> Playlist ->
// Cache lock order (spec.md §5). It is safe because the entry being
// evicted is never the entry currently being inserted: lru.Cache.Add
// always marks the just-added key as most-recently-used before
// considering eviction, so a Playlist can never evict itself while
// its own Insert/Add call still holds its own mutex.
type Cache struct {
	c *lru.Cache[ID, cacheEntry]
}

// NewCache creates a Cache with the given capacity.
func NewCache(capacity int) *Cache {
	c, _ := lru.NewWithEvict(capacity, func(_ ID, entry cacheEntry) {
		entry.owner.RemovedFromCache()
	})
	return &Cache{c: c}
}

// Data returns the PlaylistData for id, loading it via load and
// registering owner as the eviction listener if it isn't already
// resident.
func (c *Cache) Data(id ID, owner CacheListener, load func() (*PlaylistData, error)) (*PlaylistData, error) {
	if entry, ok := c.c.Get(id); ok {
		return entry.data, nil
	}
	data, err := load()
	if err != nil {
		return nil, err
	}
	c.c.Add(id, cacheEntry{data: data, owner: owner})
	return data, nil
}

// Put registers data as already resident for id, without consulting a
// loader. Used when a Playlist is newly created in memory and its
// PlaylistData exists before anything has been persisted to disk.
func (c *Cache) Put(id ID, owner CacheListener, data *PlaylistData) {
	c.c.Add(id, cacheEntry{data: data, owner: owner})
}

// Len returns the number of PlaylistData instances currently resident.
func (c *Cache) Len() int {
	return c.c.Len()
}
