package texture

import (
	"fmt"

	"github.com/google/btree"

	"github.com/gogpu/texcache"
	"github.com/gogpu/texcache/gpu"
	"github.com/gogpu/texcache/object"
)

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of lookups that returned a fresh entry.
	Hits uint64
	// Misses is the number of lookups that found nothing or a stale entry.
	Misses uint64
	// HitRate is the hit rate 0.0 to 1.0.
	HitRate float64
	// Inserts is the number of entries inserted.
	Inserts uint64
	// Replacements is the number of entries replaced by an insert with the same key.
	Replacements uint64
	// StaleEvictions is the number of entries removed because their texture changed.
	StaleEvictions uint64
	// UnreferencedEvictions is the number of entries removed because their texture was destroyed.
	UnreferencedEvictions uint64
	// Releases is the number of GPU handles deleted by the cache.
	Releases uint64
}

// Cache maps scene texture identities to GPU textures for one sharing group.
// Entries are unique and ordered by key.
//
// Cache is not safe for concurrent use.
type Cache struct {
	name   string
	device gpu.Device

	entries *btree.BTreeG[*Entry]
	handles map[gpu.Handle]object.ID
	probe   Entry // reused search key, keeps lookups allocation-free

	stats  Stats
	closed bool
}

func lessByKey(a, b *Entry) bool { return a.key < b.key }

// NewCache creates an empty cache whose handles are deleted through dev.
func NewCache(dev gpu.Device, opts ...Option) *Cache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		name:    o.name,
		device:  dev,
		entries: btree.NewG[*Entry](o.degree, lessByKey),
		handles: make(map[gpu.Handle]object.ID),
	}
}

// Name returns the name used in log records.
func (c *Cache) Name() string { return c.name }

// Device returns the device the cache deletes handles through.
func (c *Cache) Device() gpu.Device { return c.device }

// Len returns the number of entries.
func (c *Cache) Len() int { return c.entries.Len() }

// Closed reports whether Close has been called.
func (c *Cache) Closed() bool { return c.closed }

// Find returns the entry for tex without checking freshness, or nil.
// Find never modifies the cache.
func (c *Cache) Find(tex *object.Texture) *Entry {
	if tex == nil || c.closed {
		c.checkOpen()
		return nil
	}
	c.probe.key = tex.ID()
	e, ok := c.entries.Get(&c.probe)
	if !ok {
		return nil
	}
	return e
}

// Validate reports whether e, an entry of this cache, still matches tex.
// A stale entry, or one whose texture was destroyed, is removed and its
// handle deleted.
func (c *Cache) Validate(e *Entry, tex *object.Texture) bool {
	if e == nil || tex == nil || e.key != tex.ID() {
		return false
	}
	if tex.Destroyed() {
		if c.Remove(e) {
			c.stats.UnreferencedEvictions++
		}
		return false
	}
	if e.fresh(tex) {
		return true
	}
	if c.Remove(e) {
		c.stats.StaleEvictions++
		texcache.Logger().Debug("texture: stale entry evicted",
			"cache", c.name, "key", e.key,
			"textureEdit", e.textureEdit, "storageEdit", e.storageEdit)
	}
	return false
}

// Lookup returns the fresh entry for tex, or nil.
//
// Lookup is the draw-time hot path: an entry whose texture or storage edit
// index changed since insertion is removed and its handle deleted as part
// of the call, and Lookup reports a miss.
func (c *Cache) Lookup(tex *object.Texture) *Entry {
	e := c.Find(tex)
	if e != nil && c.Validate(e, tex) {
		c.stats.Hits++
		return e
	}
	c.stats.Misses++
	return nil
}

// Insert records h as the GPU texture built for tex, snapshotting the
// current edit indices, and returns the new entry. An existing entry for
// tex is replaced and its handle deleted.
//
// On success the cache owns h. On error the caller keeps ownership.
func (c *Cache) Insert(tex *object.Texture, h gpu.Handle) (*Entry, error) {
	switch {
	case c.closed:
		c.checkOpen()
		return nil, ErrCacheClosed
	case tex == nil:
		return nil, ErrNilTexture
	case h.IsZero():
		return nil, ErrZeroHandle
	case tex.Destroyed():
		return nil, fmt.Errorf("insert texture %d: %w", tex.ID(), object.ErrDestroyed)
	}
	if owner, ok := c.handles[h]; ok {
		return nil, fmt.Errorf("%w: %v owned by texture %d", ErrHandleInUse, h, owner)
	}

	e := newEntry(tex, h)
	old, replaced := c.entries.ReplaceOrInsert(e)
	c.handles[h] = e.key
	c.stats.Inserts++

	if replaced {
		c.drop(old)
		c.stats.Replacements++
	}

	texcache.Logger().Debug("texture: entry inserted",
		"cache", c.name, "key", e.key, "handle", h, "replaced", replaced)
	return e, nil
}

// Remove removes e from the cache and deletes its handle.
// It returns false if e is not an entry of this cache.
func (c *Cache) Remove(e *Entry) bool {
	if e == nil || c.closed {
		return false
	}
	cur, ok := c.entries.Get(e)
	if !ok || cur != e {
		return false
	}
	c.entries.Delete(e)
	c.drop(e)
	return true
}

// EvictUnreferenced removes every entry whose texture has been destroyed
// and returns how many were removed. It is safe to call at any time.
func (c *Cache) EvictUnreferenced() int {
	if c.closed || c.entries.Len() == 0 {
		return 0
	}

	var dead []*Entry
	c.entries.Ascend(func(e *Entry) bool {
		if !e.Alive() {
			dead = append(dead, e)
		}
		return true
	})

	for _, e := range dead {
		c.entries.Delete(e)
		c.drop(e)
	}
	c.stats.UnreferencedEvictions += uint64(len(dead))

	if len(dead) > 0 {
		texcache.Logger().Debug("texture: unreferenced entries evicted",
			"cache", c.name, "count", len(dead), "remaining", c.entries.Len())
	}
	return len(dead)
}

// Entries returns the entries in key order. The slice is a copy.
func (c *Cache) Entries() []*Entry {
	result := make([]*Entry, 0, c.entries.Len())
	c.entries.Ascend(func(e *Entry) bool {
		result = append(result, e)
		return true
	})
	return result
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Len = c.entries.Len()
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// ResetStats resets all statistics counters to zero.
func (c *Cache) ResetStats() {
	c.stats = Stats{}
}

// Close deletes every handle and empties the cache. Afterwards lookups
// miss and Insert fails with ErrCacheClosed. Close is idempotent.
func (c *Cache) Close() {
	if c.closed {
		return
	}
	n := c.entries.Len()
	c.entries.Ascend(func(e *Entry) bool {
		c.release(e)
		return true
	})
	c.entries.Clear(false)
	clear(c.handles)
	c.closed = true

	texcache.Logger().Debug("texture: cache closed", "cache", c.name, "released", n)
}

// drop forgets the handle of an entry already taken out of the tree and
// deletes it.
func (c *Cache) drop(e *Entry) {
	delete(c.handles, e.handle)
	c.release(e)
}

func (c *Cache) release(e *Entry) {
	if e.handle.IsZero() {
		return
	}
	e.release(c.device)
	c.stats.Releases++
}

func (c *Cache) checkOpen() {
	if debugChecks && c.closed {
		panic(fmt.Sprintf("texture: use of closed cache %q", c.name))
	}
}
