// Package texture caches the GPU textures built for scene texture objects,
// one cache per group of GPU contexts sharing texture memory.
//
// # Cache
//
// A [Cache] maps the identity of an [object.Texture] to the [gpu.Handle] of
// the GPU texture built from it. Each [Entry] remembers the edit index of
// the texture and of its image storage at the time it was inserted:
//
//	if e := cache.Lookup(tex); e != nil {
//	    bind(e.Handle()) // fresh
//	} else {
//	    h := upload(tex) // missing or stale
//	    cache.Insert(tex, h)
//	}
//
// Lookup validates and evicts in one step: if either edit index moved, the
// entry is removed, its handle deleted, and Lookup reports a miss. Entries
// observe their texture through a weak reference, so the cache never keeps
// a scene object alive; [Cache.EvictUnreferenced] drops entries whose
// texture has been destroyed.
//
// # Sharing groups
//
// A [Manager] keeps one cache per sharing group in a [sharing.Registry]
// under [CacheTag]. [Manager.GetOrCreateCache] is the only way caches are
// created; every context of a group receives the same cache.
//
// # Thread Safety
//
// Cache and Entry are not safe for concurrent use. A cache must be used
// from the goroutine owning its GPU context group, which is what the
// underlying graphics APIs require anyway. Caches of different groups are
// independent. Manager is safe for concurrent use.
//
// # Debug checks
//
// Building with the texcachedebug tag turns on assertions for misuse that
// ownership rules otherwise rule out: deleting a handle the device does not
// know, a handle surviving its deletion, or using a closed cache.
package texture
