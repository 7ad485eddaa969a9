package sharing

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/texcache"
)

// ContextID identifies a GPU context. The zero ContextID names no context.
type ContextID uint64

// Tag distinguishes the kinds of cache kept per sharing group.
type Tag uint32

// FourCC builds a Tag from four characters, most significant first.
func FourCC(a, b, c, d byte) Tag {
	return Tag(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// String returns the four characters of the tag.
func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// SharedCache is a cache kept per sharing group. Close releases the GPU
// resources it owns; it is called once, when the group is torn down.
type SharedCache interface {
	Close()
}

// group is one set of contexts sharing GPU memory.
type group struct {
	id       uint64
	contexts map[ContextID]struct{}
	caches   map[Tag]SharedCache
	device   gpucontext.Device // set when formed through RegisterProvider
}

// Registry maps GPU contexts to sharing groups and groups to their caches.
//
// Registry is safe for concurrent use. The caches it hands out are not
// locked by the registry.
type Registry struct {
	mu        sync.Mutex
	contexts  map[ContextID]*group
	devices   map[gpucontext.Device]*group
	groups    int
	nextGroup uint64
	closed    bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		contexts: make(map[ContextID]*group),
		devices:  make(map[gpucontext.Device]*group),
	}
}

// RegisterContext records ctx. If shareWith is zero, ctx starts a new
// sharing group; otherwise it joins the group of shareWith.
func (r *Registry) RegisterContext(ctx, shareWith ContextID) error {
	if ctx == 0 {
		return ErrInvalidContext
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}
	if _, ok := r.contexts[ctx]; ok {
		return fmt.Errorf("%w: %d", ErrContextExists, ctx)
	}

	if shareWith == 0 {
		r.newGroupLocked(ctx, nil)
		return nil
	}

	g, ok := r.contexts[shareWith]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownContext, shareWith)
	}
	g.contexts[ctx] = struct{}{}
	r.contexts[ctx] = g
	return nil
}

// RegisterProvider records ctx in the sharing group of the device returned
// by provider. Contexts whose providers return the same device share one
// group. A provider without a device (headless) gets a group of its own.
func (r *Registry) RegisterProvider(ctx ContextID, provider gpucontext.DeviceProvider) error {
	if ctx == 0 {
		return ErrInvalidContext
	}

	var dev gpucontext.Device
	if provider != nil {
		dev = provider.Device()
	}
	if dev != nil && !reflect.TypeOf(dev).Comparable() {
		return fmt.Errorf("%w: device %T", ErrNotComparable, dev)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}
	if _, ok := r.contexts[ctx]; ok {
		return fmt.Errorf("%w: %d", ErrContextExists, ctx)
	}

	if dev != nil {
		if g, ok := r.devices[dev]; ok {
			g.contexts[ctx] = struct{}{}
			r.contexts[ctx] = g
			return nil
		}
	}
	r.newGroupLocked(ctx, dev)
	return nil
}

// UnregisterContext removes ctx. When ctx was the last context of its
// group, every cache of the group is closed and the group is discarded.
func (r *Registry) UnregisterContext(ctx ContextID) error {
	r.mu.Lock()

	g, ok := r.contexts[ctx]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownContext, ctx)
	}
	delete(r.contexts, ctx)
	delete(g.contexts, ctx)

	var caches []SharedCache
	if len(g.contexts) == 0 {
		caches = r.dropGroupLocked(g)
	}
	r.mu.Unlock()

	// Close outside the lock: cache teardown calls into GPU devices.
	closeCaches(g.id, caches)
	return nil
}

// GetCache returns the cache stored under tag for the group of ctx,
// or nil if there is none.
func (r *Registry) GetCache(ctx ContextID, tag Tag) SharedCache {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.contexts[ctx]
	if !ok {
		return nil
	}
	return g.caches[tag]
}

// AddCache stores cache under tag for the group of ctx. A context that was
// never registered becomes the only member of a new group.
func (r *Registry) AddCache(ctx ContextID, tag Tag, cache SharedCache) error {
	if ctx == 0 {
		return ErrInvalidContext
	}
	if cache == nil {
		return ErrNilCache
	}
	if !reflect.TypeOf(cache).Comparable() {
		return fmt.Errorf("%w: cache %T", ErrNotComparable, cache)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	g, ok := r.contexts[ctx]
	if !ok {
		g = r.newGroupLocked(ctx, nil)
	}
	if _, ok := g.caches[tag]; ok {
		return fmt.Errorf("%w: %s in group %d", ErrTagInUse, tag, g.id)
	}
	g.caches[tag] = cache
	return nil
}

// IsCacheValid reports whether cache is currently stored under tag in
// some live group.
func (r *Registry) IsCacheValid(cache SharedCache, tag Tag) bool {
	if cache == nil || !reflect.TypeOf(cache).Comparable() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.contexts {
		if g.caches[tag] == cache {
			return true
		}
	}
	return false
}

// SameGroup reports whether a and b are registered in one sharing group.
func (r *Registry) SameGroup(a, b ContextID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ga, ok := r.contexts[a]
	if !ok {
		return false
	}
	return r.contexts[b] == ga
}

// Contexts returns the contexts sharing a group with ctx, including ctx,
// in ascending order. It returns nil for an unknown context.
func (r *Registry) Contexts(ctx ContextID) []ContextID {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.contexts[ctx]
	if !ok {
		return nil
	}
	result := make([]ContextID, 0, len(g.contexts))
	for c := range g.contexts {
		result = append(result, c)
	}
	slices.Sort(result)
	return result
}

// Len returns the number of live sharing groups.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groups
}

// Close tears down every group, closing all caches. The registry rejects
// registrations afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true

	seen := make(map[*group]bool)
	var dropped []*group
	for _, g := range r.contexts {
		if !seen[g] {
			seen[g] = true
			dropped = append(dropped, g)
		}
	}
	teardown := make([][]SharedCache, len(dropped))
	for i, g := range dropped {
		teardown[i] = r.dropGroupLocked(g)
	}
	r.contexts = make(map[ContextID]*group)
	r.mu.Unlock()

	for i, g := range dropped {
		closeCaches(g.id, teardown[i])
	}
}

// newGroupLocked creates a group holding only ctx. Caller must hold mu.
func (r *Registry) newGroupLocked(ctx ContextID, dev gpucontext.Device) *group {
	r.nextGroup++
	g := &group{
		id:       r.nextGroup,
		contexts: map[ContextID]struct{}{ctx: {}},
		caches:   make(map[Tag]SharedCache),
		device:   dev,
	}
	r.contexts[ctx] = g
	if dev != nil {
		r.devices[dev] = g
	}
	r.groups++

	texcache.Logger().Info("sharing: group created", "group", g.id, "context", ctx)
	return g
}

// dropGroupLocked forgets g and returns its caches for closing.
// Caller must hold mu.
func (r *Registry) dropGroupLocked(g *group) []SharedCache {
	if g.device != nil {
		delete(r.devices, g.device)
	}
	r.groups--

	caches := make([]SharedCache, 0, len(g.caches))
	for _, c := range g.caches {
		caches = append(caches, c)
	}
	g.caches = nil
	return caches
}

func closeCaches(groupID uint64, caches []SharedCache) {
	if caches == nil {
		return
	}
	for _, c := range caches {
		c.Close()
	}
	texcache.Logger().Info("sharing: group torn down", "group", groupID, "caches", len(caches))
}
