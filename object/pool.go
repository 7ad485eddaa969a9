package object

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/texcache"
)

// ID is the stable identity of an object. IDs are unique across all pools
// of the process and never reused; the zero ID names no object.
type ID uint64

var lastID atomic.Uint64

func nextID() ID { return ID(lastID.Add(1)) }

// slot is one arena cell. gen is bumped every time the cell is freed, so
// a (index, gen) pair names at most one object over the pool's life.
type slot struct {
	gen uint32
	obj any // *Texture or *Storage while live, nil when free
}

// Pool is a generation-tagged arena owning the identity and liveness of
// scene objects.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
	live  int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Len returns the number of live objects in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// alloc reserves a slot for obj and returns its header fields.
func (p *Pool) alloc(obj any) (index, gen uint32, id ID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id = nextID()

	if n := len(p.free); n > 0 {
		index = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		//nolint:gosec // G115: slot count is bounded by live objects
		index = uint32(len(p.slots))
		p.slots = append(p.slots, slot{})
	}
	p.slots[index].obj = obj
	p.live++
	return index, p.slots[index].gen, id
}

// release frees the slot if (index, gen) still names a live object.
// Returns false when the object was already gone.
func (p *Pool) release(index, gen uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.validLocked(index, gen) {
		return false
	}
	s := &p.slots[index]
	s.obj = nil
	s.gen++
	p.free = append(p.free, index)
	p.live--
	return true
}

// lookup returns the live object at (index, gen), or nil.
func (p *Pool) lookup(index, gen uint32) any {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.validLocked(index, gen) {
		return nil
	}
	return p.slots[index].obj
}

func (p *Pool) valid(index, gen uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.validLocked(index, gen)
}

func (p *Pool) validLocked(index, gen uint32) bool {
	if int(index) >= len(p.slots) {
		return false
	}
	s := p.slots[index]
	return s.obj != nil && s.gen == gen
}

// header is the part shared by every pooled object: identity, liveness,
// reference count and edit index.
type header struct {
	pool  *Pool
	index uint32
	gen   uint32
	id    ID
	refs  atomic.Int32
	edit  atomic.Uint32
}

func (h *header) init(p *Pool, obj any) {
	h.pool = p
	h.index, h.gen, h.id = p.alloc(obj)
	h.refs.Store(1)
	h.edit.Store(1)
}

// ID returns the object's stable identity.
func (h *header) ID() ID { return h.id }

// EditIndex returns the object's current edit index.
func (h *header) EditIndex() uint32 { return h.edit.Load() }

// Destroyed reports whether the object's reference count reached zero.
func (h *header) Destroyed() bool { return !h.pool.valid(h.index, h.gen) }

// Edited marks the object as mutated and returns the new edit index.
// Editing a destroyed object is a no-op that returns 0.
func (h *header) Edited() uint32 {
	if h.Destroyed() {
		return 0
	}
	return h.edit.Add(1)
}

// Retain adds a reference to the object.
func (h *header) Retain() {
	if h.Destroyed() {
		texcache.Logger().Warn("object: retain of destroyed object", "id", h.id)
		return
	}
	h.refs.Add(1)
}

// release drops one reference and reports whether it was the last one.
func (h *header) release() bool {
	if h.Destroyed() {
		texcache.Logger().Warn("object: release of destroyed object", "id", h.id)
		return false
	}
	if h.refs.Add(-1) > 0 {
		return false
	}
	return h.pool.release(h.index, h.gen)
}
