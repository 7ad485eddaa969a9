package object

import (
	"fmt"
	"sync"

	"github.com/gogpu/texcache"
)

// Kind identifies how a texture samples its storage.
type Kind uint8

const (
	// KindPixmap is a single-level texture.
	KindPixmap Kind = iota

	// KindMipmap is a texture whose storage carries a mip chain.
	KindMipmap
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPixmap:
		return "Pixmap"
	case KindMipmap:
		return "Mipmap"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Texture is a reference-counted scene texture. It references the image
// storage holding its pixels; the reference itself can change over the
// texture's life.
type Texture struct {
	header
	kind Kind

	mu      sync.RWMutex
	storage *Storage
}

// NewTexture creates a texture of the given kind backed by s.
// The texture takes its own reference to s; s may be nil.
func (p *Pool) NewTexture(kind Kind, s *Storage) *Texture {
	t := &Texture{kind: kind}
	t.init(p, t)
	if s != nil {
		s.Retain()
		t.storage = s
	}
	return t
}

// Kind returns the texture kind.
func (t *Texture) Kind() Kind { return t.kind }

// Storage returns the image storage currently backing the texture,
// or nil if it has none or the texture was destroyed.
func (t *Texture) Storage() *Storage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.storage
}

// StorageEditIndex returns the edit index of the current backing storage,
// or 0 when there is none.
func (t *Texture) StorageEditIndex() uint32 {
	s := t.Storage()
	if s == nil {
		return 0
	}
	return s.EditIndex()
}

// SetStorage replaces the backing storage and marks the texture edited.
// The texture retains s and releases the storage it held before.
func (t *Texture) SetStorage(s *Storage) error {
	if t.Destroyed() {
		return fmt.Errorf("%w: texture %d", ErrDestroyed, t.id)
	}
	if s != nil {
		s.Retain()
	}

	t.mu.Lock()
	old := t.storage
	t.storage = s
	t.mu.Unlock()

	if old != nil {
		old.Release()
	}
	t.Edited()
	return nil
}

// Weak returns a weak reference to the texture.
func (t *Texture) Weak() WeakRef {
	return WeakRef{pool: t.pool, index: t.index, gen: t.gen, id: t.id}
}

// Release drops one reference. The last release destroys the texture and
// releases its storage.
func (t *Texture) Release() {
	if !t.release() {
		return
	}

	t.mu.Lock()
	s := t.storage
	t.storage = nil
	t.mu.Unlock()

	if s != nil {
		s.Release()
	}
	texcache.Logger().Debug("object: texture destroyed", "id", t.id, "kind", t.kind)
}

// String returns a string representation of the texture.
func (t *Texture) String() string {
	status := "live"
	if t.Destroyed() {
		status = "destroyed"
	}
	return fmt.Sprintf("Texture[%d %s edit=%d %s]", t.id, t.kind, t.EditIndex(), status)
}
