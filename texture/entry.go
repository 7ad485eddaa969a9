package texture

import (
	"fmt"

	"github.com/gogpu/texcache/gpu"
	"github.com/gogpu/texcache/object"
)

// Entry is one GPU texture built for one scene texture at a point in time.
// Identity and edit-index snapshots never change; a stale entry is
// replaced, not updated.
//
// An entry owns its GPU handle. Once the entry leaves its cache the handle
// is deleted and Handle returns zero.
type Entry struct {
	weak        object.WeakRef
	key         object.ID
	textureEdit uint32
	storageEdit uint32
	handle      gpu.Handle
}

// newEntry snapshots the edit indices of tex and its current storage.
func newEntry(tex *object.Texture, h gpu.Handle) *Entry {
	return &Entry{
		weak:        tex.Weak(),
		key:         tex.ID(),
		textureEdit: tex.EditIndex(),
		storageEdit: tex.StorageEditIndex(),
		handle:      h,
	}
}

// Key returns the identity of the texture the entry was built for.
func (e *Entry) Key() object.ID { return e.key }

// Handle returns the GPU texture handle, or zero once the entry was removed.
func (e *Entry) Handle() gpu.Handle { return e.handle }

// TextureEditIndex returns the texture edit index captured at insertion.
func (e *Entry) TextureEditIndex() uint32 { return e.textureEdit }

// StorageEditIndex returns the storage edit index captured at insertion,
// 0 if the texture had no storage.
func (e *Entry) StorageEditIndex() uint32 { return e.storageEdit }

// Alive reports whether the texture the entry was built for still exists.
func (e *Entry) Alive() bool { return e.weak.Valid() }

// Texture returns the texture the entry was built for, if it still exists.
func (e *Entry) Texture() (*object.Texture, bool) { return e.weak.Texture() }

// fresh reports whether tex is unchanged since the entry was built.
func (e *Entry) fresh(tex *object.Texture) bool {
	return tex.EditIndex() == e.textureEdit && tex.StorageEditIndex() == e.storageEdit
}

// release deletes the GPU handle. Releasing an entry without a handle is a no-op.
func (e *Entry) release(dev gpu.Device) {
	h := e.handle
	if h.IsZero() {
		return
	}
	if debugChecks && !dev.IsTexture(h) {
		panic(fmt.Sprintf("texture: releasing %v which the device does not know", h))
	}
	dev.DeleteTexture(h)
	if debugChecks && dev.IsTexture(h) {
		panic(fmt.Sprintf("texture: %v still live after delete", h))
	}
	e.handle = 0
}

// String returns a string representation of the entry.
func (e *Entry) String() string {
	return fmt.Sprintf("Entry[key=%d %v edit=%d/%d]", e.key, e.handle, e.textureEdit, e.storageEdit)
}
