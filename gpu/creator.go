package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/texcache"
)

// destroyer is implemented by GPU textures that free their resources
// explicitly (gogpu.Texture does).
type destroyer interface {
	Destroy()
}

// CreatorDevice names textures made by a gpucontext.TextureCreator with
// handles, so they can be owned by the texture cache.
//
// CreatorDevice is safe for concurrent use, but the creator it wraps usually
// is not: call Upload and DeleteTexture from the goroutine owning the GPU
// context.
type CreatorDevice struct {
	creator gpucontext.TextureCreator

	mu       sync.RWMutex
	textures map[Handle]gpucontext.Texture
	next     Handle
}

// NewCreatorDevice wraps creator.
func NewCreatorDevice(creator gpucontext.TextureCreator) *CreatorDevice {
	return &CreatorDevice{
		creator:  creator,
		textures: make(map[Handle]gpucontext.Texture),
	}
}

// NewCreatorDeviceFromDrawer wraps the texture creator of drawer.
func NewCreatorDeviceFromDrawer(drawer gpucontext.TextureDrawer) *CreatorDevice {
	return NewCreatorDevice(drawer.TextureCreator())
}

// Upload creates a GPU texture from tightly packed RGBA pixels and returns
// a new handle naming it.
func (d *CreatorDevice) Upload(width, height int, rgba []byte) (Handle, error) {
	if d.creator == nil {
		return 0, ErrNilCreator
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	tex, err := d.creator.NewTextureFromRGBA(width, height, rgba)
	if err != nil {
		return 0, fmt.Errorf("gpu: create %dx%d texture: %w", width, height, err)
	}

	d.mu.Lock()
	d.next++
	h := d.next
	d.textures[h] = tex
	d.mu.Unlock()

	texcache.Logger().Debug("gpu: texture uploaded", "handle", h, "width", width, "height", height)
	return h, nil
}

// Texture returns the GPU texture named by h, for drawing with a
// gpucontext.TextureDrawer.
func (d *CreatorDevice) Texture(h Handle) (gpucontext.Texture, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tex, ok := d.textures[h]
	return tex, ok
}

// DeleteTexture forgets h and destroys its texture when the texture
// supports explicit destruction.
func (d *CreatorDevice) DeleteTexture(h Handle) {
	if h.IsZero() {
		return
	}

	d.mu.Lock()
	tex, ok := d.textures[h]
	delete(d.textures, h)
	d.mu.Unlock()

	if !ok {
		texcache.Logger().Warn("gpu: delete of unknown texture", "handle", h)
		return
	}
	if ds, ok := tex.(destroyer); ok {
		ds.Destroy()
	}
}

// IsTexture reports whether h names a live texture.
func (d *CreatorDevice) IsTexture(h Handle) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.textures[h]
	return ok
}

// Len returns the number of live textures.
func (d *CreatorDevice) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.textures)
}

var _ Device = (*CreatorDevice)(nil)
