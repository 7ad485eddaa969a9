package texture

import (
	"fmt"

	"github.com/gogpu/texcache/gpu"
	"github.com/gogpu/texcache/object"
)

// BuildFunc builds a GPU texture for a scene texture and returns its handle.
type BuildFunc func() (gpu.Handle, error)

// Resolve returns the GPU texture to draw tex with. A fresh cached entry is
// used as is; otherwise build is called and the result inserted into c.
//
// If build fails, Resolve returns a zero handle and the error. If the new
// handle cannot be cached (c is nil or Insert fails), Resolve returns the
// handle together with the error: the caller may still draw with it and
// must delete it afterwards.
func Resolve(c *Cache, tex *object.Texture, build BuildFunc) (gpu.Handle, error) {
	if c != nil {
		if e := c.Lookup(tex); e != nil {
			return e.Handle(), nil
		}
	}

	h, err := build()
	if err != nil {
		return 0, fmt.Errorf("texture: build: %w", err)
	}
	if c == nil {
		return h, ErrNoCache
	}
	if _, err := c.Insert(tex, h); err != nil {
		return h, err
	}
	return h, nil
}

// UploadFunc returns a BuildFunc that uploads the current storage pixels of
// tex through dev.
//
// gpucontext.TextureCreator takes a single level, so only level 0 is
// uploaded, for mipmap textures too; the creator's texture samples without
// a mip chain.
func UploadFunc(dev *gpu.CreatorDevice, tex *object.Texture) BuildFunc {
	return func() (gpu.Handle, error) {
		s := tex.Storage()
		if s == nil {
			return 0, fmt.Errorf("texture %d: %w", tex.ID(), ErrNoStorage)
		}
		return dev.Upload(s.Pixels())
	}
}
