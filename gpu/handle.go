package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Handle is an opaque GPU texture name. The zero Handle names nothing.
type Handle uint32

// IsZero reports whether h names no texture.
func (h Handle) IsZero() bool { return h == 0 }

// String returns a string representation of the handle.
func (h Handle) String() string {
	return fmt.Sprintf("tex#%d", uint32(h))
}

// Device releases GPU textures and answers whether a handle is live.
// Methods must be called from the goroutine owning the device's context
// group.
type Device interface {
	// DeleteTexture releases the texture named by h. Deleting the zero
	// handle is a no-op.
	DeleteTexture(h Handle)

	// IsTexture reports whether h names a live texture.
	IsTexture(h Handle) bool
}

// TextureDescriptor describes a texture to allocate.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// MipLevelCount is the number of mip levels. Values below 1 mean 1.
	MipLevelCount int

	// Format is the texture pixel format. Undefined means RGBA8Unorm.
	Format gputypes.TextureFormat
}

// SizeBytes returns the memory needed by the texture, including its mip chain.
func (d TextureDescriptor) SizeBytes() uint64 {
	levels := max(d.MipLevelCount, 1)
	bpp := BytesPerPixel(d.format())

	var total uint64
	w, h := d.Width, d.Height
	for range levels {
		//nolint:gosec // G115: dimensions validated positive before use
		total += uint64(w) * uint64(h) * uint64(bpp)
		if w == 1 && h == 1 {
			break
		}
		w, h = max(w/2, 1), max(h/2, 1)
	}
	return total
}

func (d TextureDescriptor) format() gputypes.TextureFormat {
	if d.Format == gputypes.TextureFormatUndefined {
		return gputypes.TextureFormatRGBA8Unorm
	}
	return d.Format
}

// BytesPerPixel returns the size of one texel of an uncompressed color or
// depth format. Unknown formats count as 4 bytes.
func BytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm, gputypes.TextureFormatR8Snorm,
		gputypes.TextureFormatR8Uint, gputypes.TextureFormatR8Sint,
		gputypes.TextureFormatStencil8:
		return 1
	case gputypes.TextureFormatR16Unorm, gputypes.TextureFormatR16Snorm,
		gputypes.TextureFormatR16Uint, gputypes.TextureFormatR16Sint,
		gputypes.TextureFormatR16Float,
		gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatRG8Snorm,
		gputypes.TextureFormatRG8Uint, gputypes.TextureFormatRG8Sint,
		gputypes.TextureFormatDepth16Unorm:
		return 2
	case gputypes.TextureFormatRG32Float, gputypes.TextureFormatRG32Uint,
		gputypes.TextureFormatRG32Sint,
		gputypes.TextureFormatRGBA16Unorm, gputypes.TextureFormatRGBA16Snorm,
		gputypes.TextureFormatRGBA16Uint, gputypes.TextureFormatRGBA16Sint,
		gputypes.TextureFormatRGBA16Float:
		return 8
	case gputypes.TextureFormatRGBA32Float, gputypes.TextureFormatRGBA32Uint,
		gputypes.TextureFormatRGBA32Sint:
		return 16
	default:
		return 4
	}
}
