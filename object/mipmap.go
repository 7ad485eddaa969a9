package object

import (
	"image"
	"math"
)

// MipChain holds downscaled versions of a storage image.
//
// Level 0 is a snapshot of the storage pixels; each further level is half
// the size of the previous one until the larger dimension reaches 1 pixel.
type MipChain struct {
	levels []*image.RGBA
}

// Mipmaps builds the mip chain for the current storage pixels using a 2x2
// box filter. It returns nil for empty storage.
//
// The chain is a copy: editing the storage afterwards does not change it.
func (s *Storage) Mipmaps() *MipChain {
	s.mu.RLock()
	src := s.img
	s.mu.RUnlock()
	return GenerateMipmaps(src)
}

// GenerateMipmaps builds a mip chain from src. Level 0 is a copy of src.
// Returns nil if src is nil or empty.
func GenerateMipmaps(src *image.RGBA) *MipChain {
	if src == nil || src.Bounds().Empty() {
		return nil
	}

	b := src.Bounds()
	maxDim := max(b.Dx(), b.Dy())
	numLevels := 1 + int(math.Floor(math.Log2(float64(maxDim))))

	base := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		copy(base.Pix[y*base.Stride:y*base.Stride+4*b.Dx()], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
	}

	chain := &MipChain{levels: make([]*image.RGBA, numLevels)}
	chain.levels[0] = base
	for i := 1; i < numLevels; i++ {
		chain.levels[i] = downsample(chain.levels[i-1])
	}
	return chain
}

// downsample returns a half-size copy of src, averaging 2x2 blocks.
// Odd edges reuse the last row or column.
func downsample(src *image.RGBA) *image.RGBA {
	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	dstW := max(1, srcW/2)
	dstH := max(1, srcH/2)
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	for dy := range dstH {
		for dx := range dstW {
			sx, sy := dx*2, dy*2
			p0 := src.PixOffset(sx, sy)
			p1 := src.PixOffset(min(sx+1, srcW-1), sy)
			p2 := src.PixOffset(sx, min(sy+1, srcH-1))
			p3 := src.PixOffset(min(sx+1, srcW-1), min(sy+1, srcH-1))

			d := dst.PixOffset(dx, dy)
			for c := range 4 {
				sum := uint16(src.Pix[p0+c]) + uint16(src.Pix[p1+c]) +
					uint16(src.Pix[p2+c]) + uint16(src.Pix[p3+c])
				dst.Pix[d+c] = byte(sum / 4)
			}
		}
	}
	return dst
}

// Level returns the image at level n, or nil if n is out of range.
func (m *MipChain) Level(n int) *image.RGBA {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// NumLevels returns the number of levels, 0 for a nil chain.
func (m *MipChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}

// LevelForScale returns the level to sample when drawing at scale, the
// ratio of displayed size to original size. The level is floor(-log2(scale))
// clamped to the chain.
func (m *MipChain) LevelForScale(scale float64) *image.RGBA {
	if m == nil || len(m.levels) == 0 {
		return nil
	}
	if scale >= 1.0 {
		return m.levels[0]
	}
	level := int(math.Floor(-math.Log2(scale)))
	level = min(max(level, 0), len(m.levels)-1)
	return m.levels[level]
}
