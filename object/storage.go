package object

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/texcache"
)

// Storage is reference-counted image storage holding the raw pixels a
// texture is built from.
type Storage struct {
	header

	mu  sync.RWMutex
	img *image.RGBA
}

// NewStorage creates transparent storage of the given size.
// Non-positive dimensions produce empty storage.
func (p *Pool) NewStorage(width, height int) *Storage {
	s := &Storage{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
	s.init(p, s)
	return s
}

// NewStorageFromImage creates storage holding a copy of src converted to RGBA.
func (p *Pool) NewStorageFromImage(src image.Image) (*Storage, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	img, err := toRGBA(src)
	if err != nil {
		return nil, err
	}
	s := &Storage{img: img}
	s.init(p, s)
	return s, nil
}

// Bounds returns the storage image bounds.
func (s *Storage) Bounds() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img.Bounds()
}

// Image returns the storage pixels. Callers that modify the returned image
// must call Edited afterwards.
func (s *Storage) Image() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// Replace redraws the storage from src, resizing it to src's bounds,
// and marks the storage edited.
func (s *Storage) Replace(src image.Image) error {
	if src == nil {
		return ErrNilImage
	}
	if s.Destroyed() {
		return fmt.Errorf("%w: storage %d", ErrDestroyed, s.id)
	}
	img, err := toRGBA(src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.img = img
	s.mu.Unlock()

	s.Edited()
	return nil
}

// Pixels returns a copy of the storage as tightly packed RGBA rows.
func (s *Storage) Pixels() (width, height int, rgba []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.img.Bounds()
	width, height = b.Dx(), b.Dy()
	rgba = make([]byte, 4*width*height)
	for y := range height {
		off := s.img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(rgba[4*width*y:4*width*(y+1)], s.img.Pix[off:off+4*width])
	}
	return width, height, rgba
}

// Release drops one reference. The last release destroys the storage.
func (s *Storage) Release() {
	if !s.release() {
		return
	}
	texcache.Logger().Debug("object: storage destroyed", "id", s.id)
}

// toRGBA copies src into a new RGBA image with the origin at (0, 0).
func toRGBA(src image.Image) (*image.RGBA, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}
