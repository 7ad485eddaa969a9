//go:build !texcachedebug

package texture

import (
	"testing"

	"github.com/gogpu/texcache/gpu"
	"github.com/gogpu/texcache/object"
)

type nopDevice struct{}

func (nopDevice) DeleteTexture(gpu.Handle)  {}
func (nopDevice) IsTexture(gpu.Handle) bool { return true }

func fillCache(b *testing.B, p *object.Pool, n int) (*Cache, []*object.Texture) {
	b.Helper()
	c := NewCache(nopDevice{})
	texs := make([]*object.Texture, n)
	for i := range texs {
		texs[i] = p.NewTexture(object.KindPixmap, nil)
		//nolint:gosec // G115: n is small
		if _, err := c.Insert(texs[i], gpu.Handle(i+1)); err != nil {
			b.Fatal(err)
		}
	}
	return c, texs
}

func BenchmarkLookupHit(b *testing.B) {
	c, texs := fillCache(b, object.NewPool(), 1024)
	i := 0
	for b.Loop() {
		c.Lookup(texs[i&1023])
		i++
	}
}

func BenchmarkLookupMiss(b *testing.B) {
	p := object.NewPool()
	c, _ := fillCache(b, p, 1024)
	missing := p.NewTexture(object.KindPixmap, nil)
	for b.Loop() {
		c.Lookup(missing)
	}
}

func BenchmarkInsertReplace(b *testing.B) {
	c, texs := fillCache(b, object.NewPool(), 1024)
	h := gpu.Handle(1 << 20)
	i := 0
	for b.Loop() {
		h++
		if _, err := c.Insert(texs[i&1023], h); err != nil {
			b.Fatal(err)
		}
		i++
	}
}

func BenchmarkEvictUnreferenced(b *testing.B) {
	c, _ := fillCache(b, object.NewPool(), 1024)
	for b.Loop() {
		c.EvictUnreferenced()
	}
}
