// Command texcachedemo walks a few frames of a two-window renderer through
// the texture cache using a software device.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/texcache"
	"github.com/gogpu/texcache/gpu"
	"github.com/gogpu/texcache/object"
	"github.com/gogpu/texcache/sharing"
	"github.com/gogpu/texcache/texture"
)

const (
	mainWindow  sharing.ContextID = 1
	toolWindow  sharing.ContextID = 2 // shares with mainWindow
	printWindow sharing.ContextID = 3 // own group
)

func main() {
	var (
		frames   = flag.Int("frames", 4, "number of frames to draw")
		count    = flag.Int("textures", 8, "number of scene textures")
		size     = flag.Int("size", 64, "texture edge length in pixels")
		budgetMB = flag.Int("budget", gpu.DefaultMaxMemoryMB, "device memory budget in MB")
		verbose  = flag.Bool("v", false, "log cache activity")
	)
	flag.Parse()

	if *verbose {
		texcache.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dev := gpu.NewSoftwareDevice(gpu.SoftwareDeviceConfig{MaxMemoryMB: *budgetMB})
	defer dev.Close()

	reg := sharing.NewRegistry()
	for _, c := range []struct{ ctx, shareWith sharing.ContextID }{
		{mainWindow, 0},
		{toolWindow, mainWindow},
		{printWindow, 0},
	} {
		if err := reg.RegisterContext(c.ctx, c.shareWith); err != nil {
			log.Fatalf("Failed to register context %d: %v", c.ctx, err)
		}
	}
	mgr := texture.NewManager(reg, dev)

	pool := object.NewPool()
	texs := makeTextures(pool, *count, *size)

	for frame := range *frames {
		mutate(frame, texs)
		for _, ctx := range []sharing.ContextID{mainWindow, toolWindow, printWindow} {
			if err := drawFrame(mgr, dev, ctx, texs); err != nil {
				log.Fatalf("Frame %d, context %d: %v", frame, ctx, err)
			}
		}
		for _, ctx := range []sharing.ContextID{mainWindow, printWindow} {
			if c, ok := mgr.FindCache(ctx); ok {
				c.EvictUnreferenced()
			}
		}
		report(frame, mgr, dev)
	}

	reg.Close()
	log.Printf("Registry closed: %s\n", dev.Stats())
}

func makeTextures(pool *object.Pool, n, size int) []*object.Texture {
	texs := make([]*object.Texture, n)
	for i := range texs {
		kind := object.KindPixmap
		if i%3 == 0 {
			kind = object.KindMipmap
		}
		s := pool.NewStorage(size, size)
		//nolint:gosec // G115: red channel wraps
		fill(s.Image(), color.RGBA{R: uint8(i * 31), G: 128, B: 255, A: 255})
		texs[i] = pool.NewTexture(kind, s)
		s.Release()
	}
	return texs
}

// mutate changes the scene between frames: frame 1 repaints a storage,
// frame 2 swaps one and destroys the last texture.
func mutate(frame int, texs []*object.Texture) {
	switch frame {
	case 1:
		if s := texs[0].Storage(); s != nil {
			fill(s.Image(), color.RGBA{R: 255, A: 255})
			s.Edited()
		}
	case 2:
		if len(texs) > 1 {
			src := image.NewRGBA(image.Rect(0, 0, 16, 16))
			fill(src, color.RGBA{G: 255, A: 255})
			if s := texs[1].Storage(); s != nil {
				if err := s.Replace(src); err != nil {
					log.Printf("Replace failed: %v\n", err)
				}
			}
		}
		last := texs[len(texs)-1]
		if !last.Destroyed() {
			last.Release()
		}
	}
}

func drawFrame(mgr *texture.Manager, dev *gpu.SoftwareDevice, ctx sharing.ContextID, texs []*object.Texture) error {
	c := mgr.GetOrCreateCache(ctx)
	for _, tex := range texs {
		if tex.Destroyed() {
			continue
		}
		h, err := texture.Resolve(c, tex, func() (gpu.Handle, error) {
			return dev.CreateTexture(descriptorFor(tex))
		})
		if err != nil {
			if h.IsZero() {
				return err
			}
			// Drawn uncached; the handle is ours to delete.
			dev.DeleteTexture(h)
		}
	}
	return nil
}

func descriptorFor(tex *object.Texture) gpu.TextureDescriptor {
	var b image.Rectangle
	levels := 1
	if s := tex.Storage(); s != nil {
		b = s.Bounds()
		if tex.Kind() == object.KindMipmap {
			levels = max(s.Mipmaps().NumLevels(), 1)
		}
	}
	return gpu.TextureDescriptor{
		Label:         fmt.Sprintf("scene-%d", tex.ID()),
		Width:         max(b.Dx(), 1),
		Height:        max(b.Dy(), 1),
		MipLevelCount: levels,
	}
}

func report(frame int, mgr *texture.Manager, dev *gpu.SoftwareDevice) {
	for _, ctx := range []sharing.ContextID{mainWindow, printWindow} {
		c, ok := mgr.FindCache(ctx)
		if !ok {
			continue
		}
		s := c.Stats()
		log.Printf("Frame %d %s: %d entries, %d hits, %d misses, %d stale, %d unreferenced\n",
			frame, c.Name(), s.Len, s.Hits, s.Misses, s.StaleEvictions, s.UnreferencedEvictions)
	}
	log.Printf("Frame %d device: %s\n", frame, dev.Stats())
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
