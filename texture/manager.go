package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/texcache"
	"github.com/gogpu/texcache/gpu"
	"github.com/gogpu/texcache/sharing"
)

// CacheTag is the sharing-group tag texture caches are stored under.
const CacheTag sharing.Tag = 't'<<24 | 'x'<<16 | 'c'<<8 | 'k'

// Manager hands out one texture cache per sharing group.
//
// Manager is safe for concurrent use; the caches it returns are not.
type Manager struct {
	registry *sharing.Registry
	device   gpu.Device
	opts     []Option
}

// NewManager creates a manager storing caches in registry. Caches delete
// their handles through device and are created with opts.
func NewManager(registry *sharing.Registry, device gpu.Device, opts ...Option) *Manager {
	return &Manager{
		registry: registry,
		device:   device,
		opts:     opts,
	}
}

// Registry returns the sharing registry caches are stored in.
func (m *Manager) Registry() *sharing.Registry { return m.registry }

// Device returns the device new caches delete handles through.
func (m *Manager) Device() gpu.Device { return m.device }

// GetOrCreateCache returns the texture cache of ctx's sharing group,
// creating it on first use. It returns nil if the registry refuses the
// cache; callers then render without caching.
func (m *Manager) GetOrCreateCache(ctx sharing.ContextID) *Cache {
	if c, ok := m.FindCache(ctx); ok {
		return c
	}

	c := NewCache(m.device, m.cacheOptions(ctx)...)
	err := m.registry.AddCache(ctx, CacheTag, c)
	if err == nil {
		return c
	}
	c.Close()

	// Another goroutine created the group's cache first.
	if errors.Is(err, sharing.ErrTagInUse) {
		if existing, ok := m.FindCache(ctx); ok {
			return existing
		}
	}
	texcache.Logger().Warn("texture: cache not registered", "context", ctx, "err", err)
	return nil
}

// FindCache returns the texture cache of ctx's sharing group without
// creating one.
func (m *Manager) FindCache(ctx sharing.ContextID) (*Cache, bool) {
	shared := m.registry.GetCache(ctx, CacheTag)
	if shared == nil {
		return nil, false
	}
	c, ok := shared.(*Cache)
	if !ok {
		texcache.Logger().Warn("texture: foreign cache under texture tag",
			"context", ctx, "type", fmt.Sprintf("%T", shared))
		return nil, false
	}
	return c, true
}

func (m *Manager) cacheOptions(ctx sharing.ContextID) []Option {
	opts := make([]Option, 0, len(m.opts)+1)
	opts = append(opts, WithName(fmt.Sprintf("context-%d", ctx)))
	return append(opts, m.opts...)
}

var _ sharing.SharedCache = (*Cache)(nil)
