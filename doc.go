// Package texcache caches GPU textures built from scene texture objects.
//
// # Overview
//
// A renderer uploads the pixels of a scene texture to the GPU once and
// reuses the result for as long as neither the texture nor its image
// storage changes. texcache keeps that mapping per group of GPU contexts
// sharing texture memory, detects staleness through edit indices, and
// deletes GPU textures exactly once when their entry goes away.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/texcache/gpu"
//	    "github.com/gogpu/texcache/sharing"
//	    "github.com/gogpu/texcache/texture"
//	)
//
//	reg := sharing.NewRegistry()
//	defer reg.Close()
//	mgr := texture.NewManager(reg, dev)
//
//	cache := mgr.GetOrCreateCache(ctx)
//	h, err := texture.Resolve(cache, tex, func() (gpu.Handle, error) {
//	    return upload(tex)
//	})
//
// # Architecture
//
// The module is organized into:
//   - object: reference-counted textures and storage with weak references
//   - gpu: texture handles and devices that delete them
//   - sharing: registry of context sharing groups and their caches
//   - texture: the cache itself and its per-group manager
//
// # Logging
//
// All packages log through [Logger]. Logging is silent until [SetLogger]
// installs a logger.
package texcache

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
