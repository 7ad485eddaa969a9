// Package object provides the reference-counted scene objects consumed by
// the texture cache: textures, the image storage backing them, and weak
// references that observe a texture without keeping it alive.
//
// # Identity and edit indices
//
// Every object receives a stable [ID] from its [Pool] when it is created.
// IDs are never reused, so they stay meaningful as sort keys after the
// object is gone. Every object also carries an edit index that starts at 1
// and grows by one on each mutation; an unchanged edit index means unchanged
// content.
//
// # Lifetime
//
// Objects start with one reference. [Texture.Retain] and [Texture.Release]
// adjust the count and the object is destroyed when it reaches zero. Objects
// live in generation-tagged slots of their pool: destroying an object bumps
// the slot generation, which is how a [WeakRef] learns of the death in O(1)
// without holding a pointer to the object.
//
//	pool := object.NewPool()
//	img := pool.NewStorage(64, 64)
//	tex := pool.NewTexture(object.KindPixmap, img)
//	img.Release() // tex holds its own reference
//
//	weak := tex.Weak()
//	tex.Release()
//	weak.Valid() // false
package object
