// Package sharing tracks which GPU contexts share GPU memory and keeps the
// per-group caches those contexts use.
//
// Contexts that share GPU-resident objects (textures, buffers) form a
// sharing group. Each group can hold one cache per [Tag], so a texture cache
// and, say, a vertex-buffer cache coexist under the same grouping. When the
// last context of a group is unregistered, every cache in the group is
// closed.
//
//	reg := sharing.NewRegistry()
//	_ = reg.RegisterContext(1, 0) // context 1 starts a group
//	_ = reg.RegisterContext(2, 1) // context 2 shares with 1
//	_ = reg.AddCache(1, tag, c)
//	reg.GetCache(2, tag) == c // true
//
// A Registry is an explicit value created at device initialization and
// closed at shutdown; there is no process-wide instance.
package sharing
