package object

// WeakRef observes a texture without keeping it alive. Once the texture is
// destroyed the reference reads as invalid; it never dangles.
//
// The zero WeakRef is invalid.
type WeakRef struct {
	pool  *Pool
	index uint32
	gen   uint32
	id    ID
}

// Valid reports whether the referenced texture is still alive.
func (w WeakRef) Valid() bool {
	return w.pool != nil && w.pool.valid(w.index, w.gen)
}

// ID returns the identity of the referenced texture. It stays meaningful
// after the texture is destroyed.
func (w WeakRef) ID() ID { return w.id }

// Texture returns the referenced texture if it is still alive.
// The caller does not receive a reference; call Retain to keep it.
func (w WeakRef) Texture() (*Texture, bool) {
	if w.pool == nil {
		return nil, false
	}
	t, ok := w.pool.lookup(w.index, w.gen).(*Texture)
	return t, ok
}
