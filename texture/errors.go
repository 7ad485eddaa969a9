package texture

import "errors"

// Cache errors.
var (
	// ErrCacheClosed is returned when inserting into a closed cache.
	ErrCacheClosed = errors.New("texture: cache closed")

	// ErrNilTexture is returned when the texture object is nil.
	ErrNilTexture = errors.New("texture: texture object is nil")

	// ErrZeroHandle is returned when inserting the zero GPU handle.
	ErrZeroHandle = errors.New("texture: zero gpu handle")

	// ErrHandleInUse is returned when a handle is already owned by an entry.
	ErrHandleInUse = errors.New("texture: gpu handle already owned by an entry")

	// ErrNoCache is returned by Resolve when there is no cache to insert into.
	ErrNoCache = errors.New("texture: no cache")

	// ErrNoStorage is returned when uploading a texture without storage.
	ErrNoStorage = errors.New("texture: texture has no storage")
)
