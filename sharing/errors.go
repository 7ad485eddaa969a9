package sharing

import "errors"

// Registry errors.
var (
	// ErrInvalidContext is returned for the zero ContextID.
	ErrInvalidContext = errors.New("sharing: invalid context id")

	// ErrUnknownContext is returned when a context was never registered.
	ErrUnknownContext = errors.New("sharing: unknown context")

	// ErrContextExists is returned when registering a context twice.
	ErrContextExists = errors.New("sharing: context already registered")

	// ErrNilCache is returned when adding a nil cache.
	ErrNilCache = errors.New("sharing: cache is nil")

	// ErrTagInUse is returned when a group already holds a cache under a tag.
	ErrTagInUse = errors.New("sharing: tag already in use")

	// ErrNotComparable is returned for caches or devices that cannot be
	// used as identity keys (they must be pointers or other comparable values).
	ErrNotComparable = errors.New("sharing: value is not comparable")

	// ErrRegistryClosed is returned when operating on a closed registry.
	ErrRegistryClosed = errors.New("sharing: registry closed")
)
