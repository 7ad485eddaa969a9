package object

import "errors"

// Object errors.
var (
	// ErrDestroyed is returned when mutating an object whose reference
	// count already reached zero.
	ErrDestroyed = errors.New("object: object has been destroyed")

	// ErrNilImage is returned when replacing storage pixels with a nil image.
	ErrNilImage = errors.New("object: image is nil")

	// ErrInvalidDimensions is returned when storage dimensions are not positive.
	ErrInvalidDimensions = errors.New("object: invalid dimensions")
)
