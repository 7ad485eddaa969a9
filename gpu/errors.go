package gpu

import "errors"

// Device errors.
var (
	// ErrMemoryBudgetExceeded is returned when an allocation would exceed the budget.
	ErrMemoryBudgetExceeded = errors.New("gpu: memory budget exceeded")

	// ErrDeviceClosed is returned when operating on a closed device.
	ErrDeviceClosed = errors.New("gpu: device closed")

	// ErrInvalidDimensions is returned when texture dimensions are not positive.
	ErrInvalidDimensions = errors.New("gpu: invalid texture dimensions")

	// ErrNilCreator is returned when a CreatorDevice has no texture creator.
	ErrNilCreator = errors.New("gpu: texture creator is nil")
)
