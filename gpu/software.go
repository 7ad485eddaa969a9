package gpu

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/texcache"
)

// Default memory limits.
const (
	// DefaultMaxMemoryMB is the default GPU memory budget (256 MB).
	DefaultMaxMemoryMB = 256

	// MinMemoryMB is the minimum allowed memory budget (16 MB).
	MinMemoryMB = 16
)

// MemoryStats contains device memory usage statistics.
type MemoryStats struct {
	// TotalBytes is the total memory budget in bytes.
	TotalBytes uint64

	// UsedBytes is the currently allocated memory in bytes.
	UsedBytes uint64

	// AvailableBytes is the remaining memory budget.
	AvailableBytes uint64

	// TextureCount is the number of live textures.
	TextureCount int

	// DeleteCount is the total number of textures deleted.
	DeleteCount uint64

	// Utilization is the fraction of budget used (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%.1f%% used, %d/%d MB, %d textures, %d deleted]",
		s.Utilization*100,
		s.UsedBytes/(1024*1024),
		s.TotalBytes/(1024*1024),
		s.TextureCount,
		s.DeleteCount)
}

// SoftwareDeviceConfig holds configuration for creating a SoftwareDevice.
type SoftwareDeviceConfig struct {
	// MaxMemoryMB is the memory budget in megabytes.
	// Defaults to DefaultMaxMemoryMB if below MinMemoryMB.
	MaxMemoryMB int
}

// softwareTexture tracks one live texture.
type softwareTexture struct {
	desc      TextureDescriptor
	sizeBytes uint64
}

// SoftwareDevice is a Device that allocates logical textures without a GPU.
// It names textures with increasing handles, tracks their memory against a
// budget, and reports misuse such as deleting an unknown handle.
//
// SoftwareDevice is safe for concurrent use.
type SoftwareDevice struct {
	mu sync.RWMutex

	budgetBytes uint64
	usedBytes   uint64

	textures map[Handle]*softwareTexture
	next     Handle

	deleteCount uint64
	closed      bool
}

// NewSoftwareDevice creates a software device with the given configuration.
func NewSoftwareDevice(config SoftwareDeviceConfig) *SoftwareDevice {
	maxMB := config.MaxMemoryMB
	if maxMB < MinMemoryMB {
		maxMB = DefaultMaxMemoryMB
	}

	//nolint:gosec // G115: maxMB is bounded by MinMemoryMB minimum
	return &SoftwareDevice{
		budgetBytes: uint64(maxMB) * 1024 * 1024,
		textures:    make(map[Handle]*softwareTexture),
	}
}

// CreateTexture allocates a texture and returns its handle.
// It fails with ErrMemoryBudgetExceeded when the texture does not fit in
// the remaining budget; the device never evicts on its own.
func (d *SoftwareDevice) CreateTexture(desc TextureDescriptor) (Handle, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, desc.Width, desc.Height)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, ErrDeviceClosed
	}

	size := desc.SizeBytes()
	if d.usedBytes+size > d.budgetBytes {
		return 0, fmt.Errorf("%w: need %d bytes, have %d bytes available",
			ErrMemoryBudgetExceeded, size, d.budgetBytes-d.usedBytes)
	}

	d.next++
	h := d.next
	d.textures[h] = &softwareTexture{desc: desc, sizeBytes: size}
	d.usedBytes += size

	texcache.Logger().Debug("gpu: texture created",
		"handle", h, "label", desc.Label, "width", desc.Width, "height", desc.Height,
		"format", desc.format(), "bytes", size)
	return h, nil
}

// DeleteTexture releases the texture named by h.
// Deleting an unknown handle is logged and otherwise ignored.
func (d *SoftwareDevice) DeleteTexture(h Handle) {
	if h.IsZero() {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	tex, ok := d.textures[h]
	if !ok {
		texcache.Logger().Warn("gpu: delete of unknown texture", "handle", h)
		return
	}
	delete(d.textures, h)
	d.usedBytes -= tex.sizeBytes
	d.deleteCount++
}

// IsTexture reports whether h names a live texture.
func (d *SoftwareDevice) IsTexture(h Handle) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.textures[h]
	return ok
}

// Descriptor returns the descriptor a live texture was created with.
func (d *SoftwareDevice) Descriptor(h Handle) (TextureDescriptor, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tex, ok := d.textures[h]
	if !ok {
		return TextureDescriptor{}, false
	}
	return tex.desc, true
}

// Handles returns the live handles in ascending order.
func (d *SoftwareDevice) Handles() []Handle {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Handle, 0, len(d.textures))
	for h := range d.textures {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Stats returns current memory usage statistics.
func (d *SoftwareDevice) Stats() MemoryStats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var utilization float64
	if d.budgetBytes > 0 {
		utilization = float64(d.usedBytes) / float64(d.budgetBytes)
	}

	return MemoryStats{
		TotalBytes:     d.budgetBytes,
		UsedBytes:      d.usedBytes,
		AvailableBytes: d.budgetBytes - d.usedBytes,
		TextureCount:   len(d.textures),
		DeleteCount:    d.deleteCount,
		Utilization:    utilization,
	}
}

// Close releases every live texture. The device should not be used after
// Close is called; CreateTexture then fails with ErrDeviceClosed.
func (d *SoftwareDevice) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	d.deleteCount += uint64(len(d.textures))
	d.textures = nil
	d.usedBytes = 0
	d.closed = true
}

var _ Device = (*SoftwareDevice)(nil)
