package gpu

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSoftwareDeviceDefaults(t *testing.T) {
	tests := []struct {
		name      string
		maxMB     int
		wantBytes uint64
	}{
		{"zero uses default", 0, DefaultMaxMemoryMB * 1024 * 1024},
		{"below minimum uses default", MinMemoryMB - 1, DefaultMaxMemoryMB * 1024 * 1024},
		{"explicit", 64, 64 * 1024 * 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSoftwareDevice(SoftwareDeviceConfig{MaxMemoryMB: tt.maxMB})
			if got := d.Stats().TotalBytes; got != tt.wantBytes {
				t.Errorf("TotalBytes = %d, want %d", got, tt.wantBytes)
			}
		})
	}
}

func TestSoftwareDeviceCreateDelete(t *testing.T) {
	d := NewSoftwareDevice(SoftwareDeviceConfig{})

	h1, err := d.CreateTexture(TextureDescriptor{Label: "a", Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("CreateTexture() = %v", err)
	}
	h2, err := d.CreateTexture(TextureDescriptor{Label: "b", Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("CreateTexture() = %v", err)
	}
	if h1 == h2 || h1.IsZero() || h2.IsZero() {
		t.Fatalf("handles not distinct and non-zero: %v, %v", h1, h2)
	}
	if !d.IsTexture(h1) || !d.IsTexture(h2) {
		t.Error("IsTexture() = false for live textures")
	}

	stats := d.Stats()
	if stats.TextureCount != 2 {
		t.Errorf("TextureCount = %d, want 2", stats.TextureCount)
	}
	if stats.UsedBytes != 8*8*4+4*4*4 {
		t.Errorf("UsedBytes = %d, want %d", stats.UsedBytes, 8*8*4+4*4*4)
	}

	desc, ok := d.Descriptor(h1)
	if !ok || desc.Label != "a" {
		t.Errorf("Descriptor(h1) = %+v, %v", desc, ok)
	}

	d.DeleteTexture(h1)
	if d.IsTexture(h1) {
		t.Error("IsTexture() = true after delete")
	}
	stats = d.Stats()
	if stats.UsedBytes != 4*4*4 || stats.DeleteCount != 1 {
		t.Errorf("after delete: UsedBytes = %d, DeleteCount = %d", stats.UsedBytes, stats.DeleteCount)
	}

	if got := d.Handles(); len(got) != 1 || got[0] != h2 {
		t.Errorf("Handles() = %v, want [%v]", got, h2)
	}
}

func TestSoftwareDeviceDeleteUnknownIsIgnored(t *testing.T) {
	d := NewSoftwareDevice(SoftwareDeviceConfig{})
	h, _ := d.CreateTexture(TextureDescriptor{Width: 1, Height: 1})

	d.DeleteTexture(h)
	d.DeleteTexture(h) // double delete
	d.DeleteTexture(0)
	d.DeleteTexture(999)

	if got := d.Stats().DeleteCount; got != 1 {
		t.Errorf("DeleteCount = %d, want 1", got)
	}
}

func TestSoftwareDeviceInvalidDimensions(t *testing.T) {
	d := NewSoftwareDevice(SoftwareDeviceConfig{})
	for _, desc := range []TextureDescriptor{
		{Width: 0, Height: 1},
		{Width: 1, Height: 0},
		{Width: -3, Height: 4},
	} {
		if _, err := d.CreateTexture(desc); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("CreateTexture(%dx%d) = %v, want ErrInvalidDimensions", desc.Width, desc.Height, err)
		}
	}
}

func TestSoftwareDeviceBudget(t *testing.T) {
	d := NewSoftwareDevice(SoftwareDeviceConfig{MaxMemoryMB: MinMemoryMB})

	// 2048x2048 RGBA8 is exactly 16 MB.
	h, err := d.CreateTexture(TextureDescriptor{Width: 2048, Height: 2048})
	if err != nil {
		t.Fatalf("CreateTexture() = %v", err)
	}
	if _, err := d.CreateTexture(TextureDescriptor{Width: 1, Height: 1}); !errors.Is(err, ErrMemoryBudgetExceeded) {
		t.Errorf("CreateTexture() over budget = %v, want ErrMemoryBudgetExceeded", err)
	}

	d.DeleteTexture(h)
	if _, err := d.CreateTexture(TextureDescriptor{Width: 1, Height: 1}); err != nil {
		t.Errorf("CreateTexture() after freeing = %v", err)
	}
}

func TestSoftwareDeviceClose(t *testing.T) {
	d := NewSoftwareDevice(SoftwareDeviceConfig{})
	h, _ := d.CreateTexture(TextureDescriptor{Width: 2, Height: 2})

	d.Close()
	d.Close() // idempotent

	if d.IsTexture(h) {
		t.Error("IsTexture() = true after Close")
	}
	if _, err := d.CreateTexture(TextureDescriptor{Width: 2, Height: 2}); !errors.Is(err, ErrDeviceClosed) {
		t.Errorf("CreateTexture() after Close = %v, want ErrDeviceClosed", err)
	}
	stats := d.Stats()
	if stats.TextureCount != 0 || stats.UsedBytes != 0 || stats.DeleteCount != 1 {
		t.Errorf("Stats() after Close = %+v", stats)
	}
	d.DeleteTexture(h) // must not panic
}

func TestMemoryStatsString(t *testing.T) {
	s := MemoryStats{
		TotalBytes:   256 * 1024 * 1024,
		UsedBytes:    64 * 1024 * 1024,
		TextureCount: 3,
		DeleteCount:  2,
		Utilization:  0.25,
	}
	got := s.String()
	for _, want := range []string{"25.0% used", "64/256 MB", "3 textures", "2 deleted"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
