// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// GPUSurface is a GPU-accelerated surface wrapper.
//
// This is a thin shim that forwards all drawing to an external GPU
// backend. The actual GPU implementation is provided by the backend,
// which keeps ink independent of specific GPU libraries.
//
// Example integration:
//
//	// In the backend package:
//	type wgpuBackend struct {
//	    device *wgpu.Device
//	    queue  *wgpu.Queue
//	    // ...
//	}
//
//	func (b *wgpuBackend) Clear(c color.Color) { ... }
//	func (b *wgpuBackend) Stroke(points []surface.Point, style surface.StrokeStyle) { ... }
//	// ... implement GPUBackend interface
//
//	// Register the backend:
//	surface.Register("vulkan", 100, func(opts surface.Options) (surface.Surface, error) {
//	    backend := createVulkanBackend(opts)
//	    return surface.NewGPUSurface(opts.Width, opts.Height, backend)
//	}, vulkanAvailable)
type GPUSurface struct {
	width   int
	height  int
	backend GPUBackend
	closed  bool
}

// GPUBackend is the interface that GPU implementations must provide.
//
// This abstraction allows different GPU backends (Vulkan, Metal, D3D12)
// to be used with the same Surface API.
type GPUBackend interface {
	// Clear fills the render target with a color.
	Clear(c color.Color)

	// Stroke rasterizes a polyline with the given style.
	Stroke(points []Point, style StrokeStyle)

	// Format returns the texture format of the render target.
	Format() gputypes.TextureFormat

	// Flush ensures all pending operations are submitted.
	Flush() error

	// Readback reads the render target contents to an image.
	Readback() (*image.RGBA, error)

	// Close releases GPU resources.
	Close() error
}

// NewGPUSurface creates a new GPU surface with the given backend.
// Returns an error if backend is nil.
func NewGPUSurface(width, height int, backend GPUBackend) (*GPUSurface, error) {
	if backend == nil {
		return nil, errors.New("surface: GPUBackend cannot be nil")
	}

	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &GPUSurface{
		width:   width,
		height:  height,
		backend: backend,
	}, nil
}

// Width returns the surface width.
func (s *GPUSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *GPUSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *GPUSurface) Clear(c color.Color) {
	if s.closed || s.backend == nil {
		return
	}
	s.backend.Clear(c)
}

// Stroke draws the given polyline using the specified style.
func (s *GPUSurface) Stroke(points []Point, style StrokeStyle) {
	if s.closed || s.backend == nil || len(points) == 0 {
		return
	}
	s.backend.Stroke(points, style)
}

// Format returns the texture format of the underlying render target,
// or TextureFormatUndefined if the surface is closed.
func (s *GPUSurface) Format() gputypes.TextureFormat {
	if s.closed || s.backend == nil {
		return gputypes.TextureFormatUndefined
	}
	return s.backend.Format()
}

// Flush ensures all pending operations are complete.
func (s *GPUSurface) Flush() error {
	if s.closed || s.backend == nil {
		return nil
	}
	return s.backend.Flush()
}

// Snapshot returns the current surface contents as an image.
// This performs a GPU readback, which may be slow.
// Returns nil if the surface is closed or the readback fails.
func (s *GPUSurface) Snapshot() *image.RGBA {
	if s.closed || s.backend == nil {
		return nil
	}
	img, err := s.backend.Readback()
	if err != nil {
		return nil
	}
	return img
}

// Close releases all resources associated with the surface.
// It is safe to call Close multiple times.
func (s *GPUSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.backend != nil {
		return s.backend.Close()
	}
	return nil
}

// Backend returns the underlying GPU backend.
// Returns nil if the surface is closed.
func (s *GPUSurface) Backend() GPUBackend {
	if s.closed {
		return nil
	}
	return s.backend
}

// Capabilities returns the surface capabilities.
func (s *GPUSurface) Capabilities() Capabilities {
	return Capabilities{
		SupportsResize:    false, // Recreate the render target instead
		SupportsAntialias: true,  // GPU supports MSAA or analytical AA
		MaxWidth:          16384, // Typical GPU texture limit
		MaxHeight:         16384,
	}
}

// Verify GPUSurface implements Surface interface.
var _ Surface = (*GPUSurface)(nil)
var _ CapableSurface = (*GPUSurface)(nil)
