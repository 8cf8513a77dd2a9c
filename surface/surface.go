// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// Surface is the core rendering target abstraction.
//
// A Surface represents a 2D canvas that strokes can be drawn to.
// Implementations may use CPU-based software rendering, GPU
// acceleration, or any other backend.
//
// Surfaces are NOT thread-safe. Each surface should be used from a
// single goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.Stroke(points, surface.DefaultStrokeStyle().WithWidth(4))
//	img := s.Snapshot()
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with the given color.
	// This is typically the fastest way to reset the surface.
	Clear(c color.Color)

	// Stroke draws the polyline using the specified style.
	// The points are not modified or retained. A single point is drawn
	// as a cap-shaped dot; an empty slice is a no-op.
	Stroke(points []Point, style StrokeStyle)

	// Flush ensures all pending drawing operations are complete.
	// For CPU surfaces, this is typically a no-op.
	// For GPU surfaces, this may submit commands and wait for completion.
	// Returns an error if flushing fails.
	Flush() error

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect
	// the surface. This may be slow for GPU surfaces as it requires
	// readback.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// ResizableSurface is an optional interface for surfaces that support resizing.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions.
	// Existing content is discarded.
	Resize(width, height int) error
}

// Capabilities describes the optional features a surface supports.
type Capabilities struct {
	// SupportsResize indicates Resize is available.
	SupportsResize bool

	// SupportsAntialias indicates anti-aliased rendering is available.
	SupportsAntialias bool

	// MaxWidth is the maximum supported width (0 = unlimited).
	MaxWidth int

	// MaxHeight is the maximum supported height (0 = unlimited).
	MaxHeight int
}

// CapableSurface is an optional interface for querying surface capabilities.
type CapableSurface interface {
	Surface

	// Capabilities returns the surface's capabilities.
	Capabilities() Capabilities
}
