// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides a unified rendering target abstraction for
// stroke rasterization.
//
// Surface decouples drawing operations from their implementation. This
// allows the same drawing code to work with:
//
//   - CPU-based software rendering (ImageSurface)
//   - GPU-accelerated rendering (GPUSurface)
//   - Third-party backends via registry
//
// # Architecture
//
// The surface package follows the Cairo/Skia pattern where surfaces are
// rendering targets independent of the drawing logic. This separation
// enables:
//
//   - Backend switching without code changes
//   - Testing with mock surfaces
//   - Third-party backend integration
//
// # Surface Types
//
//   - ImageSurface: CPU-based rendering to *image.RGBA using the
//     internal scanline rasterizer
//   - GPUSurface: GPU-accelerated rendering wrapper (requires external
//     backend)
//
// # Registry
//
// Third-party backends can register surfaces via the registry:
//
//	surface.Register("vulkan", 100, vulkanFactory, vulkanAvailable)
//
//	// Later:
//	s, err := surface.NewSurfaceByName("vulkan", 800, 600)
//
// NewSurface picks the highest-priority available backend, so callers
// that do not care about the backend can stay generic:
//
//	s, err := surface.NewSurface(800, 600)
//
// # Usage
//
// Basic usage with ImageSurface:
//
//	// Create a CPU-based surface
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	// Clear with white background
//	s.Clear(color.White)
//
//	// Draw a stroke through three points
//	s.Stroke([]surface.Point{
//	    {X: 100, Y: 100},
//	    {X: 200, Y: 100},
//	    {X: 150, Y: 200},
//	}, surface.DefaultStrokeStyle().
//	    WithColor(color.RGBA{R: 255, A: 255}).
//	    WithWidth(4))
//
//	// Get the result
//	img := s.Snapshot()
//
// # References
//
//   - Cairo: https://cairographics.org/manual/cairo-Image-Surfaces.html
//   - Skia: https://skia.org/docs/user/api/skcanvas_overview/
package surface
