// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package inkcanvas provides seamless integration between ink freehand
// drawing and gogpu GPU-accelerated windows.
//
// This package enables multi-touch drawing directly in GPU-accelerated
// windows by managing the CPU-to-GPU pipeline automatically. The data
// flow is:
//
//	TouchEvent -> ink.Canvas (strokes) -> ImageSurface (CPU) -> GPU Texture -> Window
//
// # Architecture
//
// Canvas wraps an ink.Canvas and manages the texture upload pipeline:
//
//   - HandleTouch feeds pointer events into the stroke tracker
//   - Flush() re-renders changed strokes and uploads pixel data to a GPU texture
//   - RenderTo() draws the texture to a gogpu window
//
// # Usage
//
// Basic usage with gogpu:
//
//	canvas := inkcanvas.MustNew(app.GPUContextProvider(), 800, 600)
//	defer canvas.Close()
//
//	// Feed touch or mouse events
//	canvas.HandleTouch(ink.TouchEvent{ID: 1, Phase: ink.PhasePressed, Location: ink.Pt(x, y)})
//
//	// Render to gogpu window each frame
//	canvas.RenderTo(dc)
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use, with one exception: HandleTouch
// alone may be called from event-delivery goroutines, because the
// embedded ink.Canvas does its own locking. Flush, Resize and Close must
// stay on a single goroutine.
//
// # Performance Notes
//
//   - Texture is created lazily on first Flush()
//   - Redraw coalescing avoids re-rasterizing unchanged strokes
//   - Rendering happens at pixel resolution; logical coordinates are
//     converted as events arrive
//   - RenderOptions scale, alpha and flip are baked into the pixels on
//     the CPU before upload; non-identity options cost a frame copy
//
// # Integration Without Circular Imports
//
// This package uses interfaces to avoid importing gogpu directly:
//
//   - gpucontext.DeviceProvider for device access
//   - gpucontext.TextureDrawer and TextureCreator for texture plumbing
//
// This allows ink to provide integration without creating circular dependencies.
package inkcanvas
