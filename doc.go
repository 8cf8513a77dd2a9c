// Package ink provides a multi-touch freehand drawing core for Go.
//
// # Overview
//
// ink tracks concurrent touch sequences and turns them into polyline
// strokes, then renders those strokes onto a pluggable surface. It is
// designed to sit between a windowing or mobile event loop and the
// GoGPU rendering stack: feed it touch events, render when it signals,
// and it takes care of stroke lifecycle, coordinate scaling, and
// redraw coalescing.
//
// # Quick Start
//
//	import "github.com/gogpu/ink"
//
//	// Create a canvas and tell it how coordinates map to pixels
//	canvas := ink.NewCanvas(
//	    ink.WithSizes(ink.Size{Width: 400, Height: 300}, ink.Size{Width: 800, Height: 600}),
//	)
//
//	// Feed it touch events from your event loop
//	canvas.HandleTouch(ink.TouchEvent{ID: 1, Phase: ink.PhasePressed, Location: ink.Pt(10, 10)})
//	canvas.HandleTouch(ink.TouchEvent{ID: 1, Phase: ink.PhaseMoved, Location: ink.Pt(20, 15)})
//	canvas.HandleTouch(ink.TouchEvent{ID: 1, Phase: ink.PhaseReleased})
//
//	// Render when the canvas reports pending changes
//	s := surface.NewImageSurface(800, 600)
//	<-canvas.Dirty()
//	canvas.Render(s)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Canvas, Tracker, Path, TouchEvent, Renderer
//   - surface/: rendering target abstraction with software and GPU backends
//   - internal/: stroke (outline expansion), raster (scanline fill)
//   - integration/: glue for hosting a canvas on a GPU texture
//
// # Coordinate System
//
// Touch locations arrive in logical coordinates (points); strokes are
// stored and rendered in pixel coordinates. The mapping is a per-axis
// linear scale configured with Canvas.SetSizes. Origin (0,0) is the
// top-left corner, X increases right, Y increases down.
//
// # Concurrency
//
// Canvas is safe for concurrent use: one lock guards the stroke
// collections for the whole of each event or render call. Tracker on
// its own is not thread-safe; Canvas owns the locking.
package ink

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
