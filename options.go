package ink

import (
	"image/color"

	"github.com/gogpu/ink/surface"
)

// Option configures a Canvas during creation.
//
// Example:
//
//	// Default 4px round black stroke on white
//	canvas := ink.NewCanvas()
//
//	// Thick red ink on a dark background
//	canvas := ink.NewCanvas(
//	    ink.WithStyle(surface.DefaultStrokeStyle().
//	        WithColor(ink.Red).
//	        WithWidth(8)),
//	    ink.WithBackground(ink.Hex("#202020")),
//	)
type Option func(*config)

// config holds optional configuration for Canvas creation.
type config struct {
	style      surface.StrokeStyle
	background color.Color
	renderer   Renderer
	logical    Size
	pixel      Size
	invalidate func()
}

// defaultConfig returns the default canvas configuration: a 4px round
// black stroke over white, no coordinate mapping, no callback.
func defaultConfig() config {
	return config{
		style: surface.DefaultStrokeStyle().
			WithWidth(4).
			WithCap(surface.LineCapRound).
			WithJoin(surface.LineJoinRound),
		background: color.White,
	}
}

// WithStyle sets the stroke style shared by every stroke on the canvas.
// The style is copied; later changes to the caller's value have no
// effect on the canvas.
func WithStyle(s surface.StrokeStyle) Option {
	return func(c *config) {
		c.style = s
	}
}

// WithBackground sets the color the canvas is cleared with each frame.
func WithBackground(bg color.Color) Option {
	return func(c *config) {
		if bg != nil {
			c.background = bg
		}
	}
}

// WithRenderer replaces the default StrokeRenderer entirely.
// Use this for dependency injection of custom frame renderers; when
// set, WithStyle and WithBackground are ignored.
func WithRenderer(r Renderer) Option {
	return func(c *config) {
		c.renderer = r
	}
}

// WithSizes sets the initial logical and pixel sizes. Equivalent to
// calling SetSizes right after NewCanvas.
func WithSizes(logical, pixel Size) Option {
	return func(c *config) {
		c.logical = logical
		c.pixel = pixel
	}
}

// WithInvalidateFunc registers a callback fired whenever a redraw
// request is deposited. Hosts that push paint events into their own
// queue use this instead of draining Dirty. The callback runs with the
// canvas lock held and must not call back into the canvas.
func WithInvalidateFunc(f func()) Option {
	return func(c *config) {
		c.invalidate = f
	}
}
