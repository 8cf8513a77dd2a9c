// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "image/color"

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap (no extension).
	LineCapButt LineCap = iota

	// LineCapRound specifies a semicircular line cap.
	LineCapRound

	// LineCapSquare specifies a square line cap (extends by half width).
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota

	// LineJoinRound specifies a rounded join.
	LineJoinRound

	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// StrokeStyle defines how to stroke a polyline.
//
// A StrokeStyle is a value type: the With* methods return modified
// copies, so a style shared between strokes can never change under
// them.
type StrokeStyle struct {
	// Color is the stroke color.
	Color color.Color

	// Width is the line width in pixels.
	Width float64

	// Cap is the line cap style.
	Cap LineCap

	// Join is the line join style.
	Join LineJoin

	// MiterLimit is the limit for miter joins.
	// When the miter length exceeds this, a bevel join is used instead.
	MiterLimit float64
}

// DefaultStrokeStyle returns a StrokeStyle with default values.
// Uses black color, 1px width, butt caps, miter joins.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Color:      color.Black,
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// WithColor returns a copy with the specified color.
func (s StrokeStyle) WithColor(c color.Color) StrokeStyle {
	s.Color = c
	return s
}

// WithWidth returns a copy with the specified width.
func (s StrokeStyle) WithWidth(w float64) StrokeStyle {
	s.Width = w
	return s
}

// WithCap returns a copy with the specified cap style.
func (s StrokeStyle) WithCap(lineCap LineCap) StrokeStyle {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy with the specified join style.
func (s StrokeStyle) WithJoin(join LineJoin) StrokeStyle {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy with the specified miter limit.
func (s StrokeStyle) WithMiterLimit(limit float64) StrokeStyle {
	s.MiterLimit = limit
	return s
}

// Point represents a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Options configures surface creation.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int

	// Antialias enables anti-aliased rendering.
	// Default: true
	Antialias bool

	// BackgroundColor is the initial background color.
	// Default: transparent
	BackgroundColor color.Color

	// Custom options for specific backends.
	Custom map[string]any
}

// DefaultOptions returns Options with default values.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:     width,
		Height:    height,
		Antialias: true,
	}
}
