// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/ink/internal/raster"
	"github.com/gogpu/ink/internal/stroke"
)

// Surface errors.
var (
	// ErrSurfaceClosed is returned when operations that report errors
	// are attempted on a closed surface.
	ErrSurfaceClosed = errors.New("surface: surface is closed")

	// ErrInvalidSize is returned when width or height is not positive.
	ErrInvalidSize = errors.New("surface: invalid dimensions")
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Strokes are expanded to filled outlines and rasterized with a
// scanline filler. This is the default surface implementation for
// software rendering.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.Stroke([]surface.Point{{X: 10, Y: 10}, {X: 100, Y: 50}},
//	    surface.DefaultStrokeStyle().WithWidth(4).WithCap(surface.LineCapRound))
//
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// filler performs scanline rasterization of stroke outlines
	filler *raster.Filler

	// antialias selects supersampled coverage rendering
	antialias bool

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given
// dimensions. Antialiasing is enabled by default.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:     width,
		height:    height,
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		filler:    raster.NewFiller(width, height),
		antialias: true,
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface will render into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	return &ImageSurface{
		width:     width,
		height:    height,
		img:       img,
		filler:    raster.NewFiller(width, height),
		antialias: true,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// SetAntialias toggles supersampled coverage rendering.
func (s *ImageSurface) SetAntialias(enabled bool) {
	s.antialias = enabled
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}

	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{toRGBA(c)}, image.Point{}, draw.Src)
}

// Stroke draws the polyline using the specified style.
func (s *ImageSurface) Stroke(points []Point, style StrokeStyle) {
	if s.closed || len(points) == 0 {
		return
	}

	src := toRGBA(style.Color)
	if src.A == 0 {
		return
	}

	expander := stroke.NewExpander(stroke.Stroke{
		Width:      style.Width,
		Cap:        capStyle(style.Cap),
		Join:       joinStyle(style.Join),
		MiterLimit: style.MiterLimit,
	})

	pts := make([]stroke.Point, len(points))
	for i, p := range points {
		pts[i] = stroke.Point{X: p.X, Y: p.Y}
	}

	outline := expander.Expand(pts)
	if len(outline) == 0 {
		return
	}

	rings := make([][]raster.Point, len(outline))
	for i, ring := range outline {
		rp := make([]raster.Point, len(ring))
		for j, p := range ring {
			rp[j] = raster.Point{X: p.X, Y: p.Y}
		}
		rings[i] = rp
	}

	painter := &spanPainter{s: s, src: src}
	if s.antialias {
		s.filler.FillAA(painter, rings)
	} else {
		s.filler.Fill(painter, rings)
	}
}

// Flush ensures all pending operations are complete.
// For ImageSurface, this is a no-op.
func (s *ImageSurface) Flush() error {
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(result.Pix, s.img.Pix)
	return result
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	s.filler = nil
	return nil
}

// Resize changes the surface dimensions, discarding existing content.
func (s *ImageSurface) Resize(width, height int) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidSize, width, height)
	}
	if width == s.width && height == s.height {
		return nil
	}

	s.width = width
	s.height = height
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.filler = raster.NewFiller(width, height)
	return nil
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Capabilities returns the surface capabilities.
func (s *ImageSurface) Capabilities() Capabilities {
	return Capabilities{
		SupportsResize:    true,
		SupportsAntialias: true,
		MaxWidth:          0, // Unlimited
		MaxHeight:         0,
	}
}

// spanPainter blends rasterized spans onto the surface image.
type spanPainter struct {
	s   *ImageSurface
	src color.RGBA
}

// BlitSpan implements raster.Blitter.
func (p *spanPainter) BlitSpan(y, x0, x1 int, alpha uint8) {
	for x := x0; x < x1; x++ {
		p.s.blendPixelAlpha(x, y, p.src, alpha)
	}
}

// blendPixelAlpha blends a color with coverage alpha onto the image.
func (s *ImageSurface) blendPixelAlpha(x, y int, src color.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}

	idx := s.img.PixOffset(x, y)

	if alpha == 255 && src.A == 255 {
		// Fully opaque - direct write
		s.img.Pix[idx+0] = src.R
		s.img.Pix[idx+1] = src.G
		s.img.Pix[idx+2] = src.B
		s.img.Pix[idx+3] = src.A
		return
	}

	// Source-over compositing with coverage
	// srcA = src.A * alpha / 255
	srcA := uint32(src.A) * uint32(alpha) / 255
	invSrcA := 255 - srcA

	dstR := uint32(s.img.Pix[idx+0])
	dstG := uint32(s.img.Pix[idx+1])
	dstB := uint32(s.img.Pix[idx+2])
	dstA := uint32(s.img.Pix[idx+3])

	outA := srcA + dstA*invSrcA/255
	if outA == 0 {
		return
	}

	outR := (uint32(src.R)*srcA + dstR*dstA*invSrcA/255) / outA
	outG := (uint32(src.G)*srcA + dstG*dstA*invSrcA/255) / outA
	outB := (uint32(src.B)*srcA + dstB*dstA*invSrcA/255) / outA

	//nolint:gosec // G115: safe - values are clamped to [0, 255]
	s.img.Pix[idx+0] = uint8(outR)
	//nolint:gosec // G115: safe
	s.img.Pix[idx+1] = uint8(outG)
	//nolint:gosec // G115: safe
	s.img.Pix[idx+2] = uint8(outB)
	//nolint:gosec // G115: safe
	s.img.Pix[idx+3] = uint8(outA)
}

// toRGBA converts a color.Color to 8-bit RGBA, defaulting to opaque
// black for nil.
func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 255}
	}
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: safe - r>>8 is always in [0, 255]
	return color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

// capStyle converts the public cap enum to the expander's.
func capStyle(c LineCap) stroke.LineCap {
	switch c {
	case LineCapRound:
		return stroke.LineCapRound
	case LineCapSquare:
		return stroke.LineCapSquare
	default:
		return stroke.LineCapButt
	}
}

// joinStyle converts the public join enum to the expander's.
func joinStyle(j LineJoin) stroke.LineJoin {
	switch j {
	case LineJoinRound:
		return stroke.LineJoinRound
	case LineJoinBevel:
		return stroke.LineJoinBevel
	default:
		return stroke.LineJoinMiter
	}
}

// Verify ImageSurface implements the surface interfaces.
var _ Surface = (*ImageSurface)(nil)
var _ ResizableSurface = (*ImageSurface)(nil)
var _ CapableSurface = (*ImageSurface)(nil)
