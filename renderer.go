package ink

import (
	"image/color"

	"github.com/gogpu/ink/surface"
)

// Renderer draws a frame of strokes onto a surface.
//
// Implementations must draw completed strokes first, in the order
// given, then in-progress strokes, so that the newest ink appears on
// top. Both slices may be empty.
type Renderer interface {
	Render(dst surface.Surface, completed, inProgress []*Path) error
}

// StrokeRenderer renders every stroke with one uniform style over a
// solid background. The style and background are fixed at construction
// so that a stroke never changes appearance between frames.
type StrokeRenderer struct {
	style      surface.StrokeStyle
	background color.Color
}

// NewStrokeRenderer creates a renderer with the given style and
// background color. A nil background defaults to white.
func NewStrokeRenderer(style surface.StrokeStyle, background color.Color) *StrokeRenderer {
	if background == nil {
		background = color.White
	}
	return &StrokeRenderer{
		style:      style,
		background: background,
	}
}

// Style returns the stroke style applied to every path.
func (r *StrokeRenderer) Style() surface.StrokeStyle {
	return r.style
}

// Render clears the surface and draws all strokes back to front:
// background, completed strokes in completion order, then in-progress
// strokes in press order.
func (r *StrokeRenderer) Render(dst surface.Surface, completed, inProgress []*Path) error {
	dst.Clear(r.background)
	for _, p := range completed {
		r.strokePath(dst, p)
	}
	for _, p := range inProgress {
		r.strokePath(dst, p)
	}
	return dst.Flush()
}

func (r *StrokeRenderer) strokePath(dst surface.Surface, p *Path) {
	if p == nil || len(p.points) == 0 {
		return
	}
	dst.Stroke(toSurfacePoints(p.points), r.style)
}

// toSurfacePoints converts tracker points to surface points.
func toSurfacePoints(pts []Point) []surface.Point {
	out := make([]surface.Point, len(pts))
	for i, pt := range pts {
		out[i] = surface.Point{X: pt.X, Y: pt.Y}
	}
	return out
}

var _ Renderer = (*StrokeRenderer)(nil)
