// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkcanvas

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gpucontext"
	xdraw "golang.org/x/image/draw"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when the draw context doesn't implement
	// gpucontext.TextureDrawer.
	ErrInvalidDrawContext = errors.New("inkcanvas: dc must implement gpucontext.TextureDrawer")

	// ErrInvalidRenderer is returned when the renderer doesn't implement
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("inkcanvas: renderer must implement gpucontext.TextureCreator")
)

// RenderOptions controls how canvas is rendered to the target.
//
// Build custom options on top of DefaultRenderOptions: the zero value
// draws nothing because Alpha is 0.
type RenderOptions struct {
	// X, Y is the position to draw the texture (default: 0, 0)
	X, Y float32

	// ScaleX, ScaleY are the scale factors (default: 1, 1)
	// Values < 1 shrink, values > 1 enlarge. Zero and negative values
	// are treated as 1.
	ScaleX float32
	ScaleY float32

	// Alpha is the opacity from 0 (transparent) to 1 (opaque) (default: 1)
	Alpha float32

	// FlipY flips the texture vertically (default: false)
	// Useful when coordinate systems differ between the canvas and GPU
	FlipY bool
}

// DefaultRenderOptions returns options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		X:      0,
		Y:      0,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
		FlipY:  false,
	}
}

// frameTransform is the pixel transform baked into an uploaded frame.
// Scale, alpha and flip are applied on the CPU before upload, so hosts
// only ever draw an untransformed texture.
type frameTransform struct {
	scaleX float32
	scaleY float32
	alpha  float32
	flipY  bool
}

// identityTransform leaves the rendered frame untouched.
var identityTransform = frameTransform{scaleX: 1, scaleY: 1, alpha: 1}

func (p frameTransform) identity() bool {
	return p == identityTransform
}

// frameTransformFor clamps render options to a valid transform.
func frameTransformFor(opts RenderOptions) frameTransform {
	p := frameTransform{
		scaleX: opts.ScaleX,
		scaleY: opts.ScaleY,
		alpha:  opts.Alpha,
		flipY:  opts.FlipY,
	}
	if p.scaleX <= 0 {
		p.scaleX = 1
	}
	if p.scaleY <= 0 {
		p.scaleY = 1
	}
	if p.alpha < 0 {
		p.alpha = 0
	}
	if p.alpha > 1 {
		p.alpha = 1
	}
	return p
}

// RenderTo draws the canvas content to a gpucontext.TextureDrawer.
// This is the primary integration method.
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
// Pending stroke changes are rendered, uploaded to GPU and drawn at
// position (0, 0).
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// Returns error if:
//   - Canvas is closed
//   - Rendering, texture creation or drawing fails
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToEx(dc, DefaultRenderOptions())
}

// RenderToEx draws the canvas with additional options.
// Use this when you need positioning, scaling, or transparency control.
//
// Scale, alpha and flip are baked into the uploaded pixels: the frame
// is resampled with Catmull-Rom, alpha is multiplied into the
// premultiplied pixel data, and FlipY reverses the rows. Changing the
// options between frames forces a re-upload (and a texture recreation
// when the scaled size changes), so animating them every frame is
// expensive. The identity options skip all of this and upload the
// rendered frame directly.
//
// Example:
//
//	opts := inkcanvas.RenderOptions{
//	    X: 100, Y: 50,
//	    ScaleX: 0.5, ScaleY: 0.5,
//	    Alpha: 0.8,
//	}
//	canvas.RenderToEx(dc.AsTextureDrawer(), opts)
func (c *Canvas) RenderToEx(dc gpucontext.TextureDrawer, opts RenderOptions) error {
	if c.closed {
		return ErrCanvasClosed
	}

	tex, err := c.flushFrame(frameTransformFor(opts))
	if err != nil {
		return err
	}

	// If texture is pending (placeholder), create real GPU texture now
	if pending, isPending := tex.(*pendingTexture); isPending {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		// NewTextureFromRGBA calls WriteTexture which does waitForGPU internally.
		// After this returns, ALL prior GPU work is complete, so it's safe to
		// destroy the old texture (its descriptor heap entries are no longer in use).
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("inkcanvas: NewTextureFromRGBA failed: %w", err)
		}

		// image.RGBA stores premultiplied alpha. Mark the texture accordingly
		// so gogpu uses the BlendFactorOne pipeline for correct compositing.
		if pt, ok := realTex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}

		c.texture = realTex
		tex = realTex

		// NOW safe to destroy the old texture: GPU is idle after WriteTexture's
		// wait. This prevents use-after-free where the GPU reads freed
		// descriptor heap entries.
		if c.oldTexture != nil {
			if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			c.oldTexture = nil
		}
	}

	// Get gpucontext.Texture for drawing
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}

	// Draw texture at position
	return dc.DrawTexture(gpuTex, opts.X, opts.Y)
}

// RenderToPosition is a convenience method for rendering at a specific position.
//
//	canvas.RenderToPosition(dc.AsTextureDrawer(), 100, 50)
//
// is equivalent to:
//
//	canvas.RenderToEx(dc.AsTextureDrawer(), RenderOptions{X: 100, Y: 50, ScaleX: 1, ScaleY: 1, Alpha: 1})
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	return c.RenderToEx(dc, RenderOptions{
		X:      x,
		Y:      y,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
	})
}

// RenderToScaled is a convenience method for rendering with uniform scaling.
//
//	canvas.RenderToScaled(dc.AsTextureDrawer(), 0.5) // Render at half size
func (c *Canvas) RenderToScaled(dc gpucontext.TextureDrawer, scale float32) error {
	return c.RenderToEx(dc, RenderOptions{
		X:      0,
		Y:      0,
		ScaleX: scale,
		ScaleY: scale,
		Alpha:  1,
	})
}

// transformRGBA returns a copy of src with the transform applied.
func transformRGBA(src *image.RGBA, p frameTransform) *image.RGBA {
	w := scaleDim(src.Rect.Dx(), p.scaleX)
	h := scaleDim(src.Rect.Dy(), p.scaleY)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == src.Rect.Dx() && h == src.Rect.Dy() {
		copy(dst.Pix, src.Pix)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	}

	if p.flipY {
		flipRows(dst)
	}
	if p.alpha < 1 {
		modulateAlpha(dst, p.alpha)
	}
	return dst
}

// scaleDim scales a dimension, keeping it at least one pixel.
func scaleDim(d int, s float32) int {
	n := int(math.Round(float64(d) * float64(s)))
	if n < 1 {
		n = 1
	}
	return n
}

// flipRows reverses the row order of img in place.
func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	tmp := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// modulateAlpha multiplies alpha into img. The pixel data is
// premultiplied, so all four channels scale together.
func modulateAlpha(img *image.RGBA, alpha float32) {
	m := uint32(alpha*255 + 0.5)
	for i := range img.Pix {
		//nolint:gosec // G115: safe - v*m/255 stays in [0, 255]
		img.Pix[i] = uint8(uint32(img.Pix[i]) * m / 255)
	}
}
