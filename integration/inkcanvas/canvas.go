// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/surface"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("inkcanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("inkcanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("inkcanvas: nil DeviceProvider")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Canvas wraps an ink.Canvas with gogpu integration.
// It manages the CPU-to-GPU pipeline automatically.
//
// Canvas is NOT safe for concurrent use. Feed events and flush from
// the same goroutine, or use external synchronization. The embedded
// ink.Canvas does its own locking, so HandleTouch alone may be called
// from event-delivery goroutines.
type Canvas struct {
	canvas      *ink.Canvas
	target      *surface.ImageSurface
	provider    gpucontext.DeviceProvider
	texture     any            // Lazy-created texture (*gogpu.Texture)
	oldTexture  any            // Previous texture awaiting deferred destruction
	upload      bool           // Rendered content needs GPU upload
	sizeChanged bool           // Resize pending, texture must be recreated
	texW, texH  int            // Dimensions of the live texture
	lastFrame   frameTransform // Transform baked into the live texture
	width       int
	height      int
	closed      bool
}

// New creates a Canvas for integrated mode.
// The provider should come from gogpu.App.GPUContextProvider().
//
// Width and height are in pixels. The stroke canvas starts with an
// identity logical-to-pixel mapping; hosts on scaled displays call
// SetLogicalSize, or pass ink.WithSizes in opts.
//
// Returns error if dimensions are invalid or provider is nil.
func New(provider gpucontext.DeviceProvider, width, height int, opts ...ink.Option) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	size := ink.Size{Width: float64(width), Height: float64(height)}
	base := []ink.Option{ink.WithSizes(size, size)}

	return &Canvas{
		canvas:   ink.NewCanvas(append(base, opts...)...),
		target:   surface.NewImageSurface(width, height),
		provider: provider,
		width:    width,
		height:   height,
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(provider gpucontext.DeviceProvider, width, height int, opts ...ink.Option) *Canvas {
	c, err := New(provider, width, height, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Ink returns the stroke canvas for direct access: size updates,
// resets, custom render paths.
//
// Returns nil if the canvas is closed.
func (c *Canvas) Ink() *ink.Canvas {
	if c.closed {
		return nil
	}
	return c.canvas
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// HandleTouch forwards a touch event to the stroke canvas.
// Returns ErrCanvasClosed after Close; events are otherwise never
// rejected.
func (c *Canvas) HandleTouch(ev ink.TouchEvent) error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.canvas.HandleTouch(ev)
	return nil
}

// Dirty exposes the stroke canvas redraw channel so hosts can schedule
// paint events. See ink.Canvas.Dirty for the consumption pattern.
func (c *Canvas) Dirty() <-chan struct{} {
	return c.canvas.Dirty()
}

// IsDirty returns true if the canvas has pending changes
// that need to be rendered or uploaded to the GPU.
func (c *Canvas) IsDirty() bool {
	return c.upload || len(c.canvas.Dirty()) > 0
}

// SetLogicalSize updates the logical coordinate space touch events
// arrive in, keeping the current pixel size. Hosts call this when the
// window's DPI scale changes without a pixel resize.
func (c *Canvas) SetLogicalSize(logical ink.Size) error {
	if c.closed {
		return ErrCanvasClosed
	}
	_, pixel := c.canvas.Sizes()
	c.canvas.SetSizes(logical, pixel)
	return nil
}

// Resize changes canvas pixel dimensions.
// This recreates internal buffers; strokes are preserved and re-drawn
// at the new resolution on the next Flush.
//
// Returns error if dimensions are invalid or canvas is closed.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	// No-op if dimensions haven't changed
	if c.width == width && c.height == height {
		return nil
	}

	if err := c.target.Resize(width, height); err != nil {
		return fmt.Errorf("inkcanvas: surface resize failed: %w", err)
	}

	c.width = width
	c.height = height

	logical, _ := c.canvas.Sizes()
	pixel := ink.Size{Width: float64(width), Height: float64(height)}
	if !logical.Valid() {
		logical = pixel
	}
	c.canvas.SetSizes(logical, pixel)

	c.sizeChanged = true
	c.upload = true
	return nil
}

// needsFrame consumes a pending redraw request, if any.
func (c *Canvas) needsFrame() bool {
	select {
	case <-c.canvas.Dirty():
		return true
	default:
		return false
	}
}

// Flush renders pending stroke changes and uploads the result to a GPU
// texture. Returns the texture for drawing.
//
// The texture is created lazily on first Flush().
// Subsequent calls only re-render and upload when strokes changed,
// so hosts may call Flush every frame.
//
// Returns error if rendering or texture update fails, or if canvas is closed.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	return c.flushFrame(identityTransform)
}

// flushFrame renders pending strokes and brings the live texture up to
// date with the given transform baked in.
func (c *Canvas) flushFrame(p frameTransform) (any, error) {
	// If size changed, defer old texture destruction until after GPU is idle.
	// The old texture may still be referenced by in-flight GPU command buffers.
	// Destroying it now would free descriptor heap entries that the GPU is
	// reading, causing it to sample zeros (transparent). Instead, keep it
	// alive and destroy it once the replacement has been written.
	if c.sizeChanged {
		c.retireTexture()
		c.sizeChanged = false
	}

	if c.needsFrame() || c.texture == nil {
		if err := c.canvas.Render(c.target); err != nil {
			return nil, fmt.Errorf("inkcanvas: render failed: %w", err)
		}
		c.upload = true
	}

	// Skip upload if the live texture already holds this exact frame
	if !c.upload && c.texture != nil && c.lastFrame == p {
		return c.texture, nil
	}

	frame := c.target.Image()
	if !p.identity() {
		frame = transformRGBA(frame, p)
	}

	tex, err := c.uploadFrame(frame.Rect.Dx(), frame.Rect.Dy(), frame.Pix)
	if err != nil {
		return nil, err
	}
	c.lastFrame = p
	return tex, nil
}

// retireTexture queues the live texture for deferred destruction. A
// previously queued texture is destroyed immediately: by the time a
// second retirement happens the host has drawn at least one frame with
// the first replacement, so the GPU no longer references the oldest.
func (c *Canvas) retireTexture() {
	if c.texture == nil {
		return
	}
	if c.oldTexture != nil {
		if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
	}
	c.oldTexture = c.texture
	c.texture = nil
}

// uploadFrame pushes pixel data into the live texture, recreating it
// when the dimensions changed. Creation itself stays lazy: the caller
// receives a pendingTexture until a render pass provides a
// gpucontext.TextureCreator.
func (c *Canvas) uploadFrame(w, h int, data []byte) (any, error) {
	if c.texture != nil && (c.texW != w || c.texH != h) {
		c.retireTexture()
	}

	// Create texture if needed (lazy initialization)
	if c.texture == nil {
		c.texture = &pendingTexture{
			width:  w,
			height: h,
			data:   data,
		}
		c.texW, c.texH = w, h
		c.upload = false
		return c.texture, nil
	}

	// A still-pending texture just takes the new frame data.
	if pending, ok := c.texture.(*pendingTexture); ok {
		pending.data = data
		c.upload = false
		return c.texture, nil
	}

	// Update existing texture
	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			ink.Logger().Warn("inkcanvas: texture update failed", "error", err)
			return nil, fmt.Errorf("inkcanvas: texture update failed: %w", err)
		}
	}

	c.upload = false
	return c.texture, nil
}

// Texture returns the current GPU texture without flushing.
// Returns nil if texture hasn't been created yet.
//
// Use Flush() to ensure the texture exists and is up-to-date.
func (c *Canvas) Texture() any {
	return c.texture
}

// Snapshot returns the most recently rendered frame as raw RGBA.
// Returns nil if the canvas is closed.
func (c *Canvas) Snapshot() []byte {
	if c.closed {
		return nil
	}
	img := c.target.Snapshot()
	if img == nil {
		return nil
	}
	return img.Pix
}

// Close releases all resources associated with the Canvas.
// After Close, the Canvas should not be used.
// Close is idempotent - multiple calls are safe.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	// Destroy textures (current and any deferred old texture)
	if c.oldTexture != nil {
		if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.oldTexture = nil
	}
	if c.texture != nil {
		if destroyer, ok := c.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.texture = nil
	}

	if c.target != nil {
		_ = c.target.Close()
		c.target = nil
	}

	c.canvas = nil
	c.provider = nil
	return nil
}

// pendingTexture is a placeholder for texture creation.
// It holds the data needed to create a real texture when we have
// access to a textureCreator (during the host's render pass).
type pendingTexture struct {
	width  int
	height int
	data   []byte
}

// Provider returns the DeviceProvider associated with this canvas.
// Returns nil if the canvas is closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}
