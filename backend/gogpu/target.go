package gogpu

import (
	"image"
	"image/color"

	"github.com/gogpu/gogpu/gpu"
	"github.com/gogpu/gogpu/gpu/types"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ink/surface"
)

// Target is a GPU render target with a CPU rasterizer behind it.
//
// Clear and Stroke draw into an in-memory image. Flush uploads the
// image to the GPU texture, which stays resident for composition by
// the host application. Readback serves from the CPU image, so it
// never stalls the GPU.
//
// Target is not safe for concurrent use. The owning surface serializes
// access to it.
type Target struct {
	backend gpu.Backend
	queue   types.Queue
	texture types.Texture

	img    *surface.ImageSurface
	width  int
	height int

	dirty  bool
	closed bool
}

// Verify Target implements the GPU backend contract.
var _ surface.GPUBackend = (*Target)(nil)

// Clear fills the render target with a color.
func (t *Target) Clear(c color.Color) {
	if t.closed {
		return
	}
	t.img.Clear(c)
	t.dirty = true
}

// Stroke rasterizes a polyline with the given style.
func (t *Target) Stroke(points []surface.Point, style surface.StrokeStyle) {
	if t.closed || len(points) == 0 {
		return
	}
	t.img.Stroke(points, style)
	t.dirty = true
}

// SetAntialias toggles anti-aliased rasterization.
func (t *Target) SetAntialias(enabled bool) {
	if t.closed {
		return
	}
	t.img.SetAntialias(enabled)
}

// Format returns the texture format of the render target.
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Flush uploads the rasterized pixels to the GPU texture.
// The upload is skipped when nothing changed since the last Flush.
func (t *Target) Flush() error {
	if t.closed {
		return nil
	}
	if err := t.img.Flush(); err != nil {
		return err
	}
	if !t.dirty {
		return nil
	}

	dst := &types.ImageCopyTexture{
		Texture:  t.texture,
		MipLevel: 0,
		Origin:   types.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   types.TextureAspectAll,
	}

	layout := &types.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  safeIntToUint32(t.width) * 4,
		RowsPerImage: safeIntToUint32(t.height),
	}

	size := &types.Extent3D{
		Width:              safeIntToUint32(t.width),
		Height:             safeIntToUint32(t.height),
		DepthOrArrayLayers: 1,
	}

	t.backend.WriteTexture(t.queue, dst, t.img.Image().Pix, layout, size)
	t.dirty = false

	return nil
}

// Readback returns the render target contents as an image.
// The CPU image is the source of truth, so no GPU stall is involved.
func (t *Target) Readback() (*image.RGBA, error) {
	if t.closed {
		return nil, ErrTargetClosed
	}
	return t.img.Snapshot(), nil
}

// Texture returns the GPU texture handle holding the uploaded pixels.
// Returns 0 after Close.
func (t *Target) Texture() types.Texture {
	if t.closed {
		return 0
	}
	return t.texture
}

// Close releases the GPU texture and the CPU image.
// It is safe to call Close multiple times.
func (t *Target) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	if t.backend != nil {
		t.backend.ReleaseTexture(t.texture)
	}
	t.texture = 0

	return t.img.Close()
}

// safeIntToUint32 converts int to uint32, clamping out-of-range values.
func safeIntToUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > int(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}
