// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package inkcanvas

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ink"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	device  gpucontext.Device
	queue   gpucontext.Queue
	adapter gpucontext.Adapter
	format  gputypes.TextureFormat
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		device:  &mockDevice{},
		queue:   &mockQueue{},
		adapter: &mockAdapter{},
		format:  gputypes.TextureFormatBGRA8Unorm,
	}
}

func (m *mockProvider) Device() gpucontext.Device             { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue               { return m.queue }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return m.adapter }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }

// mockTexture implements the texture update and destroy interfaces.
type mockTexture struct {
	data      []byte
	updated   int
	destroyed bool
}

func (m *mockTexture) UpdateData(data []byte) error {
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.updated++
	return nil
}

func (m *mockTexture) Destroy() {
	m.destroyed = true
}

// drawStroke feeds a complete press-move-release sequence.
func drawStroke(c *Canvas, id ink.TouchID, pts ...ink.Point) {
	_ = c.HandleTouch(ink.TouchEvent{ID: id, Phase: ink.PhasePressed, Location: pts[0]})
	for _, pt := range pts[1:] {
		_ = c.HandleTouch(ink.TouchEvent{ID: id, Phase: ink.PhaseMoved, Location: pt})
	}
	_ = c.HandleTouch(ink.TouchEvent{ID: id, Phase: ink.PhaseReleased})
}

// TestNew tests canvas creation.
func TestNew(t *testing.T) {
	provider := newMockProvider()

	tests := []struct {
		name      string
		provider  gpucontext.DeviceProvider
		width     int
		height    int
		wantErr   error
		checkFunc func(*testing.T, *Canvas)
	}{
		{
			name:     "valid creation",
			provider: provider,
			width:    800,
			height:   600,
			wantErr:  nil,
			checkFunc: func(t *testing.T, c *Canvas) {
				if c.Width() != 800 {
					t.Errorf("Width() = %d, want 800", c.Width())
				}
				if c.Height() != 600 {
					t.Errorf("Height() = %d, want 600", c.Height())
				}
				if c.Ink() == nil {
					t.Error("Ink() = nil, want non-nil")
				}
				logical, pixel := c.Ink().Sizes()
				want := ink.Size{Width: 800, Height: 600}
				if logical != want || pixel != want {
					t.Errorf("initial sizes = %v, %v, want identity %v", logical, pixel, want)
				}
			},
		},
		{
			name:     "nil provider",
			provider: nil,
			width:    800,
			height:   600,
			wantErr:  ErrNilProvider,
		},
		{
			name:     "zero width",
			provider: provider,
			width:    0,
			height:   600,
			wantErr:  ErrInvalidDimensions,
		},
		{
			name:     "negative height",
			provider: provider,
			width:    800,
			height:   -1,
			wantErr:  ErrInvalidDimensions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.provider, tt.width, tt.height)

			if tt.wantErr != nil {
				if err == nil {
					t.Errorf("New() error = nil, want %v", tt.wantErr)
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error = %v", err)
				return
			}

			defer c.Close()

			if tt.checkFunc != nil {
				tt.checkFunc(t, c)
			}
		})
	}
}

// TestMustNew tests panic behavior.
func TestMustNew(t *testing.T) {
	provider := newMockProvider()

	t.Run("success", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("MustNew() panicked unexpectedly: %v", r)
			}
		}()

		c := MustNew(provider, 100, 100)
		defer c.Close()

		if c == nil {
			t.Error("MustNew() returned nil")
		}
	})

	t.Run("panic on nil provider", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("MustNew() did not panic with nil provider")
			}
		}()

		_ = MustNew(nil, 100, 100)
	})
}

// TestHandleTouchForwarding tests that events reach the stroke canvas
// and flag the GPU pipeline dirty.
func TestHandleTouchForwarding(t *testing.T) {
	c, err := New(newMockProvider(), 100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if err := c.HandleTouch(ink.TouchEvent{ID: 1, Phase: ink.PhasePressed, Location: ink.Pt(10, 10)}); err != nil {
		t.Fatalf("HandleTouch() error = %v", err)
	}

	if got := len(c.Ink().InProgress()); got != 1 {
		t.Errorf("in progress strokes = %d, want 1", got)
	}
	if !c.IsDirty() {
		t.Error("IsDirty() = false after a touch, want true")
	}
}

// TestCanvasFlush tests the flush operation.
func TestCanvasFlush(t *testing.T) {
	c, err := New(newMockProvider(), 50, 50)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	// First flush should create pending texture
	tex, err := c.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	pending, ok := tex.(*pendingTexture)
	if !ok {
		t.Fatalf("first flush returned %T, want *pendingTexture", tex)
	}
	if pending.width != 50 || pending.height != 50 {
		t.Errorf("pending texture size = %dx%d, want 50x50", pending.width, pending.height)
	}
	if len(pending.data) != 50*50*4 {
		t.Errorf("pending data length = %d, want %d", len(pending.data), 50*50*4)
	}

	// Dirty should be cleared
	if c.IsDirty() {
		t.Error("IsDirty() after flush = true, want false")
	}

	// Second flush without changes should return same texture
	tex2, err := c.Flush()
	if err != nil {
		t.Fatalf("Second Flush() error = %v", err)
	}
	if tex2 != tex {
		t.Error("Second flush should return same texture when nothing changed")
	}
}

// TestFlushRendersStrokes tests that touch input ends up as pixels.
func TestFlushRendersStrokes(t *testing.T) {
	c, err := New(newMockProvider(), 50, 50)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	drawStroke(c, 1, ink.Pt(10, 10), ink.Pt(40, 40))

	tex, err := c.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	pending, ok := tex.(*pendingTexture)
	if !ok {
		t.Fatalf("flush returned %T, want *pendingTexture", tex)
	}

	// The default black stroke passes through (25,25).
	on := (25*50 + 25) * 4
	if pending.data[on] == 255 {
		t.Error("stroke midpoint is still background white")
	}
	// Far from the stroke the background stays white.
	off := (5*50 + 45) * 4
	if pending.data[off] != 255 {
		t.Errorf("background pixel = %d, want 255", pending.data[off])
	}
}

// TestFlushUpdatesExistingTexture tests in-place texture updates.
func TestFlushUpdatesExistingTexture(t *testing.T) {
	c, err := New(newMockProvider(), 50, 50)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if _, err := c.Flush(); err != nil {
		t.Fatalf("initial Flush() error = %v", err)
	}

	// Simulate the host having swapped the placeholder for a real texture.
	mock := &mockTexture{}
	c.texture = mock

	drawStroke(c, 1, ink.Pt(5, 5), ink.Pt(20, 20))

	tex, err := c.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if tex != any(mock) {
		t.Errorf("Flush() returned %T, want the installed texture", tex)
	}
	if mock.updated != 1 {
		t.Errorf("texture updated %d times, want 1", mock.updated)
	}
	if len(mock.data) != 50*50*4 {
		t.Errorf("uploaded data length = %d, want %d", len(mock.data), 50*50*4)
	}
	if c.IsDirty() {
		t.Error("IsDirty() after upload = true, want false")
	}
}

// TestCanvasResize tests resize functionality.
func TestCanvasResize(t *testing.T) {
	c, err := New(newMockProvider(), 100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	// Verify initial size
	w, h := c.Size()
	if w != 100 || h != 100 {
		t.Errorf("Size() = %dx%d, want 100x100", w, h)
	}

	// Resize to same size should be no-op
	if err := c.Resize(100, 100); err != nil {
		t.Errorf("Resize() same size error = %v", err)
	}
	if c.IsDirty() {
		t.Error("IsDirty() after same-size resize = true, want false")
	}

	// Resize
	if err := c.Resize(200, 150); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	w, h = c.Size()
	if w != 200 || h != 150 {
		t.Errorf("Size() after resize = %dx%d, want 200x150", w, h)
	}
	if !c.IsDirty() {
		t.Error("IsDirty() after resize = false, want true")
	}

	// The stroke canvas keeps its logical space and follows the pixel size.
	logical, pixel := c.Ink().Sizes()
	if logical != (ink.Size{Width: 100, Height: 100}) {
		t.Errorf("logical size after resize = %v, want 100x100", logical)
	}
	if pixel != (ink.Size{Width: 200, Height: 150}) {
		t.Errorf("pixel size after resize = %v, want 200x150", pixel)
	}

	// Invalid resize
	if err := c.Resize(0, 100); err == nil {
		t.Error("Resize(0, 100) error = nil, want error")
	}
}

// TestResizeDefersTextureDestruction tests that the old texture
// survives until it can no longer be referenced by in-flight GPU work.
func TestResizeDefersTextureDestruction(t *testing.T) {
	c, err := New(newMockProvider(), 100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mock := &mockTexture{}
	c.texture = mock

	if err := c.Resize(200, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if _, err := c.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if mock.destroyed {
		t.Error("old texture destroyed too early, GPU may still reference it")
	}
	if c.oldTexture != any(mock) {
		t.Error("old texture not queued for deferred destruction")
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.destroyed {
		t.Error("Close() should destroy the deferred texture")
	}
}

// TestCanvasClose tests cleanup behavior.
func TestCanvasClose(t *testing.T) {
	c, err := New(newMockProvider(), 100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mock := &mockTexture{}
	c.texture = mock

	// Close should succeed
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if !mock.destroyed {
		t.Error("Close() should destroy the current texture")
	}
	if c.Ink() != nil {
		t.Error("Ink() after close should return nil")
	}
	if c.Provider() != nil {
		t.Error("Provider() after close should return nil")
	}

	// Double close should be safe
	if err := c.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}

	// Operations on closed canvas should fail
	if err := c.HandleTouch(ink.TouchEvent{ID: 1, Phase: ink.PhasePressed}); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("HandleTouch() on closed canvas error = %v, want %v", err, ErrCanvasClosed)
	}
	if err := c.Resize(200, 200); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Resize() on closed canvas error = %v, want %v", err, ErrCanvasClosed)
	}
	if _, err := c.Flush(); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Flush() on closed canvas error = %v, want %v", err, ErrCanvasClosed)
	}
	if err := c.SetLogicalSize(ink.Size{Width: 100, Height: 100}); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("SetLogicalSize() on closed canvas error = %v, want %v", err, ErrCanvasClosed)
	}
	if c.Snapshot() != nil {
		t.Error("Snapshot() on closed canvas should return nil")
	}
}

// TestSetLogicalSize tests DPI-aware coordinate mapping.
func TestSetLogicalSize(t *testing.T) {
	c, err := New(newMockProvider(), 200, 200)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	// A 2x display: 100 logical points cover 200 pixels.
	if err := c.SetLogicalSize(ink.Size{Width: 100, Height: 100}); err != nil {
		t.Fatalf("SetLogicalSize() error = %v", err)
	}

	_ = c.HandleTouch(ink.TouchEvent{ID: 1, Phase: ink.PhasePressed, Location: ink.Pt(50, 50)})

	in := c.Ink().InProgress()
	if len(in) != 1 {
		t.Fatalf("in progress strokes = %d, want 1", len(in))
	}
	if got := in[0].At(0); got != ink.Pt(100, 100) {
		t.Errorf("stored point = %v, want (100, 100)", got)
	}
}

// TestRenderOptions tests default options.
func TestRenderOptions(t *testing.T) {
	opts := DefaultRenderOptions()

	if opts.X != 0 || opts.Y != 0 {
		t.Errorf("Default position = (%f, %f), want (0, 0)", opts.X, opts.Y)
	}
	if opts.ScaleX != 1 || opts.ScaleY != 1 {
		t.Errorf("Default scale = (%f, %f), want (1, 1)", opts.ScaleX, opts.ScaleY)
	}
	if opts.Alpha != 1 {
		t.Errorf("Default alpha = %f, want 1", opts.Alpha)
	}
	if opts.FlipY {
		t.Error("Default FlipY = true, want false")
	}
}
