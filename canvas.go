package ink

import (
	"sync"

	"github.com/gogpu/ink/surface"
)

// Canvas combines a Tracker, a Renderer and the logical-to-pixel
// coordinate mapping into a thread-safe drawing core.
//
// A single lock guards the stroke collections: it is held for the
// whole of each HandleTouch call and for the whole of each Render
// call, so a render always sees a consistent frame and an event never
// observes a half-updated tracker.
type Canvas struct {
	mu       sync.Mutex
	tracker  *Tracker
	renderer Renderer
	logical  Size
	pixel    Size

	// dirty holds at most one pending redraw request. Deposits use a
	// non-blocking send, so any number of changes between renders
	// coalesce into a single request.
	dirty      chan struct{}
	invalidate func()
}

// NewCanvas creates a canvas. With no options it uses a 4px round
// black stroke on white and has no coordinate mapping configured:
// until SetSizes is called with a valid logical size, location-bearing
// events are dropped.
func NewCanvas(opts ...Option) *Canvas {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := cfg.renderer
	if r == nil {
		r = NewStrokeRenderer(cfg.style, cfg.background)
	}

	return &Canvas{
		tracker:    NewTracker(),
		renderer:   r,
		logical:    cfg.logical,
		pixel:      cfg.pixel,
		dirty:      make(chan struct{}, 1),
		invalidate: cfg.invalidate,
	}
}

// HandleTouch feeds one touch event into the canvas.
//
// Pressed and Moved locations are converted from logical to pixel
// coordinates on the way in; if the logical size is degenerate the
// event is dropped. Released and Cancelled events never consult their
// location, so they are processed even while no mapping is configured
// and the touch lifecycle stays consistent.
//
// Any event that changes stroke state requests a redraw. The request
// is fire-and-forget: it never blocks, and repeated changes before the
// next render coalesce into one request.
func (c *Canvas) HandleTouch(ev TouchEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Phase {
	case PhasePressed, PhaseMoved:
		pt, ok := ToPixel(ev.Location, c.logical, c.pixel)
		if !ok {
			Logger().Debug("ink: dropping touch event, no valid logical size",
				"id", int64(ev.ID),
				"phase", ev.Phase.String())
			return
		}
		ev.Location = pt
	}

	if c.tracker.HandleTouch(ev) {
		c.requestRedraw()
	}
}

// Render draws the current strokes onto dst while holding the canvas
// lock, then consumes any pending redraw request so that the next
// change signals again.
func (c *Canvas) Render(dst surface.Surface) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.dirty:
	default:
	}

	return c.renderer.Render(dst, c.tracker.Completed(), c.tracker.InProgress())
}

// Dirty returns a channel that carries at most one pending redraw
// request. Event-loop integrations typically forward each receive as
// a paint event:
//
//	go func() {
//	    for range canvas.Dirty() {
//	        w.Send(paint.Event{})
//	    }
//	}()
func (c *Canvas) Dirty() <-chan struct{} {
	return c.dirty
}

// SetSizes configures the coordinate mapping: logical is the unit
// touch locations arrive in, pixel is the backing surface size.
// Changing sizes requests a redraw.
func (c *Canvas) SetSizes(logical, pixel Size) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.logical == logical && c.pixel == pixel {
		return
	}
	c.logical = logical
	c.pixel = pixel
	c.requestRedraw()
}

// Sizes returns the configured logical and pixel sizes.
func (c *Canvas) Sizes() (logical, pixel Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logical, c.pixel
}

// Completed returns the finished strokes in completion order.
func (c *Canvas) Completed() []*Path {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Completed()
}

// InProgress returns the strokes still being drawn, in press order.
func (c *Canvas) InProgress() []*Path {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.InProgress()
}

// Reset discards all strokes and requests a redraw.
func (c *Canvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tracker.Reset()
	c.requestRedraw()
	Logger().Debug("ink: canvas reset")
}

// requestRedraw deposits a redraw request if none is pending. The
// invalidate callback fires only on a fresh deposit, so callback
// consumers coalesce the same way channel consumers do.
//
// Called with c.mu held. The callback must not call back into the
// canvas synchronously.
func (c *Canvas) requestRedraw() {
	select {
	case c.dirty <- struct{}{}:
		if c.invalidate != nil {
			c.invalidate()
		}
	default:
	}
}
