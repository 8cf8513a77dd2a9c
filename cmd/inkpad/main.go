// Command inkpad is a freehand drawing pad. It feeds window mouse and
// touch events into an ink.Canvas and blits the rendered strokes into
// a shiny window buffer.
//
// Draw with the left mouse button or any number of fingers. Press c to
// clear the canvas, q or Escape to quit.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"
	"strings"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/surface"
)

// mouseTouchID is the synthetic touch sequence used for mouse strokes.
// Real touch sequences from the driver start at 0, so the mouse gets a
// slot far away from them.
const mouseTouchID ink.TouchID = -1

func parseLineCap(s string) (surface.LineCap, error) {
	switch strings.ToLower(s) {
	case "butt":
		return surface.LineCapButt, nil
	case "round":
		return surface.LineCapRound, nil
	case "square":
		return surface.LineCapSquare, nil
	}
	return 0, fmt.Errorf("unknown line cap %q (want butt, round or square)", s)
}

func parseLineJoin(s string) (surface.LineJoin, error) {
	switch strings.ToLower(s) {
	case "miter":
		return surface.LineJoinMiter, nil
	case "round":
		return surface.LineJoinRound, nil
	case "bevel":
		return surface.LineJoinBevel, nil
	}
	return 0, fmt.Errorf("unknown line join %q (want miter, round or bevel)", s)
}

func main() {
	width := flag.Int("width", 960, "initial window width in pixels")
	height := flag.Int("height", 640, "initial window height in pixels")
	strokeWidth := flag.Float64("stroke", 4, "stroke width in pixels")
	strokeColor := flag.String("color", "#1a1a1a", "stroke color as hex")
	background := flag.String("background", "#ffffff", "background color as hex")
	capName := flag.String("cap", "round", "line cap: butt, round or square")
	joinName := flag.String("join", "round", "line join: miter, round or bevel")
	scale := flag.Float64("scale", 1, "render scale; 2 rasterizes at double resolution and downsamples")
	aa := flag.Bool("aa", true, "antialias strokes")
	flag.Parse()

	lineCap, err := parseLineCap(*capName)
	if err != nil {
		log.Fatalf("inkpad: %v", err)
	}
	lineJoin, err := parseLineJoin(*joinName)
	if err != nil {
		log.Fatalf("inkpad: %v", err)
	}
	if *scale < 0.5 || *scale > 4 {
		log.Fatalf("inkpad: scale %v out of range [0.5, 4]", *scale)
	}

	style := surface.DefaultStrokeStyle().
		WithColor(ink.Hex(*strokeColor)).
		WithWidth(*strokeWidth * *scale).
		WithCap(lineCap).
		WithJoin(lineJoin)

	canvas := ink.NewCanvas(
		ink.WithStyle(style),
		ink.WithBackground(ink.Hex(*background)),
	)

	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Width:  *width,
			Height: *height,
			Title:  "inkpad",
		})
		if err != nil {
			log.Fatalf("inkpad: new window: %v", err)
		}
		defer w.Release()

		// Forward redraw requests as paint events. The canvas coalesces
		// them, so a burst of touch events wakes this loop once.
		done := make(chan struct{})
		defer close(done)
		go func() {
			for {
				select {
				case <-canvas.Dirty():
					w.Send(paint.Event{})
				case <-done:
					return
				}
			}
		}()

		dst := surface.NewImageSurface(
			max(1, int(float64(*width)**scale)),
			max(1, int(float64(*height)**scale)),
		)
		dst.SetAntialias(*aa)
		defer dst.Close()

		var b screen.Buffer
		defer func() {
			if b != nil {
				b.Release()
			}
		}()

		var drawing bool

		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}
				// Losing focus mid-drag means the release will never
				// arrive. Cancel instead of leaving a stroke dangling.
				if drawing && e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
					canvas.HandleTouch(ink.TouchEvent{ID: mouseTouchID, Phase: ink.PhaseCancelled})
					drawing = false
				}

			case size.Event:
				if e.WidthPx <= 0 || e.HeightPx <= 0 {
					continue
				}
				surfW := max(1, int(float64(e.WidthPx)**scale))
				surfH := max(1, int(float64(e.HeightPx)**scale))

				// Events arrive in window pixels; the surface renders at
				// scale times that.
				canvas.SetSizes(
					ink.Size{Width: float64(e.WidthPx), Height: float64(e.HeightPx)},
					ink.Size{Width: float64(surfW), Height: float64(surfH)},
				)
				if err := dst.Resize(surfW, surfH); err != nil {
					log.Fatalf("inkpad: resize surface: %v", err)
				}

				if b != nil {
					b.Release()
				}
				b, err = s.NewBuffer(image.Point{e.WidthPx, e.HeightPx})
				if err != nil {
					log.Fatalf("inkpad: new buffer: %v", err)
				}
				w.Send(paint.Event{})

			case paint.Event:
				if b == nil {
					continue
				}
				if err := canvas.Render(dst); err != nil {
					log.Printf("inkpad: render: %v", err)
					continue
				}

				frame := dst.Image()
				if frame.Bounds() == b.Bounds() {
					draw.Draw(b.RGBA(), b.Bounds(), frame, image.Point{}, draw.Src)
				} else {
					xdraw.CatmullRom.Scale(b.RGBA(), b.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
				}
				drawHUD(b.RGBA(), canvas)

				w.Upload(image.Point{}, b, b.Bounds())
				w.Publish()

			case mouse.Event:
				if e.Button == mouse.ButtonLeft {
					switch e.Direction {
					case mouse.DirPress:
						drawing = true
						canvas.HandleTouch(ink.TouchEvent{
							ID:       mouseTouchID,
							Phase:    ink.PhasePressed,
							Location: ink.Pt(float64(e.X), float64(e.Y)),
						})
					case mouse.DirRelease:
						drawing = false
						canvas.HandleTouch(ink.TouchEvent{ID: mouseTouchID, Phase: ink.PhaseReleased})
					}
				}
				if drawing && e.Direction == mouse.DirNone {
					canvas.HandleTouch(ink.TouchEvent{
						ID:       mouseTouchID,
						Phase:    ink.PhaseMoved,
						Location: ink.Pt(float64(e.X), float64(e.Y)),
					})
				}

			case touch.Event:
				var phase ink.Phase
				switch e.Type {
				case touch.TypeBegin:
					phase = ink.PhasePressed
				case touch.TypeMove:
					phase = ink.PhaseMoved
				case touch.TypeEnd:
					phase = ink.PhaseReleased
				default:
					continue
				}
				canvas.HandleTouch(ink.TouchEvent{
					ID:       ink.TouchID(e.Sequence),
					Phase:    phase,
					Location: ink.Pt(float64(e.X), float64(e.Y)),
				})

			case key.Event:
				if e.Direction != key.DirPress {
					continue
				}
				switch {
				case e.Code == key.CodeEscape, e.Rune == 'q', e.Rune == 'Q':
					return
				case e.Rune == 'c', e.Rune == 'C':
					canvas.Reset()
				}
			}
		}
	})
}

// drawHUD writes the stroke counters and key hints into the bottom
// left corner of the frame.
func drawHUD(dst *image.RGBA, canvas *ink.Canvas) {
	msg := fmt.Sprintf("strokes: %d  active: %d   [c] clear  [q] quit",
		len(canvas.Completed()), len(canvas.InProgress()))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, dst.Bounds().Dy()-8),
	}
	d.DrawString(msg)
}
