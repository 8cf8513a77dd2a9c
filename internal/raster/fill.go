// Package raster provides scanline rasterization of closed polygons.
package raster

import "math"

// Blitter receives horizontal pixel spans with a uniform alpha.
// Implementations blend the spans into their backing store.
type Blitter interface {
	BlitSpan(y, x0, x1 int, alpha uint8)
}

// subsamples is the vertical supersampling factor used by FillAA.
const subsamples = 4

// Filler rasterizes closed polygons using the non-zero winding rule.
// A Filler is not safe for concurrent use.
type Filler struct {
	width  int
	height int
	aet    *ActiveEdgeTable
	cov    []float64
}

// NewFiller creates a filler clipped to the given dimensions.
func NewFiller(width, height int) *Filler {
	return &Filler{
		width:  width,
		height: height,
		aet:    NewActiveEdgeTable(),
	}
}

// Fill rasterizes rings onto the blitter with hard edges.
// Each ring is implicitly closed from its last point to its first.
// Overlapping rings fill once under the non-zero winding rule.
func (f *Filler) Fill(b Blitter, rings [][]Point) {
	edges := buildEdges(rings)
	if len(edges) == 0 {
		return
	}

	yMin, yMax := edgeYBounds(edges, f.height)
	for y := yMin; y < yMax; y++ {
		scanY := float64(y) + 0.5
		f.scan(edges, scanY)
		f.spansNonZero(func(x1, x2 float64) {
			xi1, xi2 := pixelSpan(x1, x2, f.width)
			if xi1 < xi2 {
				b.BlitSpan(y, xi1, xi2, 0xFF)
			}
		})
	}
}

// FillAA rasterizes rings with antialiased edges. Coverage is
// accumulated from 4x vertical supersampling combined with fractional
// horizontal span endpoints.
func (f *Filler) FillAA(b Blitter, rings [][]Point) {
	edges := buildEdges(rings)
	if len(edges) == 0 {
		return
	}

	if cap(f.cov) < f.width {
		f.cov = make([]float64, f.width)
	}
	cov := f.cov[:f.width]

	yMin, yMax := edgeYBounds(edges, f.height)
	for y := yMin; y < yMax; y++ {
		clear(cov)
		covered := false
		for s := range subsamples {
			scanY := float64(y) + (float64(s)+0.5)/subsamples
			f.scan(edges, scanY)
			f.spansNonZero(func(x1, x2 float64) {
				if accumulateSpan(cov, x1, x2) {
					covered = true
				}
			})
		}
		if covered {
			flushRow(b, y, cov)
		}
	}
}

// scan rebuilds the active edge table for the given scanline.
func (f *Filler) scan(edges []Edge, y float64) {
	f.aet.Clear()
	for _, e := range edges {
		if e.y0 <= y && y < e.y1 {
			f.aet.AddAtY(e, y)
		}
	}
	f.aet.Sort()
}

// spansNonZero walks the active edges and emits filled spans using the
// non-zero winding rule.
func (f *Filler) spansNonZero(emit func(x1, x2 float64)) {
	winding := 0
	var x1 float64
	for _, e := range f.aet.Edges() {
		if winding == 0 {
			x1 = e.x
		}
		winding += e.dir
		if winding == 0 {
			emit(x1, e.x)
		}
	}
}

// buildEdges converts rings to scanline edges, skipping horizontal
// segments which contribute nothing to winding.
func buildEdges(rings [][]Point) []Edge {
	var n int
	for _, ring := range rings {
		n += len(ring)
	}
	edges := make([]Edge, 0, n)
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		for i, p0 := range ring {
			p1 := ring[(i+1)%len(ring)]
			if math.Abs(p1.Y-p0.Y) < 0.001 {
				continue
			}
			edges = append(edges, NewEdge(p0, p1))
		}
	}
	return edges
}

// edgeYBounds returns the integer scanline range covered by the edges,
// clamped to [0, height).
func edgeYBounds(edges []Edge, height int) (int, int) {
	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for _, e := range edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}

	y0 := int(math.Floor(yMin))
	y1 := int(math.Ceil(yMax))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > height {
		y1 = height
	}
	return y0, y1
}

// pixelSpan converts a float span to pixel indices using the
// pixel-center rule: pixel x is inside iff x+0.5 lies in [x1, x2).
func pixelSpan(x1, x2 float64, width int) (int, int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	xi1 := int(math.Floor(x1 + 0.5))
	xi2 := int(math.Floor(x2 + 0.5))
	if xi1 < 0 {
		xi1 = 0
	}
	if xi2 > width {
		xi2 = width
	}
	return xi1, xi2
}

// accumulateSpan adds one subsample's worth of coverage for [x1, x2)
// to the row buffer. Reports whether any cell was touched.
func accumulateSpan(cov []float64, x1, x2 float64) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	width := float64(len(cov))
	if x2 <= 0 || x1 >= width {
		return false
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > width {
		x2 = width
	}
	if x1 >= x2 {
		return false
	}

	const w = 1.0 / subsamples
	ix1 := int(x1)
	ix2 := int(x2)
	if ix1 == ix2 {
		cov[ix1] += (x2 - x1) * w
		return true
	}

	cov[ix1] += (float64(ix1+1) - x1) * w
	for x := ix1 + 1; x < ix2; x++ {
		cov[x] += w
	}
	if ix2 < len(cov) {
		cov[ix2] += (x2 - float64(ix2)) * w
	}
	return true
}

// flushRow converts accumulated coverage to alpha spans, merging runs
// of equal alpha into single blits.
func flushRow(b Blitter, y int, cov []float64) {
	x := 0
	for x < len(cov) {
		a := quantize(cov[x])
		if a == 0 {
			x++
			continue
		}
		run := x + 1
		for run < len(cov) && quantize(cov[run]) == a {
			run++
		}
		b.BlitSpan(y, x, run, a)
		x = run
	}
}

// quantize converts coverage in [0, 1] to 8-bit alpha.
func quantize(c float64) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 0xFF
	}
	return uint8(c*255 + 0.5)
}
