package stroke

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Add returns the point offset by a vector.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the difference between two points as a vector.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negated vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared length of the vector.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length < 1e-10 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Perp returns the perpendicular vector (rotated 90 degrees counter-clockwise).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Angle returns the angle of the vector in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Stroke defines the style for outline expansion.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns a stroke with default settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// Expander converts stroked polylines to filled outlines.
//
// The expansion builds two parallel offset polylines, one on each side
// of the input, connects them with caps, and returns the result as
// closed rings ready for non-zero winding rasterization. Round caps
// and joins are flattened to line segments within the tolerance.
type Expander struct {
	style     Stroke
	tolerance float64

	halfWidth    float64
	miterLimitSq float64
	joinThresh   float64

	forward  []Point
	backward []Point
	output   [][]Point

	startNorm Vec2
	startTan  Vec2
	lastNorm  Vec2
	lastTan   Vec2
	started   bool
}

// NewExpander creates an expander with the given style. Non-positive
// widths are clamped to 1 and miter limits below 1 to 1.
func NewExpander(style Stroke) *Expander {
	if style.Width <= 0 {
		style.Width = 1
	}
	if style.MiterLimit < 1 {
		style.MiterLimit = 1
	}
	return &Expander{
		style:     style,
		tolerance: 0.25,
	}
}

// SetTolerance sets the arc flattening tolerance.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand converts a polyline to outline rings. A single point yields
// cap-dependent dot geometry; butt caps make a point invisible.
// Consecutive duplicate points are dropped first.
func (e *Expander) Expand(points []Point) [][]Point {
	e.reset()

	pts := dedupe(points)
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return e.dot(pts[0])
	}

	for i := 1; i < len(pts); i++ {
		tan := pts[i].Sub(pts[i-1]).Normalize()
		if !e.started {
			e.begin(pts[0], tan)
		} else {
			e.join(pts[i-1], tan)
		}
		e.line(pts[i], tan)
	}
	e.finish(pts[0], pts[len(pts)-1])

	return e.output
}

// reset clears the expander state for a new expansion.
func (e *Expander) reset() {
	e.halfWidth = 0.5 * e.style.Width
	e.miterLimitSq = e.style.MiterLimit * e.style.MiterLimit
	e.joinThresh = 2.0 * e.tolerance / e.style.Width
	e.forward = make([]Point, 0, 64)
	e.backward = make([]Point, 0, 64)
	e.output = nil
	e.startNorm = Vec2{}
	e.startTan = Vec2{}
	e.lastNorm = Vec2{}
	e.lastTan = Vec2{}
	e.started = false
}

// begin starts the offset polylines at the first point.
func (e *Expander) begin(p Point, tan Vec2) {
	norm := tan.Perp().Scale(e.halfWidth)
	e.forward = append(e.forward, p.Add(norm.Neg()))
	e.backward = append(e.backward, p.Add(norm))
	e.startTan = tan
	e.startNorm = norm
	e.started = true
}

// line extends both offset polylines along a segment ending at p.
func (e *Expander) line(p Point, tan Vec2) {
	norm := tan.Perp().Scale(e.halfWidth)
	e.forward = append(e.forward, p.Add(norm.Neg()))
	e.backward = append(e.backward, p.Add(norm))
	e.lastTan = tan
	e.lastNorm = norm
}

// join connects the previous segment to the next at vertex p, where
// tan is the unit tangent of the next segment.
func (e *Expander) join(p Point, tan Vec2) {
	u0, u1 := e.lastTan, tan
	cross := u0.Cross(u1)
	dot := u0.Dot(u1)
	norm := u1.Perp().Scale(e.halfWidth)

	// For unit tangents hypot(cross, dot) == 1, so the turn is
	// insignificant when |cross| stays under the threshold. Still
	// connect both sides to keep the offset polylines continuous.
	if dot > 0 && math.Abs(cross) < e.joinThresh {
		e.forward = append(e.forward, p.Add(norm.Neg()))
		e.backward = append(e.backward, p.Add(norm))
		return
	}

	switch e.style.Join {
	case LineJoinBevel:
		e.bevelJoin(p, norm)
	case LineJoinMiter:
		e.miterJoin(p, norm, u0, u1, cross, dot)
	case LineJoinRound:
		e.roundJoin(p, norm, cross, dot)
	}
}

// bevelJoin connects both sides straight across the corner.
func (e *Expander) bevelJoin(p Point, norm Vec2) {
	e.forward = append(e.forward, p.Add(norm.Neg()))
	e.backward = append(e.backward, p.Add(norm))
}

// miterJoin extends the outer side to the miter point when it is
// within the miter limit, falling back to a bevel otherwise.
func (e *Expander) miterJoin(p Point, norm, u0, u1 Vec2, cross, dot float64) {
	// Miter length ratio for unit tangents: m^2 = 2/(1+dot).
	// Fall back to a bevel when the ratio exceeds the limit.
	if 2.0 > (1.0+dot)*e.miterLimitSq {
		e.bevelJoin(p, norm)
		return
	}

	if cross > 0 {
		// Outer corner on the forward side
		fpLast := p.Add(e.lastNorm.Neg())
		fpThis := p.Add(norm.Neg())
		h := u0.Cross(fpThis.Sub(fpLast)) / cross
		e.forward = append(e.forward, fpThis.Add(u1.Scale(-h)))
		e.backward = append(e.backward, p)
	} else if cross < 0 {
		// Outer corner on the backward side
		fpLast := p.Add(e.lastNorm)
		fpThis := p.Add(norm)
		h := u0.Cross(fpThis.Sub(fpLast)) / cross
		e.backward = append(e.backward, fpThis.Add(u1.Scale(-h)))
		e.forward = append(e.forward, p)
	}
	e.bevelJoin(p, norm)
}

// roundJoin sweeps a flattened arc across the outer side of the turn.
func (e *Expander) roundJoin(p Point, norm Vec2, cross, dot float64) {
	angle := math.Atan2(cross, dot)
	if cross > 0 {
		e.appendArc(&e.forward, p, e.lastNorm.Neg().Angle(), angle)
	} else {
		e.appendArc(&e.backward, p, e.lastNorm.Angle(), angle)
	}
	e.bevelJoin(p, norm)
}

// finish assembles the forward side, end cap, reversed backward side
// and start cap into one closed ring.
func (e *Expander) finish(start, end Point) {
	if !e.started {
		return
	}

	ring := e.forward

	// End cap: the ring runs from end-lastNorm to end+lastNorm. A butt
	// cap is the implicit connecting edge.
	switch e.style.Cap {
	case LineCapRound:
		e.appendArc(&ring, end, e.lastNorm.Neg().Angle(), math.Pi)
	case LineCapSquare:
		ext := e.lastTan.Scale(e.halfWidth)
		ring = append(ring,
			end.Add(e.lastNorm.Neg()).Add(ext),
			end.Add(e.lastNorm).Add(ext))
	}

	for i := len(e.backward) - 1; i >= 0; i-- {
		ring = append(ring, e.backward[i])
	}

	// Start cap: from start+startNorm back to the ring origin at
	// start-startNorm. The ring closes implicitly.
	switch e.style.Cap {
	case LineCapRound:
		e.appendArc(&ring, start, e.startNorm.Angle(), math.Pi)
	case LineCapSquare:
		ext := e.startTan.Scale(-e.halfWidth)
		ring = append(ring,
			start.Add(e.startNorm).Add(ext),
			start.Add(e.startNorm.Neg()).Add(ext))
	}

	e.output = append(e.output, ring)
}

// dot emits the geometry for a single-point stroke.
func (e *Expander) dot(p Point) [][]Point {
	h := e.halfWidth
	switch e.style.Cap {
	case LineCapRound:
		steps := e.arcSteps(2 * math.Pi)
		if steps < 8 {
			steps = 8
		}
		ring := make([]Point, 0, steps)
		for i := range steps {
			a := 2 * math.Pi * float64(i) / float64(steps)
			ring = append(ring, Point{X: p.X + h*math.Cos(a), Y: p.Y + h*math.Sin(a)})
		}
		return [][]Point{ring}
	case LineCapSquare:
		ring := []Point{
			{X: p.X - h, Y: p.Y - h},
			{X: p.X + h, Y: p.Y - h},
			{X: p.X + h, Y: p.Y + h},
			{X: p.X - h, Y: p.Y + h},
		}
		return [][]Point{ring}
	}
	// A butt cap has no extent at a single point.
	return nil
}

// appendArc appends the intermediate points of an arc around center,
// starting at angle a0 and sweeping by sweep. The exact endpoints are
// the caller's responsibility, keeping ring joints free of float drift.
func (e *Expander) appendArc(out *[]Point, center Point, a0, sweep float64) {
	steps := e.arcSteps(sweep)
	for i := 1; i < steps; i++ {
		a := a0 + sweep*float64(i)/float64(steps)
		*out = append(*out, Point{
			X: center.X + e.halfWidth*math.Cos(a),
			Y: center.Y + e.halfWidth*math.Sin(a),
		})
	}
}

// arcSteps returns the number of chords needed to keep the sagitta of
// each chord within the tolerance at the stroke radius.
func (e *Expander) arcSteps(sweep float64) int {
	r := e.halfWidth
	if r <= e.tolerance {
		return 1
	}
	maxStep := 2 * math.Acos(1-e.tolerance/r)
	steps := int(math.Ceil(math.Abs(sweep) / maxStep))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// dedupe drops consecutive duplicate points.
func dedupe(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && p.Sub(out[len(out)-1]).LengthSquared() < 1e-18 {
			continue
		}
		out = append(out, p)
	}
	return out
}
