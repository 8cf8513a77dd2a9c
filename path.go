package ink

import "github.com/google/uuid"

// Path is the polyline traced by one touch from press to release.
//
// Paths are created and mutated only by a Tracker; everything handed
// out through the public accessors is a copy, so callers can hold on
// to the results across frames.
type Path struct {
	id     uuid.UUID
	seq    uint64
	points []Point
}

// newPath creates a path starting at the press location.
// seq records press order so concurrent strokes render deterministically.
func newPath(seq uint64, start Point) *Path {
	return &Path{
		id:     uuid.New(),
		seq:    seq,
		points: append(make([]Point, 0, 16), start),
	}
}

// appendPoint extends the polyline.
func (p *Path) appendPoint(pt Point) {
	p.points = append(p.points, pt)
}

// ID returns the unique identifier assigned at press time.
// The ID is stable for the lifetime of the path, including after the
// path moves to the completed collection.
func (p *Path) ID() uuid.UUID {
	return p.id
}

// Len returns the number of points recorded so far.
func (p *Path) Len() int {
	return len(p.points)
}

// At returns the i-th point. It panics if i is out of range, matching
// slice indexing semantics.
func (p *Path) At(i int) Point {
	return p.points[i]
}

// Points returns a copy of the recorded polyline.
func (p *Path) Points() []Point {
	pts := make([]Point, len(p.points))
	copy(pts, p.points)
	return pts
}

// Bounds returns the axis-aligned bounding box of the polyline.
// A path always has at least one point, so the box is well defined.
func (p *Path) Bounds() (min, max Point) {
	min = p.points[0]
	max = p.points[0]
	for _, pt := range p.points[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	return min, max
}

// Clone creates a deep copy of the path. The copy keeps the same ID.
func (p *Path) Clone() *Path {
	return &Path{
		id:     p.id,
		seq:    p.seq,
		points: p.Points(),
	}
}
