package ink

// Size is a width and height pair, in either logical or pixel units.
type Size struct {
	Width, Height float64
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// ToPixel converts a point from logical to pixel coordinates using a
// per-axis linear scale:
//
//	pixel.X = pixelSize.Width  * p.X / logicalSize.Width
//	pixel.Y = pixelSize.Height * p.Y / logicalSize.Height
//
// The second return value is false when logicalSize has a non-positive
// dimension, in which case no conversion is possible and the caller
// should drop the event. ToPixel never divides by zero.
func ToPixel(p Point, logicalSize, pixelSize Size) (Point, bool) {
	if !logicalSize.Valid() {
		return Point{}, false
	}
	return Point{
		X: pixelSize.Width * p.X / logicalSize.Width,
		Y: pixelSize.Height * p.Y / logicalSize.Height,
	}, true
}
