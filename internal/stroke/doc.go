// Package stroke converts stroked polylines to filled outlines.
//
// The expansion follows the tiny-skia and kurbo stroking patterns: a
// stroked polyline becomes a FILL outline where the offset polyline on
// one side goes forward, the offset polyline on the other side is
// reversed, and line caps connect the two ends.
//
// # Algorithm Overview
//
// Outline expansion builds two parallel offset polylines:
//   - Forward: offset by -width/2 along the segment normals
//   - Backward: offset by +width/2 along the segment normals
//
// The final closed ring is assembled as:
//  1. Forward polyline
//  2. End cap
//  3. Backward polyline, reversed
//  4. Start cap (the ring closes implicitly)
//
// # Line Caps
//
//   - LineCapButt: flat cap ending exactly at the endpoint
//   - LineCapRound: semicircular cap with radius = width/2
//   - LineCapSquare: square cap extending width/2 beyond the endpoint
//
// # Line Joins
//
//   - LineJoinMiter: sharp corner (limited by miter limit)
//   - LineJoinRound: circular arc across the outer corner
//   - LineJoinBevel: straight line across the corner
//
// # Usage
//
//	style := stroke.Stroke{
//	    Width:      4.0,
//	    Cap:        stroke.LineCapRound,
//	    Join:       stroke.LineJoinRound,
//	    MiterLimit: 4.0,
//	}
//
//	expander := stroke.NewExpander(style)
//	rings := expander.Expand([]stroke.Point{
//	    {X: 0, Y: 0},
//	    {X: 100, Y: 0},
//	    {X: 100, Y: 100},
//	})
//
// The rings are ready for non-zero winding rasterization. Arcs from
// round caps and joins arrive pre-flattened to the expander tolerance,
// so consumers only ever see line segments.
package stroke
