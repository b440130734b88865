// Package geometry provides percent-space rectangle math for card layouts.
//
// All coordinates live in card space: a normalized [0,100]×[0,100] plane that
// represents a template's printable area independent of physical units. The
// origin is the top-left corner and y grows downward, so Top is the smaller
// vertical coordinate and Bottom the larger.
//
// # Intersection Convention
//
// Rectangles are closed-open: two rectangles whose edges merely touch do not
// intersect. The edge test is applied verbatim to zero-area rectangles too: a
// zero-width rectangle strictly inside another intersects it, one lying on its
// border does not.
//
//	a := geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50}
//	b := geometry.Rect{X: 50, Y: 0, Width: 50, Height: 50}
//	geometry.Intersects(a, b) // false: the shared edge at x=50 does not count
package geometry
