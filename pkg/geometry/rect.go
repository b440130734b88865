package geometry

import "math"

// Rect is an axis-aligned rectangle in card space.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the left edge (X).
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge (X + Width).
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the top edge (Y).
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge (Y + Height).
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns Width × Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Intersects reports whether a and b share interior area.
// Touching edges do not count as an intersection.
func Intersects(a, b Rect) bool {
	return !(a.Right() <= b.Left() ||
		b.Right() <= a.Left() ||
		a.Bottom() <= b.Top() ||
		b.Bottom() <= a.Top())
}

// IntersectionArea returns the area shared by a and b, or 0 when they are disjoint.
func IntersectionArea(a, b Rect) float64 {
	w := math.Min(a.Right(), b.Right()) - math.Max(a.Left(), b.Left())
	h := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Contains reports whether inner lies fully inside outer (edges inclusive).
func Contains(outer, inner Rect) bool {
	return inner.Left() >= outer.Left() &&
		inner.Top() >= outer.Top() &&
		inner.Right() <= outer.Right() &&
		inner.Bottom() <= outer.Bottom()
}

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
// NaN is treated as 0.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return math.Max(lo, math.Min(v, hi))
}

// Card is the full card-space rectangle.
var Card = Rect{X: 0, Y: 0, Width: 100, Height: 100}
