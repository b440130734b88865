package template

import (
	"math"

	"github.com/matzehuels/recipecard/pkg/geometry"
)

// minExtent is the smallest width or height a section may have, in percent.
const minExtent = 1.0

// Clamp returns s moved and resized so it lies fully inside the card.
//
// The position is clamped first against the original size, then the size is
// clamped against the corrected position:
//
//	x' = clamp(x, 0, 100-w)      y' = clamp(y, 0, 100-h)
//	w' = clamp(w, 1, 100-x')     h' = clamp(h, 1, 100-y')
//
// Sizes below the 1% floor count as 1% when bounding the position, otherwise a
// zero-width section at x=100 would grow past the right edge.
// A section wider or taller than the card is pinned to 0 and shrunk to 100.
// Clamp never fails and Clamp(Clamp(s)) == Clamp(s).
func Clamp(s Section) Section {
	w, h := finite(s.Size.Width), finite(s.Size.Height)

	x := geometry.Clamp(s.Position.X, 0, 100-max(w, minExtent))
	y := geometry.Clamp(s.Position.Y, 0, 100-max(h, minExtent))

	s.Position = Position{X: x, Y: y}
	s.Size = Dimensions{
		Width:  geometry.Clamp(w, minExtent, 100-x),
		Height: geometry.Clamp(h, minExtent, 100-y),
	}
	return s
}

// InBounds reports whether s already satisfies the boundary constraint.
func InBounds(s Section) bool {
	return s.Position.X >= 0 && s.Position.Y >= 0 &&
		s.Size.Width >= minExtent && s.Size.Height >= minExtent &&
		s.Position.X+s.Size.Width <= 100 &&
		s.Position.Y+s.Size.Height <= 100
}

// finite maps NaN to 0 so it cannot poison the clamp bounds.
func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
