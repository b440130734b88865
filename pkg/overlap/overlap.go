// Package overlap finds template sections whose rectangles intersect.
//
// Overlap is advisory: templates may contain overlapping sections and the
// editor highlights them instead of preventing them. [Detect] checks every
// unordered pair because overlap is not transitive.
//
// Severity is the intersection area as a percentage of the smaller section's
// area, so a small section nested inside a large one reports 100 rather than
// the share of the large one it covers.
package overlap

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/recipecard/pkg/geometry"
	"github.com/matzehuels/recipecard/pkg/template"
)

// Overlap describes one intersecting pair of sections.
type Overlap struct {
	Section1ID string  `json:"section1Id"`
	Section2ID string  `json:"section2Id"`
	Area       float64 `json:"overlapArea"` // percent of the smaller section, in [0, 100]
}

// Detect returns every intersecting section pair of t.
//
// Pairs are reported in double-loop order (i ascending, then j > i ascending),
// with Section1ID taken from index i. Each pair appears once.
func Detect(t template.Template) []Overlap {
	return DetectSections(t.Sections)
}

// DetectSections is Detect for a bare section list.
func DetectSections(sections []template.Section) []Overlap {
	var out []Overlap
	for i := 0; i < len(sections); i++ {
		ri := sections[i].Rect()
		for j := i + 1; j < len(sections); j++ {
			rj := sections[j].Rect()
			if !geometry.Intersects(ri, rj) {
				continue
			}
			out = append(out, Overlap{
				Section1ID: sections[i].ID,
				Section2ID: sections[j].ID,
				Area:       severity(ri, rj),
			})
		}
	}
	return out
}

// severity returns the intersection as a percentage of the smaller area.
func severity(a, b geometry.Rect) float64 {
	smaller := math.Min(a.Area(), b.Area())
	if smaller <= 0 {
		return 0
	}
	return geometry.Clamp(geometry.IntersectionArea(a, b)/smaller*100, 0, 100)
}

// Involved returns the ids of every section that takes part in an overlap.
func Involved(overlaps []Overlap) map[string]bool {
	ids := make(map[string]bool, 2*len(overlaps))
	for _, o := range overlaps {
		ids[o.Section1ID] = true
		ids[o.Section2ID] = true
	}
	return ids
}

// BySeverity returns a copy of overlaps ordered from most to least severe.
// Equal severities keep detection order.
func BySeverity(overlaps []Overlap) []Overlap {
	out := slices.Clone(overlaps)
	slices.SortStableFunc(out, func(a, b Overlap) int {
		switch {
		case a.Area > b.Area:
			return -1
		case a.Area < b.Area:
			return 1
		}
		return 0
	})
	return out
}

// Message formats an overlap as an editor warning.
func Message(o Overlap) string {
	return fmt.Sprintf("%s overlaps %s (%.1f%% of the smaller section)", o.Section1ID, o.Section2ID, o.Area)
}
