// Package preview renders a template's layout as an image for review.
//
// # Overview
//
// Each section becomes a box pinned at its position on the card, drawn to
// scale in points (1mm = 72/25.4pt). The card outline and its printable
// margin are drawn underneath, and sections are painted in ascending ZIndex
// order so the preview matches what prints on top.
//
// Problems are highlighted:
//   - overlapping sections get a red outline
//   - overflowing sections (when a recipe is given) get a dashed orange
//     outline and the overflow amount in their label
//
// # Usage
//
//	dot := preview.ToDOT(tmpl, preview.Options{Recipe: &rec})
//	svg, err := preview.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] with the neato engine,
// which honors pinned node positions. SVG and PNG are produced in-process.
package preview
