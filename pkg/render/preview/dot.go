package preview

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/recipecard/pkg/overflow"
	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/template"
)

// Options configures preview generation.
type Options struct {
	// Recipe enables overflow highlighting. Labels stay generic without it.
	Recipe *recipe.Recipe

	// Size draws the template on a different print size.
	Size *template.PrintSize

	// Detailed adds geometry and font size to section labels.
	Detailed bool
}

const (
	pointsPerMm = 72 / 25.4

	// Page nodes and section nodes live in separate namespaces so no
	// section id can collide with the card outline.
	cardNode      = "page:card"
	marginsNode   = "page:margins"
	sectionPrefix = "section:"

	overlapColor  = "#d93025"
	overflowColor = "#e37400"
	outlineColor  = "#5f6368"
)

var fillColors = map[template.SectionType]string{
	template.SectionTitle:       "#fef7e0",
	template.SectionAuthor:      "#f3e8fd",
	template.SectionIngredients: "#e6f4ea",
	template.SectionSteps:       "#e8f0fe",
	template.SectionNotes:       "#f1f3f4",
	template.SectionImage:       "#fce8e6",
}

// ToDOT converts a template to Graphviz DOT with every node pinned.
// The result must be laid out with neato, as [RenderSVG] and [RenderPNG] do.
func ToDOT(t template.Template, opts Options) string {
	size := t.Size
	if opts.Size != nil {
		size = *opts.Size
	}

	involved := overlap.Involved(overlap.Detect(t))
	overflowing := map[string]overflow.SectionResult{}
	if opts.Recipe != nil {
		res := overflow.Detect(*opts.Recipe, t, overflow.WithSize(size))
		for _, sr := range res.OverflowingSections {
			overflowing[sr.SectionID] = sr
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %q {\n", t.Name)
	buf.WriteString("  graph [notranslate=true, overlap=true, bgcolor=\"transparent\", pad=\"0.2\"];\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fontname=\"Helvetica\", fontsize=7, penwidth=0.6];\n")
	buf.WriteString("\n")

	card := box{x: 0, y: 0, w: size.Width, h: size.Height}
	writeNode(&buf, cardNode, card, size, []string{
		`label=""`, `fillcolor="white"`, fmt.Sprintf("color=%q", outlineColor),
	})

	m := t.Margins
	inner := box{x: m.Left, y: m.Top, w: size.Width - m.Left - m.Right, h: size.Height - m.Top - m.Bottom}
	if inner.w > 0 && inner.h > 0 {
		writeNode(&buf, marginsNode, inner, size, []string{
			`label=""`, `style=dashed`, `color="#dadce0"`,
		})
	}

	buf.WriteString("\n")
	for _, s := range template.SortedByZIndex(t.Sections) {
		b := box{
			x: s.Position.X / 100 * size.Width,
			y: s.Position.Y / 100 * size.Height,
			w: s.Size.Width / 100 * size.Width,
			h: s.Size.Height / 100 * size.Height,
		}
		sr, over := overflowing[s.ID]
		writeNode(&buf, sectionNode(s.ID), b, size, sectionAttrs(s, involved[s.ID], over, sr, opts.Detailed))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func sectionNode(id string) string { return sectionPrefix + id }

// box is a rectangle in millimeters with a top-left origin.
type box struct{ x, y, w, h float64 }

// writeNode pins b at its center. Graphviz puts the origin bottom-left, so
// y is flipped against the card height.
func writeNode(buf *bytes.Buffer, id string, b box, size template.PrintSize, attrs []string) {
	cx := (b.x + b.w/2) * pointsPerMm
	cy := (size.Height - b.y - b.h/2) * pointsPerMm
	attrs = append([]string{
		fmt.Sprintf(`pos="%.2f,%.2f!"`, cx, cy),
		fmt.Sprintf("width=%.4f", b.w/25.4),
		fmt.Sprintf("height=%.4f", b.h/25.4),
	}, attrs...)
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
}

func sectionAttrs(s template.Section, overlapping, overflowing bool, sr overflow.SectionResult, detailed bool) []string {
	label := s.Type.String()
	if detailed {
		label += fmt.Sprintf("\n(%.4g, %.4g) %.4g×%.4g\n%gpt", s.Position.X, s.Position.Y, s.Size.Width, s.Size.Height, s.Style.FontSize)
	}
	if overflowing {
		label += fmt.Sprintf("\n+%.1f%%", sr.OverflowAmount)
	}

	fill, ok := fillColors[s.Type]
	if !ok {
		fill = "white"
	}
	attrs := []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("fillcolor=%q", fill)}
	switch {
	case overflowing:
		attrs = append(attrs, `style="filled,dashed"`, fmt.Sprintf("color=%q", overflowColor), "penwidth=1.5")
	case overlapping:
		attrs = append(attrs, fmt.Sprintf("color=%q", overlapColor), "penwidth=1.5")
	default:
		attrs = append(attrs, fmt.Sprintf("color=%q", outlineColor))
	}
	if overflowing && overlapping {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", overlapColor))
	}
	return attrs
}

// RenderSVG lays out a preview DOT graph with neato and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG lays out a preview DOT graph with neato and returns PNG bytes.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
