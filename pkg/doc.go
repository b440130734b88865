// Package pkg provides the core libraries for Recipecard recipe card layouts.
//
// # Overview
//
// Recipecard places a recipe's title, ingredients, steps and other content
// into sections on a printed card or page. Section geometry is expressed in
// percent of the page, so a layout keeps its proportions across print sizes.
// The libraries answer two questions about a layout: do any sections overlap,
// and will a given recipe's text fit?
//
// The typical data flow:
//
//	Template (+ Recipe)
//	         ↓
//	    [template] package (edit sections, clamp into the page)
//	         ↓
//	    [overlap] / [overflow] packages (detect problems)
//	         ↓
//	    [check] package (one report per template)
//	         ↓
//	    CLI, HTTP API, SVG/PNG/PDF preview
//
// # Quick Start
//
//	t := template.New("Weeknight", template.MustSize(template.SizeCard4x6))
//	t = template.AddSection(t, template.SectionTitle)
//	t = template.AddSection(t, template.SectionIngredients)
//
//	for _, o := range overlap.Detect(t) {
//	    fmt.Println(overlap.Message(o))
//	}
//
//	res := overflow.Detect(rec, t, overflow.WithSize(template.MustSize(template.SizeA5)))
//	for _, sr := range res.OverflowingSections {
//	    fmt.Println(overflow.Message(sr))
//	}
//
// # Main Packages
//
// ## Layout
//
// [template] - Print sizes, sections, templates and the pure mutations on
// them. Every mutation returns a new template with all sections clamped into
// the page.
//
// [geometry] - Rectangle intersection and containment in page percent.
//
// [recipe] - The recipe content placed into sections.
//
// ## Analysis
//
// [overlap] - Pairwise section overlap detection, ordered by severity.
//
// [overflow] - Content length estimation from font size, padding and print
// size, and per-section overflow detection.
//
// [check] - Runs both detectors against stored templates.
//
// ## Infrastructure
//
// [store] - Template persistence: memory, file, Redis and MongoDB backends.
// Default templates cannot be deleted.
//
// [cache] - Rendered preview cache: file, Redis or none.
//
// [render] - Preview rendering through Graphviz, with PDF conversion.
//
// [io] - JSON and TOML import and export of templates and recipes.
//
// [config] - TOML config file plus RECIPECARD_* environment overrides.
//
// [api] - HTTP API over a template store.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/overflow/...  # Specific package
//	go test -run Example        # Examples only
//
// [template]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/template
// [geometry]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/geometry
// [recipe]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/recipe
// [overlap]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/overlap
// [overflow]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/overflow
// [check]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/check
// [store]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/recipecard/pkg/errors
package pkg
