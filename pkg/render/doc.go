// Package render produces printable preview artifacts for templates.
//
// # Overview
//
// A [Renderer] turns a template into an SVG, PNG, PDF or DOT preview. The
// layout graph itself is built by the [preview] subpackage; this package
// chooses the output format, converts SVG to PDF when asked, and keeps
// finished artifacts in a [cache.Cache] keyed by the preview graph.
//
//	r := render.NewRenderer(cache.NewNullCache(), 0)
//	art, err := r.Render(ctx, tmpl, preview.Options{Recipe: &rec}, render.FormatPDF)
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF using the external rsvg-convert tool (from
// librsvg). SVG and PNG are produced in-process by graphviz.
package render
