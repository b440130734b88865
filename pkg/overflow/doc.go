// Package overflow predicts whether a recipe's text fits its template sections.
//
// The estimate is a heuristic tuned for warnings, not a typesetter. It assumes
// an average glyph width of 2.5mm at 12pt, scaled linearly with font size, and a
// line height of 1.2 × the font size (1pt ≈ 0.35mm):
//
//	charWidth    = 2.5mm × fontSize/12
//	charsPerLine = max(1, floor(availableWidth / charWidth))
//	lines        = Σ max(1, ceil(len(line) / charsPerLine))   per explicit line
//	height       = lines × fontSize × 0.35 × 1.2              mm
//
// Heights are converted to percent of the print size's height so they compare
// directly with section geometry. Empty content estimates to zero.
//
// [Detect] applies the estimate to every section of a template and reports
// which ones overflow. Results are advisory: nothing here blocks printing.
package overflow
