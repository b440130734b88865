package overflow

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/recipecard/pkg/template"
)

// Heuristic text metrics. Test fixtures depend on these exact values.
const (
	baseCharWidthMm = 2.5
	baseFontSize    = 12.0
	pointToMm       = 0.35
	lineHeight      = 1.2
)

// CharWidth returns the assumed average glyph width in mm at fontSize points.
func CharWidth(fontSize float64) float64 {
	return baseCharWidthMm * (fontSize / baseFontSize)
}

// CharsPerLine returns how many characters fit across availableWidthMm.
// It is never less than 1.
func CharsPerLine(availableWidthMm, fontSize float64) int {
	cw := CharWidth(fontSize)
	if !(cw > 0) {
		return 1
	}
	n := math.Floor(availableWidthMm / cw)
	if !(n >= 1) {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// CountLines returns the number of typeset lines content needs at charsPerLine.
// Each explicit line wraps independently; blank lines count as one line.
// Empty content needs zero lines.
func CountLines(content string, charsPerLine int) int {
	if content == "" {
		return 0
	}
	charsPerLine = max(charsPerLine, 1)

	total := 0
	for _, line := range strings.Split(content, "\n") {
		n := utf8.RuneCountInString(strings.TrimSuffix(line, "\r"))
		if n == 0 {
			total++
			continue
		}
		total += (n + charsPerLine - 1) / charsPerLine
	}
	return total
}

// LineHeightMm returns the height of one line in mm at fontSize points.
func LineHeightMm(fontSize float64) float64 {
	return fontSize * pointToMm * lineHeight
}

// EstimateHeightMm returns the estimated typeset height of content in mm.
func EstimateHeightMm(content string, fontSize, availableWidthMm float64) float64 {
	lines := CountLines(content, CharsPerLine(availableWidthMm, fontSize))
	return float64(lines) * LineHeightMm(fontSize)
}

// AvailableWidthMm returns the section's inner width in mm: its share of the
// print width minus padding on both sides.
func AvailableWidthMm(s template.Section, size template.PrintSize) float64 {
	return s.Size.Width/100*size.Width - 2*s.Style.Padding
}

// AvailableHeight returns the section's inner height in percent of the card:
// its height minus padding on both sides, converted from mm.
func AvailableHeight(s template.Section, size template.PrintSize) float64 {
	return s.Size.Height - 2*mmToPercent(s.Style.Padding, size.Height)
}

// EstimateHeight returns the estimated height of content typeset in section s,
// in percent of the print size's height.
func EstimateHeight(content string, s template.Section, size template.PrintSize) float64 {
	mm := EstimateHeightMm(content, s.Style.FontSize, AvailableWidthMm(s, size))
	return mmToPercent(mm, size.Height)
}

// mmToPercent converts a length in mm to percent of total. A non-positive
// total yields 0.
func mmToPercent(mm, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return mm / total * 100
}
