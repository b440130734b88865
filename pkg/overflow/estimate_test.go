package overflow

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/recipecard/pkg/template"
)

const eps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < eps }

func TestCharWidth(t *testing.T) {
	tests := []struct {
		fontSize float64
		want     float64
	}{
		{12, 2.5},
		{6, 1.25},
		{24, 5},
		{10, 2.5 * 10 / 12},
	}
	for _, tt := range tests {
		if got := CharWidth(tt.fontSize); !almostEqual(got, tt.want) {
			t.Errorf("CharWidth(%v) = %v, want %v", tt.fontSize, got, tt.want)
		}
	}
}

func TestCharsPerLine(t *testing.T) {
	tests := []struct {
		name     string
		width    float64
		fontSize float64
		want     int
	}{
		{"full card at 12pt", 76.2, 12, 30},
		{"exact fit", 25, 12, 10},
		{"narrower than a glyph", 1, 12, 1},
		{"negative width", -10, 12, 1},
		{"zero font", 50, 0, 1},
		{"nan width", math.NaN(), 12, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CharsPerLine(tt.width, tt.fontSize); got != tt.want {
				t.Errorf("CharsPerLine(%v, %v) = %d, want %d", tt.width, tt.fontSize, got, tt.want)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cpl     int
		want    int
	}{
		{"empty", "", 10, 0},
		{"short line", "salt", 10, 1},
		{"exact width", strings.Repeat("x", 10), 10, 1},
		{"wraps once", strings.Repeat("x", 11), 10, 2},
		{"blank line counts", "a\n\nb", 10, 3},
		{"only newline", "\n", 10, 2},
		{"crlf", "abc\r\ndef", 3, 2},
		{"runes not bytes", strings.Repeat("ü", 10), 10, 1},
		{"zero cpl treated as one", "abc", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountLines(tt.content, tt.cpl); got != tt.want {
				t.Errorf("CountLines(%q, %d) = %d, want %d", tt.content, tt.cpl, got, tt.want)
			}
		})
	}
}

func TestEstimateHeightMm(t *testing.T) {
	// 60 chars across 76.2mm at 12pt: 30 per line, 2 lines of 12 × 0.35 × 1.2 mm.
	got := EstimateHeightMm(strings.Repeat("a", 60), 12, 76.2)
	if want := 2 * 12 * 0.35 * 1.2; !almostEqual(got, want) {
		t.Errorf("EstimateHeightMm() = %v, want %v", got, want)
	}
	if got := EstimateHeightMm("", 12, 76.2); got != 0 {
		t.Errorf("EstimateHeightMm(empty) = %v, want 0", got)
	}
}

func TestEstimateHeight(t *testing.T) {
	size := template.MustSize(template.SizeCard3x5)
	s := template.Section{
		Size:  template.Dimensions{Width: 100, Height: 50},
		Style: template.Style{FontSize: 12},
	}

	got := EstimateHeight(strings.Repeat("a", 60), s, size)
	want := 2 * 12 * 0.35 * 1.2 / 127 * 100
	if !almostEqual(got, want) {
		t.Errorf("EstimateHeight() = %v, want %v", got, want)
	}

	long := strings.Repeat(strings.Repeat("word ", 200)+"\n", 500)
	if h := EstimateHeight(long, s, size); math.IsInf(h, 0) || math.IsNaN(h) || h <= 100 {
		t.Errorf("EstimateHeight(long) = %v, want a large finite value", h)
	}
}

func TestAvailableDimensions(t *testing.T) {
	size := template.MustSize(template.SizeCard3x5)
	s := template.Section{
		Size:  template.Dimensions{Width: 20, Height: 10},
		Style: template.Style{FontSize: 10, Padding: 2},
	}

	if got, want := AvailableWidthMm(s, size), 0.2*76.2-4; !almostEqual(got, want) {
		t.Errorf("AvailableWidthMm() = %v, want %v", got, want)
	}
	if got, want := AvailableHeight(s, size), 10-2*(2.0/127*100); !almostEqual(got, want) {
		t.Errorf("AvailableHeight() = %v, want %v", got, want)
	}
	if got := AvailableHeight(s, template.PrintSize{}); got != 10 {
		t.Errorf("AvailableHeight(zero size) = %v, want 10", got)
	}
}
