package render

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/matzehuels/recipecard/pkg/cache"
	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/render/preview"
	"github.com/matzehuels/recipecard/pkg/template"
)

// countingCache records calls and stores entries in memory.
type countingCache struct {
	entries    map[string][]byte
	gets, sets int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string][]byte{}}
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	c.entries[key] = data
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *countingCache) Close() error { return nil }

func classic() template.Template {
	return template.Defaults()[0]
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatSVG, true},
		{"svg", FormatSVG, true},
		{"PNG", FormatPNG, true},
		{" pdf ", FormatPDF, true},
		{"dot", FormatDOT, true},
		{"gif", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
		if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) error code = %s", tt.in, errors.GetCode(err))
		}
	}
}

func TestContentType(t *testing.T) {
	for f, want := range map[Format]string{
		FormatSVG: "image/svg+xml",
		FormatPNG: "image/png",
		FormatPDF: "application/pdf",
		FormatDOT: "text/vnd.graphviz",
	} {
		if got := f.ContentType(); got != want {
			t.Errorf("%s.ContentType() = %q, want %q", f, got, want)
		}
	}
}

func TestRenderDOTBypassesCache(t *testing.T) {
	c := newCountingCache()
	r := NewRenderer(c, time.Hour)

	art, err := r.Render(context.Background(), classic(), preview.Options{}, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(art.Data, []byte("graph")) {
		t.Errorf("DOT artifact = %s", art.Data)
	}
	if c.gets != 0 || c.sets != 0 {
		t.Errorf("DOT touched the cache: %d gets, %d sets", c.gets, c.sets)
	}
}

func TestRenderUsesCache(t *testing.T) {
	ctx := context.Background()
	c := newCountingCache()
	r := NewRenderer(c, time.Hour)

	first, err := r.Render(ctx, classic(), preview.Options{}, FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !bytes.Contains(first.Data, []byte("<svg")) {
		t.Fatalf("first render cached=%v", first.Cached)
	}

	second, err := r.Render(ctx, classic(), preview.Options{}, FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || !bytes.Equal(first.Data, second.Data) {
		t.Errorf("second render cached=%v", second.Cached)
	}
	if c.sets != 1 {
		t.Errorf("sets = %d, want 1", c.sets)
	}

	// A different layout is a different key.
	moved := template.UpdateSection(classic(), classic().Sections[0].ID, template.SectionPatch{
		Position: &template.Position{X: 42, Y: 42},
	})
	third, err := r.Render(ctx, moved, preview.Options{}, FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("moved section served from cache")
	}
}

func TestRenderServesCachedBytes(t *testing.T) {
	ctx := context.Background()
	c := newCountingCache()
	tmpl := classic()
	key := cache.PreviewKey(preview.ToDOT(tmpl, preview.Options{}), string(FormatPNG))
	c.entries[key] = []byte("cached png")

	art, err := NewRenderer(c, 0).Render(ctx, tmpl, preview.Options{}, FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	if !art.Cached || string(art.Data) != "cached png" {
		t.Errorf("Render() = %q cached=%v", art.Data, art.Cached)
	}
}

func TestRenderPDFWithoutConverter(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "recipecard-no-such-converter"
	defer func() { rsvgBinary = old }()

	_, err := NewRenderer(nil, 0).Render(context.Background(), classic(), preview.Options{}, FormatPDF)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Render(pdf) error = %v, want UNSUPPORTED", err)
	}
}

func TestToPDF(t *testing.T) {
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	svg, err := preview.RenderSVG(context.Background(), preview.ToDOT(classic(), preview.Options{}))
	if err != nil {
		t.Fatal(err)
	}
	pdf, err := ToPDF(context.Background(), svg)
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF() output does not start with %%PDF")
	}
}
