package render

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/recipecard/pkg/cache"
	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/render/preview"
	"github.com/matzehuels/recipecard/pkg/template"
)

// Format is a preview output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatDOT}

// ParseFormat converts a format name such as "svg" or "PDF".
// The empty string selects SVG.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG, FormatPDF, FormatDOT:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported preview format %q (want svg, png, pdf or dot)", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "image/svg+xml"
}

// Artifact is a rendered preview.
type Artifact struct {
	Format Format
	Data   []byte
	Cached bool
}

// Renderer renders previews through a cache. DOT output is never cached since
// it is the cache key's source.
//
// Cache failures are logged and otherwise ignored; a broken cache only costs
// a re-render.
type Renderer struct {
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewRenderer creates a renderer. A nil cache disables caching.
func NewRenderer(c cache.Cache, ttl time.Duration) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Renderer{Cache: c, TTL: ttl, Logger: log.Default()}
}

// Render draws t in format f.
func (r *Renderer) Render(ctx context.Context, t template.Template, opts preview.Options, f Format) (Artifact, error) {
	dot := preview.ToDOT(t, opts)
	if f == FormatDOT {
		return Artifact{Format: f, Data: []byte(dot)}, nil
	}

	key := cache.PreviewKey(dot, string(f))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("preview cache read failed", "template", t.ID, "err", err)
	}
	if hit {
		r.Logger.Debug("preview cache hit", "template", t.ID, "format", f)
		return Artifact{Format: f, Data: data, Cached: true}, nil
	}

	data, err = produce(ctx, dot, f)
	if err != nil {
		return Artifact{}, err
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("preview cache write failed", "template", t.ID, "err", err)
	}
	return Artifact{Format: f, Data: data}, nil
}

func produce(ctx context.Context, dot string, f Format) ([]byte, error) {
	switch f {
	case FormatSVG:
		return preview.RenderSVG(ctx, dot)
	case FormatPNG:
		return preview.RenderPNG(ctx, dot)
	case FormatPDF:
		svg, err := preview.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported preview format %q", f)
}
