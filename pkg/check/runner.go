package check

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/recipecard/pkg/observability"
	"github.com/matzehuels/recipecard/pkg/overflow"
	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/store"
	"github.com/matzehuels/recipecard/pkg/template"
)

// Runner executes checks against a template store.
//
// The Runner holds no per-check state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default is used.
// The store may be nil when every check passes Options.Template.
func NewRunner(s store.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: s, Logger: logger}
}

// Run resolves the template and checks it for overlaps and, when a recipe is
// given, for overflow.
func (r *Runner) Run(ctx context.Context, opts Options) (report *Report, err error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	id := opts.TemplateID
	if opts.Template != nil {
		id = opts.Template.ID
	}
	start := time.Now()
	observability.Check().OnCheckStart(ctx, id)
	defer func() {
		overlaps, overflowing := 0, 0
		if report != nil {
			overlaps, overflowing = len(report.Overlaps), report.OverflowCount()
		}
		observability.Check().OnCheckComplete(ctx, id, overlaps, overflowing, time.Since(start), err)
	}()

	resolveStart := time.Now()
	tmpl, err := r.resolve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve template: %w", err)
	}
	report = &Report{Template: tmpl}
	report.Stats.ResolveTime = time.Since(resolveStart)
	report.Stats.SectionCount = len(tmpl.Sections)

	overlapStart := time.Now()
	report.Overlaps = overlap.Detect(tmpl)
	report.Stats.OverlapTime = time.Since(overlapStart)

	r.Logger.Debug("checked overlaps",
		"template", tmpl.ID,
		"sections", len(tmpl.Sections),
		"overlaps", len(report.Overlaps),
		"duration", report.Stats.OverlapTime)

	if opts.Recipe != nil {
		overflowStart := time.Now()
		res := overflow.Detect(*opts.Recipe, tmpl, sizeOption(opts.Size)...)
		report.Overflow = &res
		report.Stats.OverflowTime = time.Since(overflowStart)

		r.Logger.Debug("estimated overflow",
			"template", tmpl.ID,
			"size", res.Size.Name,
			"overflowing", len(res.OverflowingSections),
			"duration", report.Stats.OverflowTime)
	}

	report.Warnings = warnings(report.Overlaps, report.Overflow)
	r.Logger.Info("checked template",
		"template", tmpl.ID,
		"overlaps", len(report.Overlaps),
		"overflowing", report.OverflowCount(),
		"duration", time.Since(start))
	return report, nil
}

// All checks every stored template against rec and returns the reports in
// store order. It is used to find which templates a recipe fits.
func (r *Runner) All(ctx context.Context, rec *recipe.Recipe) ([]*Report, error) {
	if r.Store == nil {
		return nil, fmt.Errorf("check all: no template store")
	}
	templates, err := r.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	reports := make([]*Report, 0, len(templates))
	for i := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := r.Run(ctx, Options{Template: &templates[i], Recipe: rec})
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *Runner) resolve(ctx context.Context, opts Options) (template.Template, error) {
	if opts.Template != nil {
		return opts.Template.Clone(), nil
	}
	if r.Store == nil {
		return template.Template{}, fmt.Errorf("no template store for %s", opts.TemplateID)
	}
	return r.Store.Get(ctx, opts.TemplateID)
}

// sizeOption assumes name was accepted by Options.Validate.
func sizeOption(name string) []overflow.Option {
	size, err := template.ParseSize(name)
	if name == "" || err != nil {
		return nil
	}
	return []overflow.Option{overflow.WithSize(size)}
}
