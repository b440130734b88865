// Package check runs the print-readiness checks for a template.
//
// A check composes the layout core into one report:
//
//  1. Resolve: load the template from a store (or take an unsaved one)
//  2. Overlap: find intersecting sections
//  3. Overflow: estimate whether a recipe's text fits each section
//
// Findings are advisory. A report with overlaps or overflow is still a
// successful check; only failing to resolve the template or recipe is an error.
//
// # Usage
//
//	runner := check.NewRunner(st, logger)
//	report, err := runner.Run(ctx, check.Options{
//	    TemplateID: "default-card-4x6",
//	    Recipe:     &rec,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, w := range report.Warnings {
//	    fmt.Println(w)
//	}
package check

import (
	"time"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/overflow"
	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/template"
)

// Options selects what to check.
type Options struct {
	// TemplateID names a stored template. Ignored when Template is set.
	TemplateID string

	// Template is checked as given, e.g. unsaved edits from an editor.
	Template *template.Template

	// Recipe fills the sections for the overflow check. Without a recipe
	// only overlaps are checked.
	Recipe *recipe.Recipe

	// Size overrides the template's print size for the overflow check.
	Size string
}

// Validate checks that the options name a template and a known size.
func (o Options) Validate() error {
	if o.Template == nil && o.TemplateID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a template or template id is required")
	}
	if o.Size != "" {
		if _, err := template.ParseSize(o.Size); err != nil {
			return err
		}
	}
	if o.Recipe != nil {
		if err := o.Recipe.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Stats records how long each stage took.
type Stats struct {
	ResolveTime  time.Duration `json:"resolveTime"`
	OverlapTime  time.Duration `json:"overlapTime"`
	OverflowTime time.Duration `json:"overflowTime"`
	SectionCount int           `json:"sectionCount"`
}

// Report is the outcome of one check.
type Report struct {
	Template template.Template `json:"template"`
	Overlaps []overlap.Overlap `json:"overlaps"`
	Overflow *overflow.Result  `json:"overflow,omitempty"`
	Warnings []string          `json:"warnings"`
	Stats    Stats             `json:"stats"`
}

// OK reports whether the template prints cleanly: no overlapping sections and,
// when a recipe was checked, no overflowing content.
func (r *Report) OK() bool {
	return len(r.Overlaps) == 0 && (r.Overflow == nil || !r.Overflow.HasOverflow)
}

// OverflowCount returns the number of overflowing sections.
func (r *Report) OverflowCount() int {
	if r.Overflow == nil {
		return 0
	}
	return len(r.Overflow.OverflowingSections)
}

// warnings formats the findings, most severe overlaps first.
func warnings(overlaps []overlap.Overlap, res *overflow.Result) []string {
	out := []string{}
	for _, o := range overlap.BySeverity(overlaps) {
		out = append(out, overlap.Message(o))
	}
	if res != nil {
		for _, sr := range res.OverflowingSections {
			out = append(out, overflow.Message(sr))
		}
	}
	return out
}
