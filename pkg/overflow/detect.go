package overflow

import (
	"fmt"
	"math"

	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/template"
)

// SectionResult is the overflow estimate for one section.
// Heights are in percent of the print size's height.
type SectionResult struct {
	SectionID       string               `json:"sectionId"`
	Type            template.SectionType `json:"sectionType"`
	EstimatedHeight float64              `json:"estimatedContentHeight"`
	AvailableHeight float64              `json:"availableHeight"`
	HasOverflow     bool                 `json:"hasOverflow"`
	OverflowAmount  float64              `json:"overflowAmount"`
}

// Result is the overflow estimate for a whole template.
//
// HasOverflow is true exactly when OverflowingSections is non-empty, and
// OverflowingSections is the subset of Sections with HasOverflow set, in
// section order.
type Result struct {
	Size                template.PrintSize `json:"size"`
	HasOverflow         bool               `json:"hasOverflow"`
	Sections            []SectionResult    `json:"sections"`
	OverflowingSections []SectionResult    `json:"overflowingSections"`
}

type options struct {
	size *template.PrintSize
}

// Option configures Detect.
type Option func(*options)

// WithSize evaluates the template on size instead of its own print size,
// e.g. when the user picks a different size in the print dialog.
func WithSize(size template.PrintSize) Option {
	return func(o *options) { o.size = &size }
}

// Detect estimates every section of t filled with r.
func Detect(r recipe.Recipe, t template.Template, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	size := t.Size
	if o.size != nil {
		size = *o.size
	}

	res := Result{
		Size:                size,
		Sections:            make([]SectionResult, 0, len(t.Sections)),
		OverflowingSections: []SectionResult{},
	}
	for _, s := range t.Sections {
		sr := DetectSection(r, s, size)
		res.Sections = append(res.Sections, sr)
		if sr.HasOverflow {
			res.OverflowingSections = append(res.OverflowingSections, sr)
		}
	}
	res.HasOverflow = len(res.OverflowingSections) > 0
	return res
}

// DetectSection estimates a single section filled with r on size.
// Image sections are never measured and never overflow.
func DetectSection(r recipe.Recipe, s template.Section, size template.PrintSize) SectionResult {
	sr := SectionResult{
		SectionID:       s.ID,
		Type:            s.Type,
		AvailableHeight: AvailableHeight(s, size),
	}
	if !Measured(s.Type) {
		return sr
	}

	sr.EstimatedHeight = EstimateHeight(Content(r, s.Type), s, size)
	sr.HasOverflow = sr.EstimatedHeight > sr.AvailableHeight
	if sr.HasOverflow {
		sr.OverflowAmount = math.Max(0, sr.EstimatedHeight-sr.AvailableHeight)
	}
	return sr
}

// Content returns the recipe text a section of type typ displays.
func Content(r recipe.Recipe, typ template.SectionType) string {
	switch typ {
	case template.SectionTitle:
		return r.Title
	case template.SectionAuthor:
		return r.Author
	case template.SectionIngredients:
		return r.IngredientText()
	case template.SectionSteps:
		return r.StepText()
	case template.SectionNotes:
		return r.Notes
	case template.SectionImage:
		return ""
	}
	return ""
}

// Measured reports whether sections of type typ carry text to estimate.
func Measured(typ template.SectionType) bool {
	return typ != template.SectionImage
}

// Message formats an overflowing section as a print warning,
// e.g. "ingredients exceeds by 12.4%".
func Message(sr SectionResult) string {
	return fmt.Sprintf("%s exceeds by %.1f%%", sr.Type, sr.OverflowAmount)
}
