// Package recipe defines the recipe value that templates are filled with.
//
// The layout core only reads recipes: it resolves a section's text from the
// matching field and never persists or rewrites the recipe.
package recipe

import (
	"strings"
	"time"

	"github.com/matzehuels/recipecard/pkg/errors"
)

// Recipe is a digitized recipe. Author and Notes are optional; the empty
// string means absent.
type Recipe struct {
	ID          string    `json:"id,omitempty" toml:"id,omitempty"`
	Title       string    `json:"title" toml:"title"`
	Author      string    `json:"author,omitempty" toml:"author,omitempty"`
	Ingredients []string  `json:"ingredients" toml:"ingredients"`
	Steps       []string  `json:"steps" toml:"steps"`
	Notes       string    `json:"notes,omitempty" toml:"notes,omitempty"`
	Servings    int       `json:"servings,omitempty" toml:"servings,omitempty"`
	Source      string    `json:"source,omitempty" toml:"source,omitempty"`
	Tags        []string  `json:"tags,omitempty" toml:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero" toml:"created_at,omitempty"`
}

// Validate checks the minimum a recipe needs to be printed: a title.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "recipe title cannot be empty")
	}
	return nil
}

// IngredientText returns the ingredient list joined by newlines.
func (r Recipe) IngredientText() string { return strings.Join(r.Ingredients, "\n") }

// StepText returns the step list joined by newlines.
func (r Recipe) StepText() string { return strings.Join(r.Steps, "\n") }

// HasTag reports whether the recipe carries tag, case-insensitively.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// NormalizeTags returns tags trimmed, lowercased and de-duplicated, in first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
