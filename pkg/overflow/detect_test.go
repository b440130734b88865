package overflow

import (
	"strings"
	"testing"

	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/template"
)

func section(id string, typ template.SectionType, w, h, fontSize, padding float64) template.Section {
	return template.Section{
		ID:    id,
		Type:  typ,
		Size:  template.Dimensions{Width: w, Height: h},
		Style: template.Style{FontSize: fontSize, Padding: padding},
	}
}

func cardTemplate(sections ...template.Section) template.Template {
	return template.Template{
		ID:       "t",
		Name:     "test",
		Size:     template.MustSize(template.SizeCard3x5),
		Sections: sections,
	}
}

func TestDetectIngredientOverflow(t *testing.T) {
	ingredients := make([]string, 30)
	for i := range ingredients {
		ingredients[i] = strings.Repeat("x", 80)
	}
	r := recipe.Recipe{Title: "Stew", Ingredients: ingredients}
	tmpl := cardTemplate(section("ing", template.SectionIngredients, 20, 10, 10, 2))

	res := Detect(r, tmpl)
	if !res.HasOverflow {
		t.Fatal("HasOverflow = false, want true")
	}
	if len(res.OverflowingSections) != 1 || res.OverflowingSections[0].SectionID != "ing" {
		t.Errorf("OverflowingSections = %+v", res.OverflowingSections)
	}
	sr := res.Sections[0]
	if sr.OverflowAmount <= 0 {
		t.Errorf("OverflowAmount = %v, want > 0", sr.OverflowAmount)
	}
	if sr.EstimatedHeight <= sr.AvailableHeight {
		t.Errorf("EstimatedHeight %v <= AvailableHeight %v", sr.EstimatedHeight, sr.AvailableHeight)
	}
}

func TestDetectFits(t *testing.T) {
	r := recipe.Recipe{Title: "Toast"}
	tmpl := cardTemplate(section("title", template.SectionTitle, 90, 10, 12, 1))

	res := Detect(r, tmpl)
	if res.HasOverflow {
		t.Errorf("HasOverflow = true for a short title: %+v", res.Sections)
	}
	if res.Sections[0].OverflowAmount != 0 {
		t.Errorf("OverflowAmount = %v, want 0", res.Sections[0].OverflowAmount)
	}
	if res.OverflowingSections == nil {
		t.Error("OverflowingSections should be empty, not nil")
	}
}

func TestDetectImageNeverOverflows(t *testing.T) {
	r := recipe.Recipe{Title: strings.Repeat("very long title ", 100)}
	// Padding larger than the box makes the available height negative.
	tmpl := cardTemplate(section("img", template.SectionImage, 5, 1, 12, 10))

	res := Detect(r, tmpl)
	sr := res.Sections[0]
	if sr.HasOverflow || sr.EstimatedHeight != 0 || sr.OverflowAmount != 0 {
		t.Errorf("image section result = %+v, want no overflow", sr)
	}
}

func TestDetectEmptyContent(t *testing.T) {
	r := recipe.Recipe{Title: "Plain"}
	tmpl := cardTemplate(
		section("author", template.SectionAuthor, 50, 5, 9, 1),
		section("notes", template.SectionNotes, 50, 5, 9, 1),
	)

	for _, sr := range Detect(r, tmpl).Sections {
		if sr.EstimatedHeight != 0 {
			t.Errorf("%s EstimatedHeight = %v, want 0", sr.SectionID, sr.EstimatedHeight)
		}
		if sr.HasOverflow {
			t.Errorf("%s overflows with no content", sr.SectionID)
		}
	}
}

func TestDetectWithSize(t *testing.T) {
	steps := make([]string, 12)
	for i := range steps {
		steps[i] = strings.Repeat("stir ", 8)
	}
	r := recipe.Recipe{Title: "Soup", Steps: steps}
	tmpl := cardTemplate(section("steps", template.SectionSteps, 50, 30, 10, 2))

	small := Detect(r, tmpl)
	large := Detect(r, tmpl, WithSize(template.MustSize(template.SizeA4)))

	if large.Size.Name != template.SizeA4 {
		t.Errorf("Size = %s, want a4", large.Size.Name)
	}
	if !small.HasOverflow {
		t.Errorf("card-3x5 HasOverflow = false, want true: %+v", small.Sections[0])
	}
	if large.HasOverflow {
		t.Errorf("a4 HasOverflow = true, want false: %+v", large.Sections[0])
	}
}

func TestDetectConsistency(t *testing.T) {
	r := recipe.Recipe{
		Title:       "Consistency Cake",
		Author:      "Test Kitchen",
		Ingredients: []string{"flour", "sugar", strings.Repeat("butter ", 30)},
		Steps:       []string{strings.Repeat("mix well ", 40), "", "bake"},
		Notes:       strings.Repeat("note ", 60),
	}

	for _, tmpl := range template.Defaults() {
		tmpl = template.AddSection(tmpl, template.SectionImage)
		res := Detect(r, tmpl)

		if res.HasOverflow != (len(res.OverflowingSections) > 0) {
			t.Errorf("%s: HasOverflow = %v with %d overflowing", tmpl.ID, res.HasOverflow, len(res.OverflowingSections))
		}
		if len(res.Sections) != len(tmpl.Sections) {
			t.Errorf("%s: %d results for %d sections", tmpl.ID, len(res.Sections), len(tmpl.Sections))
		}

		var filtered []SectionResult
		for _, sr := range res.Sections {
			if sr.HasOverflow {
				filtered = append(filtered, sr)
				if sr.EstimatedHeight <= sr.AvailableHeight || sr.OverflowAmount <= 0 {
					t.Errorf("%s/%s: overflowing but %+v", tmpl.ID, sr.SectionID, sr)
				}
			} else if sr.OverflowAmount != 0 {
				t.Errorf("%s/%s: OverflowAmount = %v without overflow", tmpl.ID, sr.SectionID, sr.OverflowAmount)
			}
		}
		if len(filtered) != len(res.OverflowingSections) {
			t.Fatalf("%s: filtered %d, reported %d", tmpl.ID, len(filtered), len(res.OverflowingSections))
		}
		for i := range filtered {
			if filtered[i] != res.OverflowingSections[i] {
				t.Errorf("%s: overflowing[%d] = %+v, want %+v", tmpl.ID, i, res.OverflowingSections[i], filtered[i])
			}
		}
	}
}

func TestContent(t *testing.T) {
	r := recipe.Recipe{
		Title:       "T",
		Author:      "A",
		Ingredients: []string{"i1", "i2"},
		Steps:       []string{"s1", "s2"},
		Notes:       "N",
	}
	want := map[template.SectionType]string{
		template.SectionTitle:       "T",
		template.SectionAuthor:      "A",
		template.SectionIngredients: "i1\ni2",
		template.SectionSteps:       "s1\ns2",
		template.SectionNotes:       "N",
		template.SectionImage:       "",
	}
	for _, typ := range template.SectionTypes {
		w, ok := want[typ]
		if !ok {
			t.Fatalf("no expected content for section type %v", typ)
		}
		if got := Content(r, typ); got != w {
			t.Errorf("Content(%v) = %q, want %q", typ, got, w)
		}
	}
}

func TestMessage(t *testing.T) {
	got := Message(SectionResult{Type: template.SectionIngredients, OverflowAmount: 12.44})
	if want := "ingredients exceeds by 12.4%"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
