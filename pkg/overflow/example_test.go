package overflow_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/recipecard/pkg/overflow"
	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/template"
)

func ExampleDetect() {
	style := template.Style{FontSize: 12}
	tmpl := template.Template{
		Size: template.MustSize(template.SizeA4),
		Sections: []template.Section{
			{
				ID:       "ingredients",
				Type:     template.SectionIngredients,
				Position: template.Position{X: 5, Y: 5},
				Size:     template.Dimensions{Width: 20, Height: 10},
				Style:    style,
			},
			{
				ID:       "notes",
				Type:     template.SectionNotes,
				Position: template.Position{X: 5, Y: 80},
				Size:     template.Dimensions{Width: 50, Height: 10},
				Style:    style,
			},
		},
	}
	rec := recipe.Recipe{
		Title:       "Bread",
		Ingredients: make([]string, 10),
		Notes:       "Serve warm.",
	}
	for i := range rec.Ingredients {
		rec.Ingredients[i] = strings.Repeat("f", 32)
	}

	res := overflow.Detect(rec, tmpl)
	for _, sr := range res.Sections {
		if sr.HasOverflow {
			fmt.Println(overflow.Message(sr))
		} else {
			fmt.Printf("%s fits\n", sr.Type)
		}
	}
	// Output:
	// ingredients exceeds by 23.9%
	// notes fits
}

func ExampleCountLines() {
	fmt.Println(overflow.CountLines("two cups flour\n\npinch of salt", 10))
	// Output: 5
}
