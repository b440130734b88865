package overlap_test

import (
	"fmt"

	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/template"
)

func ExampleDetect() {
	tmpl := template.Template{
		Sections: []template.Section{
			{ID: "title", Position: template.Position{X: 10, Y: 10}, Size: template.Dimensions{Width: 30, Height: 20}},
			{ID: "image", Position: template.Position{X: 20, Y: 15}, Size: template.Dimensions{Width: 30, Height: 20}},
			{ID: "notes", Position: template.Position{X: 60, Y: 60}, Size: template.Dimensions{Width: 30, Height: 30}},
		},
	}

	for _, o := range overlap.Detect(tmpl) {
		fmt.Println(overlap.Message(o))
	}
	// Output:
	// title overlaps image (50.0% of the smaller section)
}
