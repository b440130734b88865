package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/recipecard/pkg/recipe"
)

// WriteRecipe encodes r in format f.
func WriteRecipe(w io.Writer, r recipe.Recipe, f Format) error {
	return encode(w, r, f)
}

// ExportRecipe writes r to path, choosing the format from the extension.
func ExportRecipe(r recipe.Recipe, path string) error {
	f, err := pathFormat(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteRecipe(out, r, f)
}

// ReadRecipe decodes and validates a recipe in format f.
// ReadRecipe does not close r.
func ReadRecipe(r io.Reader, f Format) (recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := decode(r, &rec, f); err != nil {
		return recipe.Recipe{}, err
	}
	if err := rec.Validate(); err != nil {
		return recipe.Recipe{}, err
	}
	rec.Tags = recipe.NormalizeTags(rec.Tags)
	return rec, nil
}

// ImportRecipe reads a recipe file, choosing the format from the extension.
func ImportRecipe(path string) (recipe.Recipe, error) {
	f, err := pathFormat(path)
	if err != nil {
		return recipe.Recipe{}, err
	}
	in, err := open(path)
	if err != nil {
		return recipe.Recipe{}, err
	}
	defer in.Close()

	rec, err := ReadRecipe(in, f)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
