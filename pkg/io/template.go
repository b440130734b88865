package io

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/template"
)

// WriteTemplate encodes t in format f.
func WriteTemplate(w io.Writer, t template.Template, f Format) error {
	return encode(w, t, f)
}

// ExportTemplate writes t to path, choosing the format from the extension.
func ExportTemplate(t template.Template, path string) error {
	f, err := pathFormat(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteTemplate(out, t, f)
}

// ReadTemplate decodes a template in format f, normalizes it for import and
// validates it. ReadTemplate does not close r.
func ReadTemplate(r io.Reader, f Format) (template.Template, error) {
	var t template.Template
	if err := decode(r, &t, f); err != nil {
		return template.Template{}, err
	}
	return normalizeTemplate(t)
}

// ImportTemplate reads a template file, choosing the format from the extension.
func ImportTemplate(path string) (template.Template, error) {
	f, err := pathFormat(path)
	if err != nil {
		return template.Template{}, err
	}
	in, err := open(path)
	if err != nil {
		return template.Template{}, err
	}
	defer in.Close()

	t, err := ReadTemplate(in, f)
	if err != nil {
		return template.Template{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func normalizeTemplate(t template.Template) (template.Template, error) {
	size, err := template.ParseSize(t.Size.Name)
	if err != nil {
		return template.Template{}, err
	}
	t.Size = size
	t.IsDefault = false
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Sections == nil {
		t.Sections = []template.Section{}
	}
	for i := range t.Sections {
		if t.Sections[i].ID == "" {
			t.Sections[i].ID = uuid.NewString()
		}
	}
	t = template.ClampAll(t)
	if err := template.Validate(t); err != nil {
		return template.Template{}, err
	}
	return t, nil
}

func pathFormat(path string) (Format, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	return FormatFromPath(path)
}

func open(path string) (*os.File, error) {
	in, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return in, nil
}
