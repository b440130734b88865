package template

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/recipecard/pkg/errors"
)

func TestSizesCatalog(t *testing.T) {
	sizes := Sizes()
	if len(sizes) != 7 {
		t.Fatalf("Sizes() = %d entries, want 7", len(sizes))
	}

	var cards, papers int
	for _, s := range sizes {
		switch s.Type {
		case SizeCard:
			cards++
		case SizePaper:
			papers++
		}
	}
	if cards != 3 || papers != 4 {
		t.Errorf("cards = %d, papers = %d, want 3 and 4", cards, papers)
	}

	sizes[0].Width = 1
	if MustSize(SizeCard3x5).Width != 76.2 {
		t.Error("Sizes() exposed the catalog for mutation")
	}
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize(" Card-3x5 ")
	if err != nil {
		t.Fatalf("ParseSize() error: %v", err)
	}
	if s.Width != 76.2 || s.Height != 127 {
		t.Errorf("ParseSize() = %+v", s)
	}

	if _, err := ParseSize("b5"); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("ParseSize(b5) error = %v, want INVALID_SIZE", err)
	}
}

func TestSectionTypeText(t *testing.T) {
	for _, typ := range SectionTypes {
		b, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", typ, err)
		}
		var back SectionType
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%s) error: %v", b, err)
		}
		if back != typ {
			t.Errorf("round trip %v -> %s -> %v", typ, b, back)
		}
	}

	if _, err := SectionType(42).MarshalText(); err == nil {
		t.Error("MarshalText(42) should fail")
	}
	if _, err := ParseSectionType("footer"); !errors.Is(err, errors.ErrCodeInvalidSection) {
		t.Errorf("ParseSectionType(footer) error = %v", err)
	}
}

func TestSectionJSON(t *testing.T) {
	data := []byte(`{"id":"s1","type":"steps","position":{"x":5,"y":6},"size":{"width":7,"height":8},"style":{"fontSize":10,"padding":2},"zIndex":3}`)
	var s Section
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if s.Type != SectionSteps || s.Position.X != 5 || s.Size.Height != 8 || s.ZIndex != 3 {
		t.Errorf("Unmarshal = %+v", s)
	}
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	if len(defaults) != len(Sizes()) {
		t.Fatalf("Defaults() = %d templates, want one per size", len(defaults))
	}
	for _, d := range defaults {
		if !d.IsDefault {
			t.Errorf("%s: IsDefault = false", d.ID)
		}
		if d.ID != DefaultID(d.Size) {
			t.Errorf("ID = %s, want %s", d.ID, DefaultID(d.Size))
		}
		if err := Validate(d); err != nil {
			t.Errorf("Validate(%s) error: %v", d.ID, err)
		}
		for _, s := range d.Sections {
			if !InBounds(s) {
				t.Errorf("%s/%s out of bounds", d.ID, s.ID)
			}
		}
	}
}

func TestDuplicate(t *testing.T) {
	fixClock(t)
	src := Defaults()[0]

	dup := Duplicate(src, "My copy")
	if dup.IsDefault {
		t.Error("Duplicate() kept IsDefault")
	}
	if dup.ID == src.ID {
		t.Error("Duplicate() kept template id")
	}
	if len(dup.Sections) != len(src.Sections) {
		t.Fatalf("sections = %d, want %d", len(dup.Sections), len(src.Sections))
	}
	for i := range dup.Sections {
		if dup.Sections[i].ID == src.Sections[i].ID {
			t.Errorf("section %d kept its id", i)
		}
		if dup.Sections[i].Rect() != src.Sections[i].Rect() {
			t.Errorf("section %d geometry changed", i)
		}
	}
}

func TestCheckEditable(t *testing.T) {
	def := Defaults()[0]
	if err := CheckEditable(def); !errors.Is(err, errors.ErrCodePermissionDenied) {
		t.Errorf("CheckEditable(default) = %v, want PERMISSION_DENIED", err)
	}
	if err := CheckEditable(Duplicate(def, "Mine")); err != nil {
		t.Errorf("CheckEditable(copy) = %v", err)
	}
	if err := CheckEditable(New("Blank", MustSize(SizeA4))); err != nil {
		t.Errorf("CheckEditable(new) = %v", err)
	}
}

func TestRenameResizeMargins(t *testing.T) {
	fixClock(t)
	tmpl := AddSection(New("Old", MustSize(SizeCard3x5)), SectionTitle)

	renamed := Rename(tmpl, "New")
	if renamed.Name != "New" || tmpl.Name != "Old" {
		t.Errorf("Rename() = %q (input %q)", renamed.Name, tmpl.Name)
	}

	resized := Resize(tmpl, MustSize(SizeA5))
	if resized.Size.Name != SizeA5 {
		t.Errorf("Resize() size = %s", resized.Size.Name)
	}
	if resized.Sections[0].Rect() != tmpl.Sections[0].Rect() {
		t.Error("Resize() changed percent geometry")
	}

	m := Margins{Top: 1, Right: 2, Bottom: 3, Left: 4}
	if got := SetMargins(tmpl, m); got.Margins != m {
		t.Errorf("SetMargins() = %+v", got.Margins)
	}
}

func TestSortedByZIndex(t *testing.T) {
	in := []Section{
		{ID: "a", ZIndex: 2},
		{ID: "b", ZIndex: 1},
		{ID: "c", ZIndex: 2},
		{ID: "d", ZIndex: 0},
	}
	got := SortedByZIndex(in)
	want := []string{"d", "b", "a", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("SortedByZIndex()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	if in[0].ID != "a" {
		t.Error("SortedByZIndex() reordered its input")
	}
}

func TestValidate(t *testing.T) {
	valid := Defaults()[1]

	tests := []struct {
		name   string
		modify func(*Template)
		code   errors.Code
	}{
		{"bad id", func(t *Template) { t.ID = "../x" }, errors.ErrCodeInvalidID},
		{"empty name", func(t *Template) { t.Name = " " }, errors.ErrCodeInvalidTemplate},
		{"unknown size", func(t *Template) { t.Size.Name = "b5" }, errors.ErrCodeInvalidSize},
		{"tampered size", func(t *Template) { t.Size.Width = 1 }, errors.ErrCodeInvalidSize},
		{"negative margin", func(t *Template) { t.Margins.Left = -1 }, errors.ErrCodeInvalidTemplate},
		{"duplicate section", func(t *Template) { t.Sections[1].ID = t.Sections[0].ID }, errors.ErrCodeInvalidSection},
		{"zero font", func(t *Template) { t.Sections[0].Style.FontSize = 0 }, errors.ErrCodeInvalidSection},
		{"bad color", func(t *Template) { t.Sections[0].Style.Color = "blue" }, errors.ErrCodeInvalidSection},
		{"bad alignment", func(t *Template) { t.Sections[0].Style.Alignment = "middle" }, errors.ErrCodeInvalidSection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := valid.Clone()
			tt.modify(&tmpl)
			err := Validate(tmpl)
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
