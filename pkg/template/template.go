package template

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/recipecard/pkg/errors"
)

// Margins are the unprintable borders of a page, in millimeters.
type Margins struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Template is a layout definition for one print size.
type Template struct {
	ID        string    `json:"id" toml:"id"`
	Name      string    `json:"name" toml:"name"`
	Size      PrintSize `json:"size" toml:"size"`
	IsDefault bool      `json:"isDefault" toml:"is_default"`
	Sections  []Section `json:"sections" toml:"sections"`
	Margins   Margins   `json:"margins" toml:"margins"`
	CreatedAt time.Time `json:"createdAt" toml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" toml:"updated_at"`
}

// Hooks for tests.
var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

// defaultMargins returns 5mm margins for cards and 15mm for paper.
func defaultMargins(size PrintSize) Margins {
	m := 5.0
	if size.Type == SizePaper {
		m = 15
	}
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}

// New creates an empty, non-default template.
func New(name string, size PrintSize) Template {
	ts := now()
	return Template{
		ID:        newID(),
		Name:      name,
		Size:      size,
		Sections:  []Section{},
		Margins:   defaultMargins(size),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// DefaultID returns the stable id of the default template for a print size.
func DefaultID(size PrintSize) string {
	return "default-" + size.Name
}

// defaultLayout is the section arrangement used by every default template.
var defaultLayout = []SectionType{
	SectionTitle,
	SectionAuthor,
	SectionIngredients,
	SectionSteps,
	SectionNotes,
}

// Defaults returns the system template set, one per print size, in catalog order.
// IDs are stable so repeated calls describe the same templates.
func Defaults() []Template {
	sizes := Sizes()
	out := make([]Template, 0, len(sizes))
	for _, size := range sizes {
		ts := now()
		t := Template{
			ID:        DefaultID(size),
			Name:      "Classic " + size.Name,
			Size:      size,
			IsDefault: true,
			Margins:   defaultMargins(size),
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		t.Sections = make([]Section, len(defaultLayout))
		for i, typ := range defaultLayout {
			s := DefaultSection(typ)
			s.ID = t.ID + "-" + typ.String()
			s.ZIndex = i
			t.Sections[i] = Clamp(s)
		}
		out = append(out, t)
	}
	return out
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	sections := make([]Section, len(t.Sections))
	for i, s := range t.Sections {
		sections[i] = s.clone()
	}
	t.Sections = sections
	return t
}

// FindSection returns the section with the given id.
func (t Template) FindSection(id string) (Section, bool) {
	for _, s := range t.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Duplicate copies t under a new id and name. Section ids are regenerated and
// the copy is never a default template.
func Duplicate(t Template, name string) Template {
	out := t.Clone()
	ts := now()
	out.ID = newID()
	out.Name = name
	out.IsDefault = false
	out.CreatedAt = ts
	out.UpdatedAt = ts
	for i := range out.Sections {
		out.Sections[i].ID = newID()
	}
	return out
}

// CheckEditable reports whether t may be edited. Default templates are
// locked; callers edit a Duplicate instead.
func CheckEditable(t Template) error {
	if t.IsDefault {
		return errors.New(errors.ErrCodePermissionDenied, "template %s is a default template and cannot be edited; duplicate it first", t.ID)
	}
	return nil
}

// Rename returns t with a new name.
func Rename(t Template, name string) Template {
	out := t.Clone()
	out.Name = name
	out.UpdatedAt = now()
	return out
}

// SetMargins returns t with new margins.
func SetMargins(t Template, m Margins) Template {
	out := t.Clone()
	out.Margins = m
	out.UpdatedAt = now()
	return out
}

// Resize returns t laid out on a different print size. Section geometry is in
// percent and therefore unchanged.
func Resize(t Template, size PrintSize) Template {
	out := t.Clone()
	out.Size = size
	out.UpdatedAt = now()
	return out
}

// ClampAll returns t with every section passed through Clamp.
func ClampAll(t Template) Template {
	out := t.Clone()
	for i, s := range out.Sections {
		out.Sections[i] = Clamp(s)
	}
	return out
}

// SortedByZIndex returns the sections in paint order: ascending ZIndex, ties
// kept in slice order.
func SortedByZIndex(sections []Section) []Section {
	out := slices.Clone(sections)
	slices.SortStableFunc(out, func(a, b Section) int {
		return a.ZIndex - b.ZIndex
	})
	return out
}

// Validate checks the parts of a template that cannot be repaired by
// clamping: identity, name, print size and section styles.
func Validate(t Template) error {
	if err := errors.ValidateID(t.ID); err != nil {
		return err
	}
	if err := errors.ValidateTemplateName(t.Name); err != nil {
		return err
	}
	size, ok := LookupSize(t.Size.Name)
	if !ok || size != t.Size {
		return errors.New(errors.ErrCodeInvalidSize, "template %s: unknown print size %q", t.ID, t.Size.Name)
	}
	if t.Margins.Top < 0 || t.Margins.Right < 0 || t.Margins.Bottom < 0 || t.Margins.Left < 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %s: margins cannot be negative", t.ID)
	}
	seen := make(map[string]bool, len(t.Sections))
	for _, s := range t.Sections {
		if err := s.validate(); err != nil {
			return err
		}
		if seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidSection, "template %s: duplicate section id %s", t.ID, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
