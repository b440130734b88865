package template

import (
	"fmt"
	"strings"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/geometry"
)

// SectionType selects which part of a recipe a section shows.
type SectionType int

const (
	SectionTitle SectionType = iota
	SectionAuthor
	SectionIngredients
	SectionSteps
	SectionNotes
	SectionImage
)

// SectionTypes lists every section type in declaration order.
var SectionTypes = []SectionType{
	SectionTitle,
	SectionAuthor,
	SectionIngredients,
	SectionSteps,
	SectionNotes,
	SectionImage,
}

// String returns the lowercase type name used in files and APIs.
func (t SectionType) String() string {
	switch t {
	case SectionTitle:
		return "title"
	case SectionAuthor:
		return "author"
	case SectionIngredients:
		return "ingredients"
	case SectionSteps:
		return "steps"
	case SectionNotes:
		return "notes"
	case SectionImage:
		return "image"
	}
	return fmt.Sprintf("SectionType(%d)", int(t))
}

// Valid reports whether t is one of the declared section types.
func (t SectionType) Valid() bool {
	return t >= SectionTitle && t <= SectionImage
}

// ParseSectionType converts a type name to a SectionType.
func ParseSectionType(s string) (SectionType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range SectionTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidSection, "unknown section type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t SectionType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidSection, "unknown section type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SectionType) UnmarshalText(b []byte) error {
	v, err := ParseSectionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Position is the top-left corner of a section in card percent.
type Position struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Dimensions is the extent of a section in card percent.
type Dimensions struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Alignment values for Style.Alignment.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Border is an optional section outline. Width is in millimeters.
type Border struct {
	Width float64 `json:"width" toml:"width"`
	Color string  `json:"color" toml:"color"`
	Style string  `json:"style,omitempty" toml:"style,omitempty"`
}

// Style controls how a section's content is typeset.
// FontSize is in points; Padding is in millimeters on every side.
type Style struct {
	FontSize        float64 `json:"fontSize" toml:"font_size"`
	FontFamily      string  `json:"fontFamily,omitempty" toml:"font_family,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty" toml:"font_weight,omitempty"`
	Alignment       string  `json:"alignment,omitempty" toml:"alignment,omitempty"`
	Color           string  `json:"color,omitempty" toml:"color,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty" toml:"background_color,omitempty"`
	Padding         float64 `json:"padding" toml:"padding"`
	Border          *Border `json:"border,omitempty" toml:"border,omitempty"`
}

// Section is a rectangular content region within a template.
type Section struct {
	ID       string      `json:"id" toml:"id"`
	Type     SectionType `json:"type" toml:"type"`
	Position Position    `json:"position" toml:"position"`
	Size     Dimensions  `json:"size" toml:"size"`
	Style    Style       `json:"style" toml:"style"`
	ZIndex   int         `json:"zIndex" toml:"z_index"`
}

// Rect returns the section's rectangle in card space.
func (s Section) Rect() geometry.Rect {
	return geometry.Rect{X: s.Position.X, Y: s.Position.Y, Width: s.Size.Width, Height: s.Size.Height}
}

// clone returns a copy that shares no pointers with s.
func (s Section) clone() Section {
	if s.Style.Border != nil {
		b := *s.Style.Border
		s.Style.Border = &b
	}
	return s
}

const defaultFontFamily = "Georgia"

// DefaultSection returns the starting geometry and style for a new section of type t.
// The ID and ZIndex are left for the caller to fill in.
func DefaultSection(t SectionType) Section {
	s := Section{
		Type: t,
		Style: Style{
			FontSize:   10,
			FontFamily: defaultFontFamily,
			FontWeight: "normal",
			Alignment:  AlignLeft,
			Color:      "#222222",
			Padding:    2,
		},
	}
	switch t {
	case SectionTitle:
		s.Position = Position{X: 5, Y: 4}
		s.Size = Dimensions{Width: 90, Height: 10}
		s.Style.FontSize = 18
		s.Style.FontWeight = "bold"
		s.Style.Alignment = AlignCenter
	case SectionAuthor:
		s.Position = Position{X: 5, Y: 14}
		s.Size = Dimensions{Width: 90, Height: 5}
		s.Style.FontSize = 9
		s.Style.Alignment = AlignCenter
		s.Style.Color = "#555555"
		s.Style.Padding = 1
	case SectionIngredients:
		s.Position = Position{X: 5, Y: 21}
		s.Size = Dimensions{Width: 38, Height: 58}
	case SectionSteps:
		s.Position = Position{X: 45, Y: 21}
		s.Size = Dimensions{Width: 50, Height: 58}
	case SectionNotes:
		s.Position = Position{X: 5, Y: 81}
		s.Size = Dimensions{Width: 90, Height: 15}
		s.Style.FontSize = 8
		s.Style.Color = "#555555"
	case SectionImage:
		s.Position = Position{X: 60, Y: 4}
		s.Size = Dimensions{Width: 35, Height: 25}
		s.Style.Padding = 0
	}
	return s
}

// validate checks the parts of a section that clamping cannot repair.
func (s Section) validate() error {
	if err := errors.ValidateID(s.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSection, err, "section id")
	}
	if !s.Type.Valid() {
		return errors.New(errors.ErrCodeInvalidSection, "section %s: unknown type %d", s.ID, int(s.Type))
	}
	if s.Style.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %s: font size must be positive", s.ID)
	}
	if s.Style.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %s: padding cannot be negative", s.ID)
	}
	switch s.Style.Alignment {
	case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
	default:
		return errors.New(errors.ErrCodeInvalidSection, "section %s: unknown alignment %q", s.ID, s.Style.Alignment)
	}
	for _, c := range []string{s.Style.Color, s.Style.BackgroundColor} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	if b := s.Style.Border; b != nil {
		if b.Width < 0 {
			return errors.New(errors.ErrCodeInvalidSection, "section %s: border width cannot be negative", s.ID)
		}
		if err := errors.ValidateColor(b.Color); err != nil {
			return err
		}
	}
	return nil
}
