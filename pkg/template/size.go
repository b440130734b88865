package template

import (
	"fmt"
	"strings"

	"github.com/matzehuels/recipecard/pkg/errors"
)

// SizeType distinguishes index cards from paper pages.
type SizeType int

const (
	SizeCard SizeType = iota
	SizePaper
)

// String returns "card" or "paper".
func (t SizeType) String() string {
	switch t {
	case SizeCard:
		return "card"
	case SizePaper:
		return "paper"
	}
	return fmt.Sprintf("SizeType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t SizeType) MarshalText() ([]byte, error) {
	switch t {
	case SizeCard, SizePaper:
		return []byte(t.String()), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSize, "unknown size type %d", int(t))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SizeType) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "card":
		*t = SizeCard
	case "paper":
		*t = SizePaper
	default:
		return errors.New(errors.ErrCodeInvalidSize, "unknown size type %q", string(b))
	}
	return nil
}

// PrintSize is a named physical medium. Width and Height are in millimeters.
type PrintSize struct {
	Name   string   `json:"name" toml:"name"`
	Width  float64  `json:"width" toml:"width"`
	Height float64  `json:"height" toml:"height"`
	Type   SizeType `json:"type" toml:"type"`
}

// Print size names.
const (
	SizeCard3x5    = "card-3x5"
	SizeCard4x6    = "card-4x6"
	SizeCard5x7    = "card-5x7"
	SizeA4         = "a4"
	SizeA5         = "a5"
	SizeLetter     = "letter"
	SizeHalfLetter = "half-letter"
)

// catalog is the fixed print size table, in display order.
var catalog = [...]PrintSize{
	{Name: SizeCard3x5, Width: 76.2, Height: 127, Type: SizeCard},
	{Name: SizeCard4x6, Width: 101.6, Height: 152.4, Type: SizeCard},
	{Name: SizeCard5x7, Width: 127, Height: 177.8, Type: SizeCard},
	{Name: SizeA4, Width: 210, Height: 297, Type: SizePaper},
	{Name: SizeA5, Width: 148, Height: 210, Type: SizePaper},
	{Name: SizeLetter, Width: 215.9, Height: 279.4, Type: SizePaper},
	{Name: SizeHalfLetter, Width: 139.7, Height: 215.9, Type: SizePaper},
}

// Sizes returns a copy of the print size catalog.
func Sizes() []PrintSize {
	out := make([]PrintSize, len(catalog))
	copy(out, catalog[:])
	return out
}

// LookupSize returns the catalog entry with the given name.
func LookupSize(name string) (PrintSize, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return PrintSize{}, false
}

// MustSize is like LookupSize but panics on unknown names.
// It is meant for package-level variables and tests.
func MustSize(name string) PrintSize {
	s, ok := LookupSize(name)
	if !ok {
		panic("template: unknown print size " + name)
	}
	return s
}

// ParseSize resolves a user-supplied size name, case-insensitively.
func ParseSize(name string) (PrintSize, error) {
	if s, ok := LookupSize(strings.ToLower(strings.TrimSpace(name))); ok {
		return s, nil
	}
	return PrintSize{}, errors.New(errors.ErrCodeInvalidSize, "unknown print size %q (known: %s)", name, strings.Join(SizeNames(), ", "))
}

// SizeNames returns the catalog names in display order.
func SizeNames() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}
	return names
}

// Label returns a human-readable description such as "card-3x5 (76.2 × 127 mm)".
func (s PrintSize) Label() string {
	return fmt.Sprintf("%s (%g × %g mm)", s.Name, s.Width, s.Height)
}
