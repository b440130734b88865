package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/recipecard/pkg/template"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m TemplatePickerModel, keys ...string) TemplatePickerModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(TemplatePickerModel)
	}
	return m
}

func TestTemplatePickerSelect(t *testing.T) {
	ts := template.Defaults()
	m := press(NewTemplatePickerModel(ts), "down", "j", "k", "enter")

	if m.Selected == nil {
		t.Fatal("Selected = nil after enter")
	}
	if m.Selected.ID != ts[1].ID {
		t.Errorf("Selected = %s, want %s", m.Selected.ID, ts[1].ID)
	}
}

func TestTemplatePickerBounds(t *testing.T) {
	ts := template.Defaults()[:2]
	m := press(NewTemplatePickerModel(ts), "up", "down", "down", "down")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
}

func TestTemplatePickerQuit(t *testing.T) {
	m := press(NewTemplatePickerModel(template.Defaults()), "down", "q")
	if m.Selected != nil {
		t.Errorf("Selected = %s after quit, want nil", m.Selected.ID)
	}
}

func TestTemplatePickerEmpty(t *testing.T) {
	m := press(NewTemplatePickerModel(nil), "enter")
	if m.Selected != nil {
		t.Error("empty picker selected a template")
	}
}

func TestTemplatePickerScrolls(t *testing.T) {
	m := NewTemplatePickerModel(template.Defaults())
	m.Height = 2
	m = press(m, "down", "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
}

func TestTemplatePickerView(t *testing.T) {
	clash := template.New("Clash", template.MustSize(template.SizeCard3x5))
	clash = template.AddSection(clash, template.SectionTitle)
	clash = template.AddSection(clash, template.SectionImage)

	view := NewTemplatePickerModel([]template.Template{template.Defaults()[0], clash}).View()
	for _, want := range []string{"Select Template", "Clash", "1 overlap(s)", iconDefault} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
