package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/template"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TemplatePickerModel - Interactive template selection
// =============================================================================

// TemplatePickerModel is the bubbletea model for interactive template selection.
// Templates with overlapping sections are marked so they can be fixed first.
type TemplatePickerModel struct {
	Templates []template.Template
	Cursor    int
	Selected  *template.Template
	Height    int
	Offset    int

	overlaps []int
}

// NewTemplatePickerModel creates a new template picker over templates.
func NewTemplatePickerModel(templates []template.Template) TemplatePickerModel {
	overlaps := make([]int, len(templates))
	for i, t := range templates {
		overlaps[i] = len(overlap.Detect(t))
	}
	return TemplatePickerModel{
		Templates: templates,
		Height:    15,
		overlaps:  overlaps,
	}
}

func (m TemplatePickerModel) Init() tea.Cmd {
	return nil
}

func (m TemplatePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Templates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Templates) == 0 {
				return m, tea.Quit
			}
			t := m.Templates[m.Cursor]
			m.Selected = &t
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m TemplatePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Template"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Templates))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Templates[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind := ""
		if t.IsDefault {
			kind = iconDefault
		}
		status := StyleSuccess.Render(iconSuccess)
		if m.overlaps[i] > 0 {
			status = StyleWarning.Render(fmt.Sprintf("%d overlap(s)", m.overlaps[i]))
		}
		rows = append(rows, []string{cursor, t.Name, t.Size.Name, strconv.Itoa(len(t.Sections)), kind, status})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Template", "Size", "Sections", "", "Layout").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 4 {
				return styleDefault
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Templates))))

	return b.String()
}

// pickTemplate runs the picker and returns the chosen template, or nil if the
// user quit without choosing.
func pickTemplate(templates []template.Template) (*template.Template, error) {
	final, err := tea.NewProgram(NewTemplatePickerModel(templates)).Run()
	if err != nil {
		return nil, fmt.Errorf("template picker: %w", err)
	}
	return final.(TemplatePickerModel).Selected, nil
}
