package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecard/pkg/errors"
	rcio "github.com/matzehuels/recipecard/pkg/io"
	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/store"
	"github.com/matzehuels/recipecard/pkg/template"
)

// templateCommand creates the template management command.
func (c *CLI) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "tpl"},
		Short:   "Manage recipe card templates",
	}

	cmd.AddCommand(c.templateListCommand())
	cmd.AddCommand(c.templateShowCommand())
	cmd.AddCommand(c.templateNewCommand())
	cmd.AddCommand(c.templateDuplicateCommand())
	cmd.AddCommand(c.templateRenameCommand())
	cmd.AddCommand(c.templateResizeCommand())
	cmd.AddCommand(c.templateMarginsCommand())
	cmd.AddCommand(c.templateDeleteCommand())
	cmd.AddCommand(c.templateAddSectionCommand())
	cmd.AddCommand(c.templateUpdateSectionCommand())
	cmd.AddCommand(c.templateRemoveSectionCommand())
	cmd.AddCommand(c.templateImportCommand())
	cmd.AddCommand(c.templateExportCommand())

	for _, sub := range cmd.Commands() {
		switch sub.Name() {
		case "show", "duplicate", "export":
			sub.ValidArgsFunction = c.completeTemplateIDs(false)
		case "rename", "resize", "margins", "delete", "update-section", "remove-section":
			sub.ValidArgsFunction = c.completeTemplateIDs(true)
		case "add-section":
			sub.ValidArgsFunction = c.completeSectionTypes
		}
	}

	return cmd
}

// =============================================================================
// Listing
// =============================================================================

func (c *CLI) templateListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List templates, defaults first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				ts, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(ts))
				for _, t := range ts {
					kind := ""
					if t.IsDefault {
						kind = iconDefault
					}
					rows = append(rows, []string{t.ID, t.Name, t.Size.Name, strconv.Itoa(len(t.Sections)), kind})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Size", "Sections", ""}, rows))
				return nil
			})
		},
	}
}

func (c *CLI) templateShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <template-id>",
		Short: "Print a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rcio.ParseFormat(format)
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(s store.Store) error {
				t, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return rcio.WriteTemplate(cmd.OutOrStdout(), t, f)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(rcio.FormatJSON), "output format: json, toml")
	return cmd
}

// =============================================================================
// Creating
// =============================================================================

func (c *CLI) templateNewCommand() *cobra.Command {
	var size string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateTemplateName(args[0]); err != nil {
				return err
			}
			ps, err := template.ParseSize(size)
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(s store.Store) error {
				t := template.New(args[0], ps)
				if err := s.Create(cmd.Context(), t); err != nil {
					return err
				}
				printSuccess("Created template %s", StyleHighlight.Render(t.Name))
				printKeyValue("ID", t.ID)
				printKeyValue("Size", ps.Label())
				printNextStep("Add a section", fmt.Sprintf("%s template add-section %s title", appName, t.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&size, "size", "s", template.SizeCard3x5, "print size (see 'recipecard sizes')")
	return cmd
}

func (c *CLI) templateDuplicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <template-id> <name>",
		Aliases: []string{"dup", "cp"},
		Short:   "Copy a template under a new name",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateTemplateName(args[1]); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(s store.Store) error {
				src, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				t := template.Duplicate(src, args[1])
				if err := s.Create(cmd.Context(), t); err != nil {
					return err
				}
				printSuccess("Duplicated %s as %s", src.Name, StyleHighlight.Render(t.Name))
				printKeyValue("ID", t.ID)
				return nil
			})
		},
	}
}

// =============================================================================
// Editing
// =============================================================================

// edit loads a template, applies fn and stores the result. Default templates
// are refused with a hint to duplicate them.
func (c *CLI) edit(ctx context.Context, id string, fn func(template.Template) (template.Template, error)) (template.Template, error) {
	var out template.Template
	err := c.withStore(ctx, func(s store.Store) error {
		t, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := template.CheckEditable(t); err != nil {
			printWarning("%s is a default template", t.Name)
			printNextStep("Copy it first", fmt.Sprintf("%s template duplicate %s \"My %s\"", appName, t.ID, t.Name))
			return err
		}
		if out, err = fn(t); err != nil {
			return err
		}
		return s.Update(ctx, out)
	})
	return out, err
}

func (c *CLI) templateRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <template-id> <name>",
		Short: "Rename a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateTemplateName(args[1]); err != nil {
				return err
			}
			t, err := c.edit(cmd.Context(), args[0], func(t template.Template) (template.Template, error) {
				return template.Rename(t, args[1]), nil
			})
			if err != nil {
				return err
			}
			printSuccess("Renamed %s to %s", t.ID, StyleHighlight.Render(t.Name))
			return nil
		},
	}
}

func (c *CLI) templateResizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <template-id> <size>",
		Short: "Move a template to another print size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := template.ParseSize(args[1])
			if err != nil {
				return err
			}
			t, err := c.edit(cmd.Context(), args[0], func(t template.Template) (template.Template, error) {
				return template.Resize(t, ps), nil
			})
			if err != nil {
				return err
			}
			printSuccess("%s now prints on %s", t.Name, StyleHighlight.Render(ps.Label()))
			return nil
		},
	}
}

func (c *CLI) templateMarginsCommand() *cobra.Command {
	var m template.Margins
	cmd := &cobra.Command{
		Use:   "margins <template-id>",
		Short: "Set a template's page margins in mm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.edit(cmd.Context(), args[0], func(t template.Template) (template.Template, error) {
				next := t.Margins
				flags := cmd.Flags()
				if flags.Changed("top") {
					next.Top = m.Top
				}
				if flags.Changed("right") {
					next.Right = m.Right
				}
				if flags.Changed("bottom") {
					next.Bottom = m.Bottom
				}
				if flags.Changed("left") {
					next.Left = m.Left
				}
				return template.SetMargins(t, next), nil
			})
			if err != nil {
				return err
			}
			printSuccess("Margins of %s set to %g/%g/%g/%g mm", t.Name, t.Margins.Top, t.Margins.Right, t.Margins.Bottom, t.Margins.Left)
			return nil
		},
	}
	cmd.Flags().Float64Var(&m.Top, "top", 0, "top margin")
	cmd.Flags().Float64Var(&m.Right, "right", 0, "right margin")
	cmd.Flags().Float64Var(&m.Bottom, "bottom", 0, "bottom margin")
	cmd.Flags().Float64Var(&m.Left, "left", 0, "left margin")
	return cmd
}

func (c *CLI) templateAddSectionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-section <template-id> <type>",
		Short: "Add a section with default geometry",
		Long:  "Add a section of type title, author, ingredients, steps, notes or image. The new section is stacked above all others.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := template.ParseSectionType(args[1])
			if err != nil {
				return err
			}
			t, err := c.edit(cmd.Context(), args[0], func(t template.Template) (template.Template, error) {
				return template.AddSection(t, typ), nil
			})
			if err != nil {
				return err
			}
			added := t.Sections[len(t.Sections)-1]
			printSuccess("Added %s section to %s", typ, t.Name)
			printKeyValue("Section", added.ID)
			printOverlaps(overlap.Detect(t))
			return nil
		},
	}
}

// sectionFlags are the editable fields of update-section.
type sectionFlags struct {
	x, y, width, height float64
	zIndex              int
	fontSize, padding   float64
	typ                 string
}

// patch builds a section patch from the flags that were set, starting from
// the section's current values.
func (f sectionFlags) patch(cmd *cobra.Command, s template.Section) (template.SectionPatch, error) {
	var p template.SectionPatch
	flags := cmd.Flags()

	if flags.Changed("x") || flags.Changed("y") {
		pos := s.Position
		if flags.Changed("x") {
			pos.X = f.x
		}
		if flags.Changed("y") {
			pos.Y = f.y
		}
		p.Position = &pos
	}
	if flags.Changed("width") || flags.Changed("height") {
		dim := s.Size
		if flags.Changed("width") {
			dim.Width = f.width
		}
		if flags.Changed("height") {
			dim.Height = f.height
		}
		p.Size = &dim
	}
	if flags.Changed("font-size") || flags.Changed("padding") {
		style := s.Style
		if flags.Changed("font-size") {
			style.FontSize = f.fontSize
		}
		if flags.Changed("padding") {
			style.Padding = f.padding
		}
		p.Style = &style
	}
	if flags.Changed("z") {
		z := f.zIndex
		p.ZIndex = &z
	}
	if flags.Changed("type") {
		typ, err := template.ParseSectionType(f.typ)
		if err != nil {
			return p, err
		}
		p.Type = &typ
	}
	return p, nil
}

func (c *CLI) templateUpdateSectionCommand() *cobra.Command {
	var f sectionFlags
	cmd := &cobra.Command{
		Use:   "update-section <template-id> <section-id>",
		Short: "Move, resize or restyle a section",
		Long:  "Move, resize or restyle a section. Position and size are in percent of the card and are clamped to keep the section on the card.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.edit(cmd.Context(), args[0], func(t template.Template) (template.Template, error) {
				sec, ok := t.FindSection(args[1])
				if !ok {
					return t, errors.New(errors.ErrCodeNotFound, "section %s not found in template %s", args[1], t.ID)
				}
				p, err := f.patch(cmd, sec)
				if err != nil {
					return t, err
				}
				return template.UpdateSection(t, args[1], p), nil
			})
			if err != nil {
				return err
			}
			sec, _ := t.FindSection(args[1])
			printSuccess("Updated %s section", sec.Type)
			printDetail("at %.1f%%, %.1f%%  size %.1f%% × %.1f%%  z %d", sec.Position.X, sec.Position.Y, sec.Size.Width, sec.Size.Height, sec.ZIndex)
			printOverlaps(overlap.Detect(t))
			return nil
		},
	}
	cmd.Flags().Float64Var(&f.x, "x", 0, "left edge in card percent")
	cmd.Flags().Float64Var(&f.y, "y", 0, "top edge in card percent")
	cmd.Flags().Float64Var(&f.width, "width", 0, "width in card percent")
	cmd.Flags().Float64Var(&f.height, "height", 0, "height in card percent")
	cmd.Flags().IntVar(&f.zIndex, "z", 0, "stacking order")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", 0, "font size in points")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "inner padding in mm")
	cmd.Flags().StringVar(&f.typ, "type", "", "section type")
	return cmd
}

func (c *CLI) templateRemoveSectionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove-section <template-id> <section-id>",
		Aliases: []string{"rm-section"},
		Short:   "Remove a section",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.edit(cmd.Context(), args[0], func(t template.Template) (template.Template, error) {
				if _, ok := t.FindSection(args[1]); !ok {
					return t, errors.New(errors.ErrCodeNotFound, "section %s not found in template %s", args[1], t.ID)
				}
				return template.RemoveSection(t, args[1]), nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed section from %s (%d left)", t.Name, len(t.Sections))
			return nil
		},
	}
}

// =============================================================================
// Deleting
// =============================================================================

func (c *CLI) templateDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <template-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a user template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				err := s.Delete(cmd.Context(), args[0])
				if errors.Is(err, errors.ErrCodePermissionDenied) {
					printWarning("Default templates cannot be deleted")
					printNextStep("Make an editable copy", fmt.Sprintf("%s template duplicate %s \"My template\"", appName, args[0]))
				}
				if err != nil {
					return err
				}
				printSuccess("Deleted template %s", args[0])
				return nil
			})
		},
	}
}

// =============================================================================
// Import & Export
// =============================================================================

func (c *CLI) templateImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a template from a .json or .toml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rcio.ImportTemplate(args[0])
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(s store.Store) error {
				err := s.Create(cmd.Context(), t)
				if errors.Is(err, errors.ErrCodeConflict) {
					printInfo("Template %s already exists, importing as a copy", t.ID)
					t = template.Duplicate(t, t.Name)
					err = s.Create(cmd.Context(), t)
				}
				if err != nil {
					return err
				}
				printSuccess("Imported %s", StyleHighlight.Render(t.Name))
				printKeyValue("ID", t.ID)
				printKeyValue("Sections", strconv.Itoa(len(t.Sections)))
				printOverlaps(overlap.Detect(t))
				return nil
			})
		},
	}
}

func (c *CLI) templateExportCommand() *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   "export <template-id>",
		Short: "Export a template to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				t, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" {
					f, err := rcio.ParseFormat(format)
					if err != nil {
						return err
					}
					return rcio.WriteTemplate(cmd.OutOrStdout(), t, f)
				}
				if err := rcio.ExportTemplate(t, output); err != nil {
					return err
				}
				printSuccess("Exported %s", t.Name)
				printFile(output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml); stdout if empty")
	cmd.Flags().StringVarP(&format, "format", "f", string(rcio.FormatJSON), "stdout format: json, toml")
	return cmd
}

// printOverlaps warns about overlapping sections, worst first.
func printOverlaps(found []overlap.Overlap) {
	if len(found) == 0 {
		return
	}
	printWarning("%d overlapping section pair(s)", len(found))
	for _, o := range overlap.BySeverity(found) {
		printDetail("%s", overlap.Message(o))
	}
}
