package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rcio "github.com/matzehuels/recipecard/pkg/io"
	"github.com/matzehuels/recipecard/pkg/render"
	"github.com/matzehuels/recipecard/pkg/render/preview"
	"github.com/matzehuels/recipecard/pkg/template"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	output     string
	format     string
	recipePath string
	size       string
	detailed   bool
	noCache    bool
}

// previewCommand creates the preview command rendering a template layout.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{format: string(render.FormatSVG)}

	cmd := &cobra.Command{
		Use:   "preview <template-id>",
		Short: "Render a template layout to SVG, PNG, PDF or DOT",
		Long: `Render a template's sections to scale. Overlapping sections are outlined
in red. With --recipe, sections whose text overflows are outlined in orange
and labeled with the overflow amount.

Rendered previews are cached by layout; see "recipecard cache". PDF output
requires rsvg-convert (librsvg) on PATH.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeTemplateIDs(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			popts := preview.Options{Detailed: opts.detailed}
			if opts.recipePath != "" {
				r, err := rcio.ImportRecipe(opts.recipePath)
				if err != nil {
					return err
				}
				popts.Recipe = &r
			}
			if opts.size != "" {
				ps, err := template.ParseSize(opts.size)
				if err != nil {
					return err
				}
				popts.Size = &ps
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			renderer, closeCache, err := c.openRenderer(cmd.Context(), cfg, opts.noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			s, err := c.openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.runPreview(cmd, renderer, t, popts, format, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <template-id>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, pdf, dot")
	cmd.Flags().StringVarP(&opts.recipePath, "recipe", "r", "", "recipe file to highlight overflowing sections")
	cmd.Flags().StringVarP(&opts.size, "size", "s", "", "print size to draw on (default: the template's)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label sections with geometry and font size")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without reading or writing the preview cache")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, r *render.Renderer, t template.Template, popts preview.Options, format render.Format, out string) error {
	prog := newProgress(loggerFromContext(cmd.Context()))

	art, err := r.Render(cmd.Context(), t, popts, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if out == "" {
		out = t.ID + "." + string(format)
	}
	if err := os.WriteFile(out, art.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	msg := fmt.Sprintf("Rendered %s", t.Name)
	if art.Cached {
		msg += " (cached)"
	}
	prog.done(msg)
	printFile(out)
	return nil
}
