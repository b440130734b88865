package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecard/pkg/check"
	rcio "github.com/matzehuels/recipecard/pkg/io"
	"github.com/matzehuels/recipecard/pkg/overflow"
	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/store"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	recipePath string // recipe file filling the sections
	size       string // print size override
	all        bool   // check every stored template
	pick       bool   // choose the template interactively
	strict     bool   // fail when any problem is found
}

// checkCommand creates the check command reporting overlaps and overflow.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [template-id]",
		Short: "Check a template for overlapping sections and overflowing text",
		Long: `Check a template for overlapping sections. With --recipe, also estimate
whether the recipe's text fits each section at the template's print size
(or --size).`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeTemplateIDs(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all && opts.pick {
				return fmt.Errorf("--all and --pick are mutually exclusive")
			}
			if len(args) == 0 && !opts.all && !opts.pick {
				return fmt.Errorf("a template id, --all or --pick is required")
			}

			var rec *recipe.Recipe
			if opts.recipePath != "" {
				r, err := rcio.ImportRecipe(opts.recipePath)
				if err != nil {
					return err
				}
				rec = &r
			}

			return c.withStore(cmd.Context(), func(s store.Store) error {
				runner := check.NewRunner(s, loggerFromContext(cmd.Context()))
				if opts.all {
					return c.checkAll(cmd, runner, rec, opts.strict)
				}

				runOpts := check.Options{Recipe: rec, Size: opts.size}
				if opts.pick {
					ts, err := s.List(cmd.Context())
					if err != nil {
						return err
					}
					t, err := pickTemplate(ts)
					if err != nil {
						return err
					}
					if t == nil {
						return nil
					}
					runOpts.Template = t
				} else {
					runOpts.TemplateID = args[0]
				}

				report, err := runner.Run(cmd.Context(), runOpts)
				if err != nil {
					return err
				}
				printReport(report)
				if opts.strict && !report.OK() {
					return fmt.Errorf("template %s has layout problems", report.Template.ID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.recipePath, "recipe", "r", "", "recipe file (.json or .toml) to check for overflow")
	cmd.Flags().StringVarP(&opts.size, "size", "s", "", "print size to check against (default: the template's)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "check every template")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the template interactively")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error if any problem is found")

	return cmd
}

func (c *CLI) checkAll(cmd *cobra.Command, runner *check.Runner, rec *recipe.Recipe, strict bool) error {
	prog := newProgress(loggerFromContext(cmd.Context()))
	reports, err := runner.All(cmd.Context(), rec)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d templates", len(reports)))

	failed := 0
	for _, r := range reports {
		if r.OK() {
			printSuccess("%s %s", r.Template.Name, StyleDim.Render(r.Template.Size.Name))
			continue
		}
		failed++
		printError("%s %s", r.Template.Name, StyleDim.Render(r.Template.Size.Name))
		printProblems(r)
	}
	if strict && failed > 0 {
		return fmt.Errorf("%d of %d templates have layout problems", failed, len(reports))
	}
	return nil
}

// printReport prints a single check report.
func printReport(r *check.Report) {
	printInfo("%s %s", StyleTitle.Render(r.Template.Name), StyleDim.Render(r.Template.Size.Label()))
	printKeyValue("Sections", fmt.Sprint(r.Stats.SectionCount))
	if r.Overflow != nil && r.Overflow.Size.Name != r.Template.Size.Name {
		printKeyValue("Checked on", r.Overflow.Size.Label())
	}
	if r.OK() {
		printSuccess("No layout problems")
		return
	}
	printProblems(r)
}

func printProblems(r *check.Report) {
	for _, o := range overlap.BySeverity(r.Overlaps) {
		printWarning("%s", overlap.Message(o))
	}
	if r.Overflow == nil {
		return
	}
	for _, sr := range r.Overflow.OverflowingSections {
		printWarning("%s", overflow.Message(sr))
		printDetail("estimated %.1f%% of card height, %.1f%% available", sr.EstimatedHeight, sr.AvailableHeight)
	}
}
