package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecard/pkg/store"
	"github.com/matzehuels/recipecard/pkg/template"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for recipecard. Template ids complete
from the configured store; edit commands only offer templates that are not
defaults.

Bash:
  $ source <(recipecard completion bash)

Zsh:
  $ recipecard completion zsh > "${fpath[1]}/_recipecard"

Fish:
  $ recipecard completion fish > ~/.config/fish/completions/recipecard.fish

PowerShell:
  PS> recipecard completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeTemplateIDs completes a template id in the first argument, each
// described by its name and print size. With editableOnly, default templates
// are left out.
func (c *CLI) completeTemplateIDs(editableOnly bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var comps []string
		err := c.withStore(ctx, func(s store.Store) error {
			ts, err := s.List(ctx)
			if err != nil {
				return err
			}
			for _, t := range ts {
				if editableOnly && template.CheckEditable(t) != nil {
					continue
				}
				if strings.HasPrefix(t.ID, toComplete) {
					comps = append(comps, t.ID+"\t"+t.Name+" ("+t.Size.Name+")")
				}
			}
			return nil
		})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeSectionTypes completes the section type after a template id.
func (c *CLI) completeSectionTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return c.completeTemplateIDs(true)(cmd, args, toComplete)
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var comps []string
	for _, typ := range template.SectionTypes {
		if name := typ.String(); strings.HasPrefix(name, toComplete) {
			comps = append(comps, name)
		}
	}
	return comps, cobra.ShellCompDirectiveNoFileComp
}
