package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecard/pkg/template"
)

// sizesCommand creates the command listing the print size catalog.
func (c *CLI) sizesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sizes",
		Short: "List supported print sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{}
			for _, s := range template.Sizes() {
				rows = append(rows, []string{
					s.Name,
					s.Type.String(),
					strconv.FormatFloat(s.Width, 'g', -1, 64),
					strconv.FormatFloat(s.Height, 'g', -1, 64),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Type", "Width mm", "Height mm"}, rows))
			return nil
		},
	}
}
