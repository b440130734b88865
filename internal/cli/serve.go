package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecard/pkg/api"
)

// serveCommand creates the command running the HTTP template API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the template API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			s, err := c.openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			renderer, closeCache, err := c.openRenderer(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer closeCache()

			srv := api.NewServer(s, loggerFromContext(cmd.Context()))
			srv.Renderer = renderer
			printInfo("Serving %s store on %s", cfg.Store.Backend, StyleHighlight.Render(cfg.Server.Addr))
			return srv.Run(cmd.Context(), cfg.Server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
