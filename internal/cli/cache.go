package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecard/pkg/cache"
	"github.com/matzehuels/recipecard/pkg/config"
	"github.com/matzehuels/recipecard/pkg/render"
)

// openRenderer creates a preview renderer over the configured cache. With
// noCache set, or the "none" backend, previews are always rendered fresh.
func (c *CLI) openRenderer(ctx context.Context, cfg *config.Config, noCache bool) (*render.Renderer, func(), error) {
	if noCache {
		cfg.Cache.Backend = config.CacheNone
	}
	pc, err := cache.Open(ctx, *cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open preview cache: %w", err)
	}
	r := render.NewRenderer(pc, cfg.Cache.TTL)
	r.Logger = c.Logger
	return r, func() { pc.Close() }, nil
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered preview cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached previews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend != config.CacheFile {
				printInfo("The %s cache backend has nothing to clear locally", cfg.Cache.Backend)
				return nil
			}

			fc, err := cache.NewFileCache(cfg.Cache.Dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached previews", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the preview cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Dir)
			return nil
		},
	}
}
