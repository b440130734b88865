package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecard/pkg/buildinfo"
	"github.com/matzehuels/recipecard/pkg/config"
	"github.com/matzehuels/recipecard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "recipecard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config, empty for the default location
	backend    string // --store, overrides the configured backend
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Recipecard lays out recipe cards for printing",
		Long:         `Recipecard manages recipe card templates and checks them for overlapping sections and recipe text that will not fit when printed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/recipecard/config.toml)")
	root.PersistentFlags().StringVar(&c.backend, "store", "", "template store backend: file, memory, redis, mongo")

	root.AddCommand(c.sizesCommand())
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store
// =============================================================================

// loadConfig reads the config file and environment and applies flag overrides.
// A config log level below the current one (e.g. "debug") lowers the logger.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.backend != "" {
		if !slices.Contains(config.Backends, c.backend) {
			return nil, fmt.Errorf("invalid store backend: %s (must be one of %v)", c.backend, config.Backends)
		}
		cfg.Store.Backend = c.backend
	}
	if level := cfg.Level(); level < c.Logger.GetLevel() {
		c.Logger.SetLevel(level)
	}
	return cfg, nil
}

// openStore opens the configured template store and seeds the default
// templates. Remote backends show a spinner while connecting and seeding.
// The caller must Close the store.
func (c *CLI) openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	stop := func() {}
	var spin *storeSpinner
	if remote(cfg.Store.Backend) {
		spin = newStoreSpinner(ctx, os.Stderr, fmt.Sprintf("Connecting to %s...", storeTarget(cfg)))
		spin.Start()
		stop = spin.Stop
		defer stop()
	}

	s, err := store.Open(ctx, *cfg)
	if err != nil {
		return nil, err
	}
	if spin != nil {
		spin.Update("Seeding default templates...")
	}
	n, err := store.EnsureDefaults(ctx, s)
	stop()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("seed default templates: %w", err)
	}
	c.Logger.Debug("Opened template store", "target", storeTarget(cfg), "seeded", n)
	return s, nil
}

// withStore loads the config, opens the store and runs fn with it.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := c.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func remote(backend string) bool {
	return backend == config.BackendRedis || backend == config.BackendMongo
}
