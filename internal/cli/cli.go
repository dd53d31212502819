// Package cli implements the corescene command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/corescene/internal/config"
	"github.com/matzehuels/corescene/pkg/buildinfo"
	"github.com/matzehuels/corescene/pkg/cache"
	"github.com/matzehuels/corescene/pkg/pipeline"
	"github.com/matzehuels/corescene/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "corescene"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands. Config is loaded before any
// subcommand runs.
type CLI struct {
	Logger *log.Logger
	Config config.Config
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
		Short:        "Corescene lays out, pages and renders core description scenes",
		Long:         `Corescene builds a scene of vertical tracks from a document of depth intervals, cuts it into printable pages and exports them as SVG, PNG or PDF. Documents can be edited in the terminal and served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.paperCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache picks Redis when an address is configured and the file cache
// otherwise. An unusable cache directory degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NullCache{}, nil
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr, Prefix: appName + ":"})
	}
	fc, err := cache.NewFileCache(c.Config.Cache.Dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", c.Config.Cache.Dir, "err", err)
		return cache.NullCache{}, nil
	}
	return fc, nil
}

// openStore opens the configured document store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, store.Config{
		Backend:       c.Config.Store.Backend,
		Path:          c.Config.Store.Path,
		MongoURI:      c.Config.Store.MongoURI,
		MongoDatabase: c.Config.Store.MongoDatabase,
	})
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills the pipeline defaults from the config. The document's
// own settings and the command-line flags take precedence over them.
func (c *CLI) applyConfig(opts *pipeline.Options) {
	opts.PaperDefault = c.Config.Paper
	opts.PerPageDefault = c.Config.PerPage
	if opts.TTL == 0 {
		opts.TTL = c.Config.Cache.TTL
	}
	opts.Header = boolPtr(c.Config.Header)
	opts.Footer = boolPtr(c.Config.Footer)
	opts.Borders = boolPtr(c.Config.Borders)
	opts.Logger = c.Logger
}

func boolPtr(v bool) *bool { return &v }
