package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/corescene/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached pages and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", dir)
			if c.Config.Cache.RedisAddr != "" {
				printWarning("Entries in Redis at %s expire on their own", c.Config.Cache.RedisAddr)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out, c.Config.Cache.Dir)
			return nil
		},
	}
}
