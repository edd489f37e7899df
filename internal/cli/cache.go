package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/cache"
	"github.com/matzehuels/bandslicer/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !c.cacheEnabled(cfg) {
				printInfo("Cache is disabled")
				return nil
			}
			backend, err := c.newCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			clearer, ok := backend.(cache.Clearer)
			if _, null := backend.(*cache.NullCache); null || !ok {
				printWarning("Cache backend %s is unavailable", cfg.Cache.Backend)
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", describeCache(cfg, backend))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			dir, err := cfg.Cache.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func describeCache(cfg *config.Config, backend cache.Cache) string {
	switch b := backend.(type) {
	case *cache.FileCache:
		return "file " + b.Dir()
	case *cache.RedisCache:
		return "redis " + cfg.Cache.RedisAddr
	default:
		return "none"
	}
}
