// Package cli implements the bandslicer command-line interface.
//
// The commands slice meshes into projection bands, report the reduced
// chains of a band, browse results interactively, generate sample meshes,
// re-render saved results and serve the HTTP API. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - slice: slice a mesh and export the result
//   - highlight: print the chain vertices of a band
//   - browse: explore the bands of a mesh in a terminal UI
//   - sample: write a generated sample mesh
//   - render: export a saved result in other formats
//   - serve: run the HTTP API
//   - cache: manage the result cache
//
// # Configuration
//
// Defaults are read from the TOML file given by --config, or from
// $XDG_CONFIG_HOME/bandslicer/config.toml. Flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/buildinfo"
	"github.com/matzehuels/bandslicer/pkg/cache"
	"github.com/matzehuels/bandslicer/pkg/config"
	"github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "bandslicer"

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

	configPath string
	noCache    bool
	cfg        *config.Config
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
		Use:   appName,
		Short: "Bandslicer partitions mesh vertices into projection bands",
		Long: `Bandslicer slices the vertices of a 3D mesh into bands along a direction,
splits each band into connected subsets and reduces every subset to the chain
of vertices that border other bands.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bandslicer/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.sliceCommand())
	root.AddCommand(c.highlightCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// config loads the configuration file once per invocation.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	backend, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCache opens the configured cache backend. An unreachable Redis server
// degrades to no caching; other backend errors fail the command.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if !c.cacheEnabled(cfg) {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			if !cache.IsRetryable(err) {
				return nil, err
			}
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.Cache.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	default:
		dir, err := cfg.Cache.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// cacheEnabled reports whether caching is turned on by both the flags and
// the config.
func (c *CLI) cacheEnabled(cfg *config.Config) bool {
	return !c.noCache && cfg.Cache.Backend != config.BackendNone
}

// =============================================================================
// Options Helpers
// =============================================================================

// sliceFlags are the flags shared by every command that slices a mesh.
type sliceFlags struct {
	direction string
	prefix    string
	format    string
	refresh   bool
}

func (f *sliceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "slicing direction as x,y,z (default from config, +Z)")
	cmd.Flags().StringVarP(&f.prefix, "prefix", "p", "", "band name prefix (default from config, \"slice\")")
	cmd.Flags().StringVar(&f.format, "mesh-format", "", "mesh format when reading stdin: json (default), obj")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// options builds pipeline options for input from the flags over cfg. An
// input of "-" reads the mesh from stdin.
func (f *sliceFlags) options(cfg *config.Config, input string, stdin io.Reader) (pipeline.Options, error) {
	opts := pipeline.Options{
		Prefix:  cfg.Slice.Prefix,
		Refresh: f.refresh,
	}
	copy(opts.Direction[:], cfg.Slice.Direction)

	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return opts, fmt.Errorf("read stdin: %w", err)
		}
		opts.MeshData = data
		opts.MeshFormat = f.format
	} else {
		opts.InputPath = input
	}

	if f.direction != "" {
		d, err := parseDirection(f.direction)
		if err != nil {
			return opts, err
		}
		opts.Direction = d
	}
	if f.prefix != "" {
		opts.Prefix = f.prefix
	}
	if ttl, err := cfg.Cache.TTLDuration(); err == nil && ttl > 0 {
		opts.ResultTTL = ttl
	}
	return opts, nil
}

// parseDirection parses "x,y,z".
func parseDirection(s string) ([3]float64, error) {
	var d [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return d, errors.New(errors.ErrCodeInvalidDirection, "direction %q: want x,y,z", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return d, errors.Wrap(errors.ErrCodeInvalidDirection, err, "direction %q", s)
		}
		d[i] = v
	}
	return d, errors.ValidateDirection(d)
}

// parseIndices parses a comma-separated list of subset indices.
func parseIndices(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var ids []int
	for _, p := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "subset index %q", p)
		}
		ids = append(ids, v)
	}
	return ids, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"json"}
	}
	return strings.Split(s, ",")
}
