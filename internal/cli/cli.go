package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/symwriter/pkg/buildinfo"
	"github.com/matzehuels/symwriter/pkg/cache"
	"github.com/matzehuels/symwriter/pkg/pipeline"
	"github.com/matzehuels/symwriter/pkg/symbolfile"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "symwriter"

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

	verbose bool
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
		Short: "Symwriter generates source files from symbol definitions",
		Long: `Symwriter generates Go and TypeScript source files from a symbol file.

Symbols name the types and functions a generated file refers to, the packages
they come from and the other symbols they need. Symwriter resolves the imports
of every file, writes documentation comments, and collects the external
dependencies of the generated code into go.mod and package.json.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.enableVerbose()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.importsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.manifestCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheOpts are the cache flags shared by commands that run the pipeline.
type cacheOpts struct {
	noCache  bool
	redisURL string
	refresh  bool
}

func (o *cacheOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&o.redisURL, "redis", os.Getenv("SYMWRITER_REDIS_URL"), "cache in Redis instead of the local cache directory (redis://...)")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached output")
}

// newRunner creates a pipeline runner for CLI use. Keys in a shared Redis
// cache are scoped by the module of f.
func (c *CLI) newRunner(ctx context.Context, opts cacheOpts, f *symbolfile.File) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if scope := cmp.Or(f.Module.Path, f.Module.Name); opts.redisURL != "" && !opts.noCache && scope != "" {
		keyer = cache.NewScopedKeyer(nil, scope+":")
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, opts cacheOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/symwriter/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}

// loadSymbolFile loads the symbol file at path and logs its size.
func loadSymbolFile(ctx context.Context, path string) (*symbolfile.File, error) {
	f, err := symbolfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	loggerFromContext(ctx).Debug("loaded symbol file", "path", path, "symbols", len(f.IDs()), "units", len(f.Units))
	return f, nil
}
