package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symwriter/pkg/buildinfo"
	"github.com/matzehuels/symwriter/pkg/errors"
	"github.com/matzehuels/symwriter/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output      string // directory the units and manifests are written to
	parallelism int
	unbounded   bool
	header      string
	noHeader    bool
	noManifests bool
	dryRun      bool
	cache       cacheOpts
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [symbols.toml]",
		Short: "Generate the units of a symbol file",
		Long: `Generate every unit of a symbol file.

Each unit becomes one source file under the output directory. When the symbol
file declares a [module], the external dependencies of the generated code are
written to go.mod and package.json next to it.

Output is cached by the content of the symbol file, so regenerating an
unchanged file is served from the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().IntVarP(&opts.parallelism, "jobs", "j", pipeline.DefaultParallelism, "units generated in parallel")
	cmd.Flags().BoolVar(&opts.unbounded, "unbounded", false, "follow references without cycle detection")
	cmd.Flags().StringVar(&opts.header, "header", "", "comment written above Go package clauses")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "omit the generated-code header")
	cmd.Flags().BoolVar(&opts.noManifests, "no-manifests", false, "do not write go.mod or package.json")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "list the files without writing them")
	opts.cache.register(cmd)

	return cmd
}

// runGenerate loads the symbol file, generates it and writes the results.
func (c *CLI) runGenerate(ctx context.Context, input string, opts generateOpts) error {
	f, err := loadSymbolFile(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache, f)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Generate(ctx, f, pipeline.Options{
		Parallelism: opts.parallelism,
		Refresh:     opts.cache.refresh,
		Unbounded:   opts.unbounded,
		Header:      opts.header,
		NoHeader:    opts.noHeader,
		Generator:   buildinfo.Version,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	prog.done("generated", "units", len(result.Units), "cached", result.Stats.CacheHits)

	files := make(map[string][]byte, len(result.Units)+len(result.Manifests))
	for _, u := range result.Units {
		files[u.Path] = u.Content
	}
	if !opts.noManifests {
		for name, data := range result.Manifests {
			if _, ok := files[name]; ok {
				return errors.New(errors.ErrCodeInvalidSymbolFile, "unit %s collides with the generated manifest", name)
			}
			files[name] = data
		}
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	if opts.dryRun {
		printInfo("Would write %d files to %s", len(paths), opts.output)
	} else {
		for _, p := range paths {
			if err := writeFile(filepath.Join(opts.output, p), files[p]); err != nil {
				return err
			}
		}
		printSuccess("Wrote %d files to %s", len(paths), opts.output)
	}
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Units, len(result.Dependencies), result.Stats.CacheHits)
	return nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
