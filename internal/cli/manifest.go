package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symwriter/pkg/buildinfo"
	"github.com/matzehuels/symwriter/pkg/manifest"
	"github.com/matzehuels/symwriter/pkg/pipeline"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// manifestCommand creates the manifest command, which prints the aggregated
// dependencies of a symbol file without writing any units.
func (c *CLI) manifestCommand() *cobra.Command {
	var (
		types []string
		raw   bool
		opts  cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "manifest [symbols.toml]",
		Short: "Print the dependencies of the generated code",
		Long: `Generate every unit in memory and print the merged external dependencies,
one per line as type:package@version.

With --raw the go.mod and package.json that 'generate' would write are printed
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runManifest(cmd.Context(), cmd.OutOrStdout(), args[0], types, raw, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "only list dependencies of this type (go, npm, npm-dev; repeatable)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print go.mod and package.json")
	opts.register(cmd)

	return cmd
}

func (c *CLI) runManifest(ctx context.Context, out io.Writer, input string, types []string, raw bool, opts cacheOpts) error {
	f, err := loadSymbolFile(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts, f)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Generate(ctx, f, pipeline.Options{
		Refresh:   opts.refresh,
		Generator: buildinfo.Version,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if raw {
		names := make([]string, 0, len(result.Manifests))
		for name := range result.Manifests {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintln(out, StyleTitle.Render(name))
			fmt.Fprint(out, string(result.Manifests[name]))
		}
		return nil
	}

	deps := manifest.Merge(result.Dependencies)
	if len(types) > 0 {
		deps = manifest.ByType(deps, types...)
	}
	slices.SortFunc(deps, func(a, b symbol.Dependency) int {
		return cmp.Or(cmp.Compare(a.Type, b.Type), cmp.Compare(a.PackageName, b.PackageName))
	})
	for _, d := range deps {
		fmt.Fprintln(out, d.String())
	}
	return nil
}

