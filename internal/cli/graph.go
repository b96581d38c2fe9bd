package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symwriter/pkg/buildinfo"
	"github.com/matzehuels/symwriter/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file; stdout when empty
	format   string // dot or svg
	detailed bool   // show dependencies and properties in node labels
	cache    cacheOpts
}

// graphCommand creates the graph command for drawing symbol references.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [symbols.toml]",
		Short: "Draw the symbol reference graph",
		Long: `Draw the reference graph of a symbol file as Graphviz DOT or SVG.

Each symbol is a box, each reference an arrow labelled with its alias and
context options. SVG is rendered in-process, no Graphviz installation needed.

If --format is omitted it is taken from the extension of --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromOutput(opts.output)
			}
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot (default), svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show dependencies and properties")
	opts.cache.register(cmd)

	return cmd
}

// formatFromOutput infers the graph format from an output path.
func formatFromOutput(output string) string {
	if strings.EqualFold(filepath.Ext(output), ".svg") {
		return pipeline.FormatSVG
	}
	return pipeline.FormatDOT
}

func (c *CLI) runGraph(ctx context.Context, stdout io.Writer, input string, opts graphOpts) error {
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
	data, err := runner.Graph(ctx, f, pipeline.GraphOptions{
		Format:    opts.format,
		Detailed:  opts.detailed,
		Refresh:   opts.cache.refresh,
		Generator: buildinfo.Version,
	})
	if err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	prog.done("rendered", "symbols", len(f.IDs()), "format", opts.format)

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Graph rendered")
	printFile(opts.output)
	return nil
}
