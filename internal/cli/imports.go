package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symwriter/pkg/codegen"
	"github.com/matzehuels/symwriter/pkg/pipeline"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// importsCommand creates the imports command, which shows what importing a
// single symbol records.
func (c *CLI) importsCommand() *cobra.Command {
	var (
		options   []string
		unbounded bool
	)

	cmd := &cobra.Command{
		Use:   "imports [symbols.toml] [symbol-id]",
		Short: "Show the imports and dependencies of one symbol",
		Long: `Import a single symbol into an empty writer and print every import
and dependency it records, in the order they are recorded.

With --option only references carrying one of the given context options are
followed (e.g. --option use). Without it every reference is followed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImports(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], options, unbounded)
		},
	}

	cmd.Flags().StringSliceVar(&options, "option", nil, "follow only references with this context option (use, declare; repeatable)")
	cmd.Flags().BoolVar(&unbounded, "unbounded", false, "follow references without cycle detection")

	return cmd
}

func (c *CLI) runImports(ctx context.Context, out io.Writer, input, id string, options []string, unbounded bool) error {
	f, err := loadSymbolFile(ctx, input)
	if err != nil {
		return err
	}

	ctxOpts := make([]symbol.ContextOption, len(options))
	for i, o := range options {
		ctxOpts[i] = symbol.ContextOption(strings.TrimSpace(o))
	}
	wopts := []codegen.Option{codegen.WithLogger(c.Logger)}
	if unbounded {
		wopts = append(wopts, codegen.WithUnboundedTraversal())
	}

	res, resolveErr := pipeline.Resolve(f, id, ctxOpts, wopts...)
	if res == nil {
		return resolveErr
	}

	fmt.Fprintln(out, StyleTitle.Render("Imports"))
	for i, imp := range res.Imports {
		fmt.Fprintf(out, "  %s %s %s\n",
			StyleNumber.Render(fmt.Sprintf("%2d", i+1)),
			StyleValue.Render(imp.Symbol.FullName()),
			StyleDim.Render("as "+imp.Alias))
	}
	fmt.Fprintln(out, StyleTitle.Render("Dependencies"))
	if len(res.Dependencies) == 0 {
		fmt.Fprintln(out, "  "+StyleDim.Render("none"))
	}
	for _, d := range res.Dependencies {
		fmt.Fprintln(out, "  "+StyleValue.Render(d.String()))
	}
	return resolveErr
}
