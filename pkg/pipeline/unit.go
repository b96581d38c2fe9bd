package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/symwriter/pkg/codegen"
	"github.com/matzehuels/symwriter/pkg/errors"
	"github.com/matzehuels/symwriter/pkg/golang"
	"github.com/matzehuels/symwriter/pkg/symbol"
	"github.com/matzehuels/symwriter/pkg/symbolfile"
	"github.com/matzehuels/symwriter/pkg/typescript"
)

type symbolList []*symbol.Symbol

func (l symbolList) Symbols() []*symbol.Symbol { return l }

// GenerateUnit writes one unit of f. It does not use the cache.
func GenerateUnit(f *symbolfile.File, u symbolfile.Unit, opts Options, logger *log.Logger) (UnitResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return UnitResult{}, err
	}
	wopts := []codegen.Option{codegen.WithLogger(logger.With("unit", u.Path))}
	if opts.Unbounded {
		wopts = append(wopts, codegen.WithUnboundedTraversal())
	}

	res := UnitResult{Path: u.Path, Language: u.Language}
	switch u.Language {
	case symbolfile.LanguageGo:
		w := golang.New(u.Package, u.Namespace, wopts...)
		w.SetHeader(unitHeader(u, opts))
		if err := writeBlocks(f, u, w.Writer, w.WriteMarkdownDocs); err != nil {
			return res, err
		}
		src, err := w.Format()
		if err != nil {
			logger.Warn("generated Go does not parse, writing it unformatted", "unit", u.Path, "error", err)
			src = []byte(w.String())
		}
		res.Content = src
		res.Deps = w.Dependencies()
	case symbolfile.LanguageTypeScript:
		w := typescript.New(u.Namespace, wopts...)
		if err := writeBlocks(f, u, w.Writer, w.WriteDocsString); err != nil {
			return res, err
		}
		res.Content = []byte(w.String())
		res.Deps = w.Dependencies()
	default:
		return res, errors.New(errors.ErrCodeInvalidLanguage, "unit %s: unsupported language %q", u.Path, u.Language)
	}
	return res, nil
}

// unitHeader returns the header written above the package clause of u.
// A unit's own header wins over opts.Header unless headers are off. Only Go
// units carry one. opts must be validated.
func unitHeader(u symbolfile.Unit, opts Options) string {
	if u.Language != symbolfile.LanguageGo || opts.NoHeader {
		return ""
	}
	if u.Header != "" {
		return u.Header
	}
	return opts.Header
}

// writeBlocks emits the blocks of u in order, separated by blank lines.
func writeBlocks(f *symbolfile.File, u symbolfile.Unit, w *codegen.Writer, writeDocs func(string)) error {
	for i, b := range u.Blocks {
		if i > 0 {
			w.WriteWithNoFormatting("")
		}

		declared, err := f.Resolve(b.Declare...)
		if err != nil {
			return fmt.Errorf("unit %s: %w", u.Path, err)
		}
		for _, s := range declared {
			if err := w.AddImport(s, s.Name(), symbol.Declare); err != nil {
				return fmt.Errorf("unit %s: %w", u.Path, err)
			}
		}
		used, err := f.Resolve(b.Use...)
		if err != nil {
			return fmt.Errorf("unit %s: %w", u.Path, err)
		}
		if err := w.AddUseImports(symbolList(used)); err != nil {
			return fmt.Errorf("unit %s: %w", u.Path, err)
		}

		if b.Doc != "" {
			writeDocs(b.Doc)
		}
		if b.Template != "" {
			args := make([]any, len(b.Args))
			for j, a := range b.Args {
				args[j] = a
			}
			w.Write(b.Template, args...)
		}
	}
	if err := w.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSymbolFile, err, "unit %s", u.Path)
	}
	return nil
}
