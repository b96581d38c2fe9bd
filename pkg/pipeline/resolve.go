package pipeline

import (
	"github.com/matzehuels/symwriter/pkg/codegen"
	"github.com/matzehuels/symwriter/pkg/symbol"
	"github.com/matzehuels/symwriter/pkg/symbolfile"
)

// Import is one ImportSymbol call observed while resolving a symbol.
type Import struct {
	Symbol *symbol.Symbol
	Alias  string
}

// Resolution is the outcome of resolving a single symbol.
type Resolution struct {
	// Imports are in call order, repeats included.
	Imports []Import
	// Dependencies is the writer's ledger.
	Dependencies []symbol.Dependency
}

// Resolve imports the symbol id of f into a fresh writer and reports every
// import and dependency it recorded. Only references carrying one of options
// are followed; no options follows every reference.
//
// On a reference cycle the partial resolution is returned with the error.
func Resolve(f *symbolfile.File, id string, options []symbol.ContextOption, opts ...codegen.Option) (*Resolution, error) {
	syms, err := f.Resolve(id)
	if err != nil {
		return nil, err
	}
	s := syms[0]

	res := &Resolution{}
	imports := codegen.ImportContainerFunc(func(s *symbol.Symbol, alias string) {
		res.Imports = append(res.Imports, Import{Symbol: s, Alias: alias})
	})
	docs := codegen.DocumentationWriterFunc(func(w *codegen.Writer, body func(*codegen.Writer)) { body(w) })

	w := codegen.New(docs, imports, opts...)
	err = w.AddImport(s, s.Name(), options...)
	res.Dependencies = w.Dependencies()
	return res, err
}
