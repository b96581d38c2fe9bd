// Package pkg provides the libraries behind symwriter.
//
// # Overview
//
// Symwriter generates source files that refer to symbols: named types and
// functions living in some namespace, depending on external packages and on
// each other. A generated file only compiles if it imports every symbol it
// names and if the packages behind those symbols end up in the project's
// manifest. The pkg directory is organized into:
//
//  1. [symbol] - The symbol model (symbols, references, dependencies)
//  2. [codewriter] - Indentation-aware text output with templates
//  3. [codegen] - The symbol-aware writer: import resolution and the dependency ledger
//  4. [golang], [typescript] - Language bindings (import blocks, doc comments)
//  5. [symbolfile], [manifest], [render] - Symbol files, go.mod/package.json, graphs
//  6. [pipeline], [cache], [observability] - Orchestration of whole symbol files
//
// # Architecture
//
// The typical data flow through symwriter:
//
//	symbols.toml
//	     ↓
//	[symbolfile] package (parse + link symbols)
//	     ↓
//	[pipeline] package (one language writer per unit)
//	     ↓
//	[codegen] package (imports + dependency ledger)
//	     ↓
//	source files, go.mod, package.json
//
// # Quick Start
//
//	f, _ := symbolfile.Load("symbols.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Generate(ctx, f, pipeline.Options{})
//	for _, u := range result.Units {
//	    os.WriteFile(u.Path, u.Content, 0o644)
//	}
//
// Writers can also be used directly:
//
//	w := golang.New("models", "github.com/acme/models")
//	_ = w.AddUseImports(uuidSymbol)
//	w.Write("type User struct{ ID $L }", "uuid.UUID")
//	src, _ := w.Format()
package pkg
