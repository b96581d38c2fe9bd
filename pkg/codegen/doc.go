// Package codegen provides a symbol-aware writer for code generators.
//
// # Overview
//
// A [Writer] emits formatted text (it embeds a [codewriter.CodeWriter]) and
// at the same time tracks two things about the file being generated:
//
//   - the external dependencies it needs, in a [Ledger]
//   - the symbols that must be imported, through an [ImportContainer]
//
// Both are derived from [symbol.Symbol] values. [Writer.AddImport] records the
// symbol's dependencies, hands the symbol to the import container, and then
// walks the symbol's references, following only those tagged with one of the
// requested [symbol.ContextOption] values (or all of them when none are given).
//
// # Language Capabilities
//
// The writer knows nothing about any target language. Two capabilities are
// injected at construction:
//
//   - [ImportContainer] decides whether a symbol becomes an import statement
//     (for example, symbols in the file's own package are skipped)
//   - [DocumentationWriter] wraps a block of writes in the target language's
//     documentation comment syntax
//
// A language generator is a plain struct holding a *Writer plus its own
// rendering logic; see the golang and typescript packages.
//
// # Cycles
//
// Reference graphs may contain cycles (a tree node referencing a list of
// nodes). The traversal keeps the symbols on the current path and returns a
// [*CyclicReferenceError] when a path revisits one, instead of recursing
// forever. [WithUnboundedTraversal] restores the plain recursive walk for
// generators whose graphs are acyclic by construction.
//
// # Concurrency
//
// A Writer is owned by one goroutine for the lifetime of one output file. Use
// one Writer per file to generate files in parallel.
package codegen
