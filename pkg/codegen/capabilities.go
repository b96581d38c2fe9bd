package codegen

import "github.com/matzehuels/symwriter/pkg/symbol"

// ImportContainer decides which symbols become import statements.
//
// ImportSymbol is called for every symbol the writer imports, including every
// symbol reached through references. Calling it twice with the same symbol and
// alias must not produce two imports. Any other policy (skipping the current
// namespace, merging aliases) is up to the implementation, as is rendering the
// final import block.
type ImportContainer interface {
	ImportSymbol(s *symbol.Symbol, alias string)
}

// DocumentationWriter renders a documentation comment around body.
//
// WriteDocs is called after the writer has pushed its state, so it may change
// the newline prefix or indentation freely; the writer pops the state
// afterwards. Implementations write the opening delimiter, call body(w), and
// write the closing delimiter.
type DocumentationWriter interface {
	WriteDocs(w *Writer, body func(*Writer))
}

// DocumentationWriterFunc adapts a function to a DocumentationWriter.
type DocumentationWriterFunc func(w *Writer, body func(*Writer))

// WriteDocs calls f(w, body).
func (f DocumentationWriterFunc) WriteDocs(w *Writer, body func(*Writer)) { f(w, body) }

// ImportContainerFunc adapts a function to an ImportContainer.
type ImportContainerFunc func(s *symbol.Symbol, alias string)

// ImportSymbol calls f(s, alias).
func (f ImportContainerFunc) ImportSymbol(s *symbol.Symbol, alias string) { f(s, alias) }
