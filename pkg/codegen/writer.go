package codegen

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/symwriter/pkg/codewriter"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// Writer is a CodeWriter that tracks imports and dependencies.
type Writer struct {
	*codewriter.CodeWriter

	docs      DocumentationWriter
	imports   ImportContainer
	ledger    Ledger
	logger    *log.Logger
	unbounded bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used for debug tracing of imports.
func WithLogger(l *log.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithUnboundedTraversal disables cycle detection. References are followed by
// plain recursion, so a cyclic reference graph exhausts the stack. Only use it
// for graphs that are acyclic by construction.
func WithUnboundedTraversal() Option {
	return func(w *Writer) { w.unbounded = true }
}

// New creates a writer bound to the given capabilities. It panics if either is
// nil.
func New(docs DocumentationWriter, imports ImportContainer, opts ...Option) *Writer {
	if docs == nil {
		panic("codegen: nil DocumentationWriter")
	}
	if imports == nil {
		panic("codegen: nil ImportContainer")
	}
	w := &Writer{
		CodeWriter: codewriter.New(),
		docs:       docs,
		imports:    imports,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ImportContainer returns the container bound at construction.
// Language writers use it to render the import block.
func (w *Writer) ImportContainer() ImportContainer { return w.imports }

// Dependencies returns a snapshot of every dependency recorded so far,
// in encounter order and including duplicates.
func (w *Writer) Dependencies() []symbol.Dependency { return w.ledger.Snapshot() }

// AddDependency records every dependency exposed by src.
func (w *Writer) AddDependency(src symbol.DependencyContainer) {
	deps := src.Dependencies()
	w.logger.Debug("adding dependencies", "source", src, "dependencies", deps)
	w.ledger.Add(deps...)
}

// WriteDocs writes documentation produced by body, wrapped by the bound
// DocumentationWriter. The writer state is pushed before and popped after;
// body must leave the stack balanced.
//
// Templates written by body are still formatted. Use WriteWithNoFormatting or
// escape the expression start when writing arbitrary text.
func (w *Writer) WriteDocs(body func(*Writer)) {
	w.PushState()
	w.docs.WriteDocs(w, body)
	w.PopState()
}

// WriteDocsString writes docs verbatim as a documentation comment.
// Template syntax in docs is not interpreted.
func (w *Writer) WriteDocsString(docs string) {
	w.WriteDocs(func(w *Writer) {
		w.WriteWithNoFormatting(docs)
	})
}

var _ symbol.DependencyContainer = (*Writer)(nil)
