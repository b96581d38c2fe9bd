// Package typescript generates TypeScript modules with a [codegen.Writer].
package typescript

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/symwriter/pkg/codegen"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// Imports collects named imports, keyed by module specifier (the symbol's
// namespace). Symbols from the file's own module or without a module are
// skipped.
type Imports struct {
	self    string
	modules map[string][]string // module -> sorted "Name" / "Name as Alias"
}

// NewImports creates an empty import set for the module at specifier self.
func NewImports(self string) *Imports {
	return &Imports{self: self, modules: make(map[string][]string)}
}

// ImportSymbol records a named import of s, renamed when alias differs from
// the symbol's name.
func (i *Imports) ImportSymbol(s *symbol.Symbol, alias string) {
	module := s.Namespace()
	if module == "" || module == i.self {
		return
	}
	named := s.Name()
	if alias != "" && alias != s.Name() {
		named += " as " + alias
	}
	names := i.modules[module]
	n, found := slices.BinarySearch(names, named)
	if !found {
		i.modules[module] = slices.Insert(names, n, named)
	}
}

// Len returns the number of imported names.
func (i *Imports) Len() int {
	n := 0
	for _, names := range i.modules {
		n += len(names)
	}
	return n
}

// String renders one import statement per module, sorted by module.
func (i *Imports) String() string {
	modules := make([]string, 0, len(i.modules))
	for m := range i.modules {
		modules = append(modules, m)
	}
	slices.Sort(modules)

	var b strings.Builder
	for _, m := range modules {
		b.WriteString("import { " + strings.Join(i.modules[m], ", ") + " } from " + strconv.Quote(m) + ";\n")
	}
	return b.String()
}

// DocWriter writes JSDoc comments.
type DocWriter struct{}

// WriteDocs wraps body in "/**" and " */", prefixing each line with " * ".
func (DocWriter) WriteDocs(w *codegen.Writer, body func(*codegen.Writer)) {
	w.WriteWithNoFormatting("/**")
	w.SetNewlinePrefix(" * ")
	body(w)
	w.SetNewlinePrefix("")
	w.WriteWithNoFormatting(" */")
}

var _ codegen.DocumentationWriter = DocWriter{}

// Writer generates one TypeScript module.
type Writer struct {
	*codegen.Writer

	module  string
	imports *Imports
}

// New creates a writer for the module imported as specifier module.
func New(module string, opts ...codegen.Option) *Writer {
	imports := NewImports(module)
	w := &Writer{module: module, imports: imports}
	w.Writer = codegen.New(DocWriter{}, imports, opts...)
	w.SetIndentText("  ")
	if err := w.PutFormatter('T', formatType); err != nil {
		panic(err)
	}
	return w
}

// Module returns the module specifier of the file.
func (w *Writer) Module() string { return w.module }

// Imports returns the module's import set.
func (w *Writer) Imports() *Imports { return w.imports }

// WriteDocsString writes docs as a JSDoc comment. A "*/" inside docs would end
// the comment early and is escaped.
func (w *Writer) WriteDocsString(docs string) {
	w.Writer.WriteDocsString(strings.ReplaceAll(docs, "*/", "*\\/"))
}

// String renders the import statements followed by the body.
func (w *Writer) String() string {
	imports := w.imports.String()
	body := w.Writer.String()
	if imports != "" && body != "" {
		return imports + "\n" + body
	}
	return imports + body
}

// formatType is the "T" formatter: a reference renders as its alias, a
// symbol as its name.
func formatType(v any) (string, error) {
	switch v := v.(type) {
	case symbol.Reference:
		return v.Alias(), nil
	case *symbol.Symbol:
		return v.Name(), nil
	}
	return "", fmt.Errorf("expected a symbol or reference, got %T", v)
}
