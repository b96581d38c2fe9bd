package golang

import (
	"go/format"
	"strings"

	"github.com/matzehuels/symwriter/pkg/codegen"
)

// Writer generates one Go source file.
type Writer struct {
	*codegen.Writer

	pkg        string
	importPath string
	imports    *Imports
	header     string
}

// New creates a writer for a file in package pkgName, which lives at
// importPath. Symbols in importPath are never imported.
func New(pkgName, importPath string, opts ...codegen.Option) *Writer {
	imports := NewImports(importPath)
	w := &Writer{
		pkg:        pkgName,
		importPath: importPath,
		imports:    imports,
	}
	w.Writer = codegen.New(DocWriter{}, imports, opts...)
	w.SetIndentText("\t")
	return w
}

// Package returns the package name.
func (w *Writer) Package() string { return w.pkg }

// ImportPath returns the import path of the package.
func (w *Writer) ImportPath() string { return w.importPath }

// Imports returns the file's import set.
func (w *Writer) Imports() *Imports { return w.imports }

// SetHeader sets a comment written above the package clause, such as
// "Code generated by symwriter. DO NOT EDIT."
func (w *Writer) SetHeader(header string) { w.header = header }

// WriteMarkdownDocs converts md with DocComment and writes it as a doc
// comment.
func (w *Writer) WriteMarkdownDocs(md string) {
	w.WriteDocsString(DocComment(md))
}

// String renders the complete file: header, package clause, imports and body.
func (w *Writer) String() string {
	var b strings.Builder
	if w.header != "" {
		for line := range strings.SplitSeq(w.header, "\n") {
			b.WriteString(strings.TrimRight("// "+line, " "))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString("package " + w.pkg + "\n")
	if imports := w.imports.String(); imports != "" {
		b.WriteString("\n" + imports)
	}
	if body := w.Writer.String(); body != "" {
		b.WriteString("\n" + body)
	}
	return b.String()
}

// Format returns the file formatted with gofmt.
func (w *Writer) Format() ([]byte, error) {
	return format.Source([]byte(w.String()))
}
