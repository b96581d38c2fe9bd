package golang

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/symwriter/pkg/codewriter"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// Imports collects the import paths used by one Go file.
//
// A symbol's namespace is its import path. The alias passed to ImportSymbol is
// the name the package is imported under; it is left implicit when it equals
// the symbol's own name or the last element of the path. Symbols without a
// namespace (builtins) and symbols in the file's own package are skipped.
type Imports struct {
	self    string
	aliases map[string][]string // path -> sorted aliases, "" for implicit
}

// NewImports creates an empty import set for the package at importPath.
func NewImports(importPath string) *Imports {
	return &Imports{self: importPath, aliases: make(map[string][]string)}
}

// ImportSymbol records the import of s.
func (i *Imports) ImportSymbol(s *symbol.Symbol, alias string) {
	p := s.Namespace()
	if p == "" || p == i.self {
		return
	}
	if alias == s.Name() || alias == path.Base(p) {
		alias = ""
	}
	i.Add(p, alias)
}

// Add records an import of path under alias ("" for the default name).
// Adding the same pair again has no effect.
func (i *Imports) Add(importPath, alias string) {
	aliases := i.aliases[importPath]
	n, found := slices.BinarySearch(aliases, alias)
	if found {
		return
	}
	i.aliases[importPath] = slices.Insert(aliases, n, alias)
}

// Has reports whether importPath is imported under any alias.
func (i *Imports) Has(importPath string) bool {
	_, ok := i.aliases[importPath]
	return ok
}

// Len returns the number of import lines.
func (i *Imports) Len() int {
	n := 0
	for _, a := range i.aliases {
		n += len(a)
	}
	return n
}

// Paths returns the imported paths in sorted order.
func (i *Imports) Paths() []string {
	paths := make([]string, 0, len(i.aliases))
	for p := range i.aliases {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// String renders the import declaration, or "" if nothing is imported.
// Standard library paths are grouped before the others.
func (i *Imports) String() string {
	if len(i.aliases) == 0 {
		return ""
	}

	var std, other []string
	for _, p := range i.Paths() {
		for _, a := range i.aliases[p] {
			line := strconv.Quote(p)
			if a != "" {
				line = a + " " + line
			}
			if isStd(p) {
				std = append(std, line)
			} else {
				other = append(other, line)
			}
		}
	}

	if len(std)+len(other) == 1 {
		return "import " + slices.Concat(std, other)[0] + "\n"
	}

	w := codewriter.New()
	w.SetIndentText("\t")
	w.OpenBlock("import (")
	for _, line := range std {
		w.WriteWithNoFormatting(line)
	}
	if len(std) > 0 && len(other) > 0 {
		w.WriteWithNoFormatting("")
	}
	for _, line := range other {
		w.WriteWithNoFormatting(line)
	}
	w.CloseBlock(")")
	return w.String()
}

// isStd uses the go command's rule: a standard library path has no dot in
// its first element.
func isStd(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
