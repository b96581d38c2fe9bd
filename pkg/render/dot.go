package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/symwriter/pkg/symbol"
)

// Options configures symbol graph rendering.
type Options struct {
	// Detailed adds dependencies and properties to node labels.
	// When false, only the full name is shown.
	Detailed bool
}

// ToDOT converts the symbols, and every symbol reachable from them through
// references, to Graphviz DOT. Nodes are identified by full name. Edges are
// labelled with the reference alias and options; references without options
// are dashed. Symbols without a namespace (builtins) are filled grey.
func ToDOT(symbols []*symbol.Symbol, opts Options) string {
	nodes := reachable(symbols)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, s := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", s.FullName(), strings.Join(nodeAttrs(s, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, s := range nodes {
		for _, ref := range s.References() {
			if ref.Symbol() == nil {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", s.FullName(), ref.Symbol().FullName(), strings.Join(edgeAttrs(ref), ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// reachable returns the symbols in breadth-first order, each once.
func reachable(roots []*symbol.Symbol) []*symbol.Symbol {
	seen := make(map[*symbol.Symbol]bool)
	var order []*symbol.Symbol
	queue := slices.Clone(roots)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s == nil || seen[s] {
			continue
		}
		seen[s] = true
		order = append(order, s)
		for _, ref := range s.References() {
			queue = append(queue, ref.Symbol())
		}
	}
	return order
}

func nodeAttrs(s *symbol.Symbol, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(s, detailed))}
	if s.Namespace() == "" {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

func nodeLabel(s *symbol.Symbol, detailed bool) string {
	if !detailed {
		return s.FullName()
	}
	lines := []string{s.FullName()}
	for _, d := range s.Dependencies() {
		lines = append(lines, "dep: "+d.String())
	}
	props := s.Properties()
	for _, k := range slices.Sorted(maps.Keys(props)) {
		lines = append(lines, fmt.Sprintf("%s: %s", k, props[k]))
	}
	return strings.Join(lines, "\n")
}

func edgeAttrs(ref symbol.Reference) []string {
	label := ref.Alias()
	options := ref.Options()
	if len(options) == 0 {
		return []string{fmt.Sprintf("label=%q", label), "style=dashed"}
	}
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = string(o)
	}
	label += " [" + strings.Join(names, ",") + "]"
	return []string{fmt.Sprintf("label=%q", label)}
}
