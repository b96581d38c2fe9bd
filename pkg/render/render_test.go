package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/symwriter/pkg/symbol"
)

func graph(t *testing.T) []*symbol.Symbol {
	t.Helper()
	tbl := symbol.NewTable()
	if err := tbl.Define("node", "Node", "models",
		symbol.WithDependencies(symbol.NewDependency("go", "example.com/models", "v1.0.0")),
		symbol.WithProperty("kind", "struct"),
	); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Define("list", "List", "models"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Define("string", "string", ""); err != nil {
		t.Fatal(err)
	}
	for _, r := range []struct {
		from, to, alias string
		opts            []symbol.ContextOption
	}{
		{"node", "list", "Children", []symbol.ContextOption{symbol.Use}},
		{"list", "node", "", []symbol.ContextOption{symbol.Use, symbol.Declare}},
		{"node", "string", "", nil},
	} {
		if err := tbl.Reference(r.from, r.to, r.alias, r.opts...); err != nil {
			t.Fatal(err)
		}
	}
	syms, err := tbl.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	return []*symbol.Symbol{syms["node"]}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(graph(t), Options{})

	for _, want := range []string{
		"digraph G {\n",
		"  \"models.Node\" [label=\"models.Node\"];\n",
		"  \"models.List\" [label=\"models.List\"];\n",
		"  \"string\" [label=\"string\", fillcolor=lightgrey];\n",
		"  \"models.Node\" -> \"models.List\" [label=\"Children [use]\"];\n",
		"  \"models.List\" -> \"models.Node\" [label=\"Node [declare,use]\"];\n",
		"  \"models.Node\" -> \"string\" [label=\"string\", style=dashed];\n",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	if strings.Count(dot, "[label=\"models.Node\"]") != 1 {
		t.Errorf("cyclic graph should list each node once:\n%s", dot)
	}
	if strings.Index(dot, "\"models.Node\" [") > strings.Index(dot, "\"models.List\" [") {
		t.Error("nodes should be listed breadth-first from the roots")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(graph(t), Options{Detailed: true})
	want := `"models.Node" [label="models.Node\ndep: go:example.com/models@v1.0.0\nkind: struct"];`
	if !strings.Contains(dot, want) {
		t.Errorf("DOT missing detailed label %q:\n%s", want, dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

const graphvizSVG = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN"
 "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<!-- Generated by graphviz version 2.50.0 (0)
 -->
<!-- Title: G Pages: 1 -->
<svg width="161pt" height="116pt"
 viewBox="0.00 0.00 160.50 116.00" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
<g id="graph0" class="graph" transform="scale(1 1) rotate(0) translate(4 112)">
<polygon fill="white" stroke="none" points="-4,4 -4,-112 156.5,-112 156.5,4 -4,4"/>
<g id="node1" class="node"><title>models.Node</title>
<polygon fill="none" stroke="black" stroke-width="2" points="0,-36 0,-72 152.5,-72 152.5,-36 0,-36"/>
</g>
</g>
</svg>
`

func TestScalableRoot(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // expected root tag; "" means the input is returned unchanged
	}{
		{
			name: "graphviz output",
			in:   graphvizSVG,
			want: `<svg width="161" height="116"
 viewBox="0.00 0.00 160.50 116.00" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`,
		},
		{
			name: "single line root",
			in:   `<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<svg width="62" height="44" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg">`,
		},
		{name: "no viewBox", in: "<svg><g/></svg>"},
		{name: "empty viewBox", in: `<svg width="0pt" viewBox="0 0 0 0"></svg>`},
		{name: "not svg", in: "digraph G {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := scalableRoot([]byte(tt.in))
			if tt.want == "" {
				if string(out) != tt.in {
					t.Errorf("scalableRoot() changed the input:\n%s", out)
				}
				return
			}
			if got := rootTagRe.Find(out); string(got) != tt.want {
				t.Errorf("root tag = %s\nwant %s", got, tt.want)
			}
			in, at := []byte(tt.in), rootTagRe.FindIndex([]byte(tt.in))
			got := rootTagRe.FindIndex(out)
			if !bytes.Equal(out[:got[0]], in[:at[0]]) || !bytes.Equal(out[got[1]:], in[at[1]:]) {
				t.Error("content outside the root element changed")
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(graph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("models.Node")) {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected an error for malformed DOT")
	}
}
