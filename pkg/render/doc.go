// Package render draws symbol reference graphs.
//
// [ToDOT] produces Graphviz DOT source: one box per symbol, one arrow per
// reference. [RenderSVG] lays it out in-process with Graphviz (compiled to
// WebAssembly by github.com/goccy/go-graphviz), so no dot binary is needed.
//
//	dot := render.ToDOT(file.Symbols(), render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Reference cycles are drawn like any other edge.
package render
