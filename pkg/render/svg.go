package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// RenderSVG lays out DOT source with the Graphviz library bundled in
// go-graphviz and returns a scalable SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphviz unavailable: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("symbol graph is not valid DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("lay out symbol graph: %w", err)
	}
	return scalableRoot(buf.Bytes()), nil
}

var (
	rootTagRe  = regexp.MustCompile(`<svg\b[^>]*>`)
	sizeAttrRe = regexp.MustCompile(`\s(?:width|height)="[^"]*"`)
	viewBoxRe  = regexp.MustCompile(`viewBox="[-\d.]+\s+[-\d.]+\s+([\d.]+)\s+([\d.]+)"`)
)

// scalableRoot rewrites the root element of a Graphviz SVG. Graphviz sizes it
// in points ("62pt"); the rewritten tag takes its width and height from the
// viewBox in user units, so browsers scale it. Other attributes, such as the
// xlink namespace used by node tooltips, are kept. Documents whose root has no
// usable viewBox are returned unchanged.
func scalableRoot(svg []byte) []byte {
	loc := rootTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	tag := svg[loc[0]:loc[1]]

	m := viewBoxRe.FindSubmatch(tag)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return svg
	}

	rest := sizeAttrRe.ReplaceAll(tag[len("<svg"):], nil)
	root := fmt.Appendf(nil, `<svg width="%s" height="%s"`, userUnits(w), userUnits(h))
	root = append(root, rest...)

	out := make([]byte, 0, len(svg)+len(root)-len(tag))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}

func userUnits(v float64) string {
	return strconv.FormatFloat(math.Ceil(v), 'f', -1, 64)
}
