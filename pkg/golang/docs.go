package golang

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/matzehuels/symwriter/pkg/codegen"
)

// DocWriter writes Go line comments.
type DocWriter struct{}

// WriteDocs prefixes every line written by body with "// ".
// Blank lines render as "//".
func (DocWriter) WriteDocs(w *codegen.Writer, body func(*codegen.Writer)) {
	w.SetNewlinePrefix("// ")
	body(w)
}

var _ codegen.DocumentationWriter = DocWriter{}

var markdown = goldmark.New()

// DocComment converts markdown to the text of a Go doc comment:
// paragraphs are kept, headings become "# Heading", code blocks are
// tab-indented and list items use "  - " or "  1. " markers.
// Inline markup is left as written.
func DocComment(md string) string {
	src := []byte(md)
	root := markdown.Parser().Parse(text.NewReader(src))
	return strings.Join(convertBlocks(src, root), "\n\n")
}

func convertBlocks(src []byte, parent ast.Node) []string {
	var blocks []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := convertBlock(src, n); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func convertBlock(src []byte, n ast.Node) string {
	switch n := n.(type) {
	case *ast.Heading:
		return "# " + headingText(src, n)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := codeLines(src, n)
		for i, l := range lines {
			if l != "" {
				lines[i] = "\t" + l
			}
		}
		return strings.Join(lines, "\n")
	case *ast.List:
		return convertList(src, n)
	case *ast.ThematicBreak, *ast.HTMLBlock:
		return ""
	}
	if n.Lines().Len() == 0 {
		return strings.Join(convertBlocks(src, n), "\n\n")
	}
	return strings.Join(textLines(src, n), "\n")
}

func convertList(src []byte, list *ast.List) string {
	var out []string
	num := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "  - "
		if list.IsOrdered() {
			marker = fmt.Sprintf("  %d. ", num)
			num++
		}
		body := strings.Split(strings.Join(convertBlocks(src, item), "\n"), "\n")
		for i, l := range body {
			switch {
			case i == 0:
				out = append(out, marker+l)
			case l == "":
				out = append(out, "")
			default:
				out = append(out, "    "+l)
			}
		}
	}
	return strings.Join(out, "\n")
}

func headingText(src []byte, h *ast.Heading) string {
	s := strings.TrimSpace(strings.Join(textLines(src, h), " "))
	s = strings.TrimLeft(s, "#")
	return strings.TrimSpace(strings.TrimRight(s, "#"))
}

// textLines returns the source lines of n with surrounding blanks removed.
func textLines(src []byte, n ast.Node) []string {
	segs := n.Lines()
	lines := make([]string, 0, segs.Len())
	for i := range segs.Len() {
		seg := segs.At(i)
		lines = append(lines, strings.TrimSpace(string(seg.Value(src))))
	}
	return lines
}

// codeLines returns the source lines of a code block, keeping indentation.
func codeLines(src []byte, n ast.Node) []string {
	segs := n.Lines()
	lines := make([]string, 0, segs.Len())
	for i := range segs.Len() {
		seg := segs.At(i)
		lines = append(lines, strings.TrimRight(string(seg.Value(src)), " \t\r\n"))
	}
	return lines
}
