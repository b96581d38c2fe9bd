package codewriter

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteIndentation(t *testing.T) {
	w := New()
	w.OpenBlock("func main() {")
	w.Write("fmt.Println($S)", "hi")
	w.OpenBlock("if ok {")
	w.Write("return")
	w.CloseBlock("}")
	w.CloseBlock("}")

	want := "func main() {\n" +
		"    fmt.Println(\"hi\")\n" +
		"    if ok {\n" +
		"        return\n" +
		"    }\n" +
		"}\n"
	if got := w.String(); got != want {
		t.Errorf("String() =\n%s\nwant:\n%s", got, want)
	}
	if err := w.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestWriteMultilineValue(t *testing.T) {
	w := New()
	w.SetIndentText("\t")
	w.Indent()
	w.Write("x := $L", "a +\nb")

	want := "\tx := a +\n\tb\n"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewlinePrefixAndBlankLines(t *testing.T) {
	w := New()
	w.PushState()
	w.SetNewlinePrefix("// ")
	w.WriteWithNoFormatting("first\n\nsecond")
	w.PopState()
	w.Write("")
	w.Write("type T struct{}")

	want := "// first\n//\n// second\n\ntype T struct{}\n"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTrailingWhitespaceTrimmed(t *testing.T) {
	w := New()
	w.Indent()
	w.Write("a   ")
	w.Write("")
	w.Write("b")

	want := "    a\n\n    b\n"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWriteInline(t *testing.T) {
	w := New()
	w.WriteInline("var $L", "x")
	w.WriteInline(" = ")
	w.Write("$L", 42)

	if got := w.String(); got != "var x = 42\n" {
		t.Errorf("String() = %q", got)
	}

	w = New()
	w.WriteInline("no newline")
	if got := w.String(); got != "no newline\n" {
		t.Errorf("String() should terminate the last line, got %q", got)
	}
	if got := string(w.Bytes()); got != "no newline" {
		t.Errorf("Bytes() = %q, want raw content", got)
	}
}

func TestStateStack(t *testing.T) {
	w := New()
	if w.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", w.Depth())
	}

	w.Indent()
	w.PushState()
	if w.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", w.Depth())
	}
	if w.IndentLevel() != 1 {
		t.Errorf("pushed state should copy indent level, got %d", w.IndentLevel())
	}
	w.Indent()
	w.SetNewlinePrefix(" * ")
	w.PopState()

	if w.IndentLevel() != 1 {
		t.Errorf("IndentLevel() after pop = %d, want 1", w.IndentLevel())
	}
	if w.NewlinePrefix() != "" {
		t.Errorf("NewlinePrefix() after pop = %q, want empty", w.NewlinePrefix())
	}
}

func TestPopStateUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PopState on the root state should panic")
		}
	}()
	New().PopState()
}

func TestDedentStopsAtZero(t *testing.T) {
	w := New()
	w.Dedent()
	w.Write("x")
	if w.IndentLevel() != 0 || w.String() != "x\n" {
		t.Errorf("Dedent below zero: level=%d out=%q", w.IndentLevel(), w.String())
	}
}

func TestTemplates(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		args []any
		want string
	}{
		{"plain", "no expressions", nil, "no expressions"},
		{"literal", "$L + $L", []any{1, "b"}, "1 + b"},
		{"string", "name = $S", []any{`a"b`}, `name = "a\"b"`},
		{"positional", "$1L = $1S; $2L", []any{"x", "y"}, `x = "x"; y`},
		{"escaped", "costs $$5", nil, "costs $5"},
		{"nil literal", "[$L]", []any{nil}, "[]"},
		{"unicode", "héllo $L", []any{"wörld"}, "héllo wörld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			w.Write(tt.tmpl, tt.args...)
			if err := w.Err(); err != nil {
				t.Fatalf("Err() = %v", err)
			}
			if got := w.String(); got != tt.want+"\n" {
				t.Errorf("Write(%q) = %q, want %q", tt.tmpl, got, tt.want+"\n")
			}
		})
	}
}

func TestTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		args []any
	}{
		{"unknown formatter", "$Q", []any{1}},
		{"dangling", "cost $", nil},
		{"not enough args", "$L $L", []any{1}},
		{"unused relative", "$L", []any{1, 2}},
		{"unused positional", "$2L", []any{1, 2}},
		{"positional out of range", "$3L", []any{1}},
		{"positional zero", "$0L", []any{1}},
		{"mixed", "$L $1L", []any{1}},
		{"args without expressions", "plain", []any{1}},
		{"missing formatter after index", "$1", []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			w.Write(tt.tmpl, tt.args...)
			if w.Err() == nil {
				t.Fatalf("Write(%q) should record an error", tt.tmpl)
			}
			if got := w.String(); got != tt.tmpl+"\n" {
				t.Errorf("failed template should be written raw, got %q", got)
			}
		})
	}
}

func TestFirstErrorIsKept(t *testing.T) {
	w := New()
	w.Write("$Q", 1)
	first := w.Err()
	w.Write("$L")
	if w.Err() != first {
		t.Errorf("Err() changed from %v to %v", first, w.Err())
	}
	if !strings.Contains(first.Error(), `unknown formatter 'Q'`) {
		t.Errorf("unexpected error text: %v", first)
	}
}

func TestWriteWithNoFormatting(t *testing.T) {
	w := New()
	w.WriteWithNoFormatting("$100 total $L")
	if w.Err() != nil {
		t.Errorf("Err() = %v", w.Err())
	}
	if got := w.String(); got != "$100 total $L\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestCustomFormatterAndExpressionStart(t *testing.T) {
	w := New()
	if err := w.PutFormatter('U', func(v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", errors.New("not a string")
		}
		return strings.ToUpper(s), nil
	}); err != nil {
		t.Fatalf("PutFormatter: %v", err)
	}

	w.Write("const $U", "name")
	w.SetExpressionStart('#')
	w.Write("cost: $5 #L", "ok")
	w.Write("#U", 3)

	if got := w.String(); !strings.HasPrefix(got, "const NAME\ncost: $5 ok\n") {
		t.Errorf("String() = %q", got)
	}
	if w.Err() == nil {
		t.Error("formatter error should be recorded")
	}
}

func TestPutFormatterRejectsReservedRunes(t *testing.T) {
	w := New()
	if err := w.PutFormatter('1', formatLiteral); err == nil {
		t.Error("digit identifiers should be rejected")
	}
	if err := w.PutFormatter('$', formatLiteral); err == nil {
		t.Error("expression start identifier should be rejected")
	}
}
