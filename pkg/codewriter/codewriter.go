package codewriter

import "strings"

const (
	defaultIndentText      = "    "
	defaultExpressionStart = '$'
)

type state struct {
	indentLevel     int
	indentText      string
	newlinePrefix   string
	expressionStart rune
}

// CodeWriter accumulates generated text.
type CodeWriter struct {
	buf         []byte
	states      []state
	formatters  map[rune]Formatter
	atLineStart bool
	err         error
}

// New creates an empty writer with 4-space indentation and "$" expressions.
func New() *CodeWriter {
	return &CodeWriter{
		states: []state{{
			indentText:      defaultIndentText,
			expressionStart: defaultExpressionStart,
		}},
		formatters: map[rune]Formatter{
			'L': formatLiteral,
			'S': formatString,
		},
		atLineStart: true,
	}
}

func (w *CodeWriter) top() *state { return &w.states[len(w.states)-1] }

// PushState saves a copy of the current state.
func (w *CodeWriter) PushState() {
	w.states = append(w.states, *w.top())
}

// PopState restores the state saved by the matching PushState.
// It panics if there is no pushed state.
func (w *CodeWriter) PopState() {
	if len(w.states) == 1 {
		panic("codewriter: PopState called without a matching PushState")
	}
	w.states = w.states[:len(w.states)-1]
}

// Depth returns the number of states on the stack (1 when nothing is pushed).
func (w *CodeWriter) Depth() int { return len(w.states) }

// Indent increases the indentation level of the current state.
func (w *CodeWriter) Indent() { w.top().indentLevel++ }

// Dedent decreases the indentation level, stopping at zero.
func (w *CodeWriter) Dedent() {
	if w.top().indentLevel > 0 {
		w.top().indentLevel--
	}
}

// IndentLevel returns the current indentation level.
func (w *CodeWriter) IndentLevel() int { return w.top().indentLevel }

// SetIndentText sets the text written once per indentation level.
func (w *CodeWriter) SetIndentText(s string) { w.top().indentText = s }

// SetNewlinePrefix sets the text written after the indentation of every line.
func (w *CodeWriter) SetNewlinePrefix(s string) { w.top().newlinePrefix = s }

// NewlinePrefix returns the current newline prefix.
func (w *CodeWriter) NewlinePrefix() string { return w.top().newlinePrefix }

// SetExpressionStart sets the rune that starts template expressions.
func (w *CodeWriter) SetExpressionStart(r rune) { w.top().expressionStart = r }

// Write formats the template and writes it followed by a newline.
func (w *CodeWriter) Write(format string, args ...any) {
	w.writeText(w.format(format, args))
	w.newline()
}

// WriteInline formats the template and writes it without a trailing newline.
func (w *CodeWriter) WriteInline(format string, args ...any) {
	w.writeText(w.format(format, args))
}

// WriteWithNoFormatting writes text verbatim followed by a newline.
// Expression start runes are not interpreted.
func (w *CodeWriter) WriteWithNoFormatting(text string) {
	w.writeText(text)
	w.newline()
}

// OpenBlock writes the template and increases the indentation level.
func (w *CodeWriter) OpenBlock(format string, args ...any) {
	w.Write(format, args...)
	w.Indent()
}

// CloseBlock decreases the indentation level and writes the template.
func (w *CodeWriter) CloseBlock(format string, args ...any) {
	w.Dedent()
	w.Write(format, args...)
}

// Err returns the first template error, if any.
func (w *CodeWriter) Err() error { return w.err }

// Bytes returns the text written so far.
func (w *CodeWriter) Bytes() []byte { return w.buf }

// String returns the text written so far, ending with a newline unless empty.
func (w *CodeWriter) String() string {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] == '\n' {
		return string(w.buf)
	}
	return string(w.buf) + "\n"
}

// writeText writes s line by line so that every line gets indentation and the
// newline prefix.
func (w *CodeWriter) writeText(s string) {
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			w.writeIndent()
			w.buf = append(w.buf, s...)
			return
		}
		if i > 0 {
			w.writeIndent()
			w.buf = append(w.buf, s[:i]...)
		}
		w.newline()
		s = s[i+1:]
	}
}

func (w *CodeWriter) writeIndent() {
	if !w.atLineStart {
		return
	}
	st := w.top()
	for range st.indentLevel {
		w.buf = append(w.buf, st.indentText...)
	}
	w.buf = append(w.buf, st.newlinePrefix...)
	w.atLineStart = false
}

// newline ends the current line. Empty lines still receive the newline prefix
// (so comment blocks stay contiguous), then trailing blanks are trimmed.
func (w *CodeWriter) newline() {
	w.writeIndent()
	for len(w.buf) > 0 {
		last := w.buf[len(w.buf)-1]
		if last != ' ' && last != '\t' {
			break
		}
		w.buf = w.buf[:len(w.buf)-1]
	}
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}
