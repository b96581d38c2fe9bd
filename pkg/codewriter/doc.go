// Package codewriter is a line-oriented text builder for generated source code.
//
// A [CodeWriter] keeps a stack of formatting states. Each state holds the
// indentation level and text, a newline prefix written at the start of every
// line (used for comment blocks), and the rune that starts template
// expressions. [CodeWriter.PushState] copies the current state so callers can
// change it temporarily and restore it with [CodeWriter.PopState].
//
// # Templates
//
// [CodeWriter.Write] formats its template before writing it:
//
//	w.Write("func $L() $L {", name, ret)   // relative arguments
//	w.Write("$1L = $1S", name)             // positional arguments (1-based)
//	w.Write("costs $$5")                   // "$$" writes a literal "$"
//
// Built-in formatters are L (literal, fmt.Sprint) and S (quoted string).
// Others can be added with [CodeWriter.PutFormatter]. Relative and positional
// arguments cannot be mixed, and every argument must be used.
//
// Template errors do not stop the writer. The first one is kept and returned
// by [CodeWriter.Err], and the offending template is written unformatted.
// [CodeWriter.WriteWithNoFormatting] bypasses templates entirely.
//
// A CodeWriter is not safe for concurrent use.
package codewriter
