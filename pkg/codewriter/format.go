package codewriter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Formatter converts a template argument to text.
type Formatter func(value any) (string, error)

// PutFormatter registers a formatter for the given identifier rune.
// Digits and the expression start rune cannot be used as identifiers.
func (w *CodeWriter) PutFormatter(id rune, f Formatter) error {
	if id >= '0' && id <= '9' {
		return fmt.Errorf("codewriter: formatter identifier cannot be a digit: %q", id)
	}
	if id == w.top().expressionStart {
		return fmt.Errorf("codewriter: formatter identifier cannot be the expression start: %q", id)
	}
	w.formatters[id] = f
	return nil
}

func formatLiteral(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}

func formatString(v any) (string, error) {
	if v == nil {
		return strconv.Quote(""), nil
	}
	return strconv.Quote(fmt.Sprint(v)), nil
}

// format expands a template. On error the template is returned unchanged and
// the error is kept if it is the first one.
func (w *CodeWriter) format(tmpl string, args []any) string {
	out, err := w.expand(tmpl, args)
	if err != nil {
		if w.err == nil {
			w.err = fmt.Errorf("codewriter: template %q: %w", tmpl, err)
		}
		return tmpl
	}
	return out
}

func (w *CodeWriter) expand(tmpl string, args []any) (string, error) {
	start := w.top().expressionStart
	if !strings.ContainsRune(tmpl, start) {
		if len(args) > 0 {
			return "", fmt.Errorf("%d unused arguments", len(args))
		}
		return tmpl, nil
	}

	var (
		b          strings.Builder
		relative   int
		positional = make([]bool, len(args))
		sawRel     bool
		sawPos     bool
	)

	for i := 0; i < len(tmpl); {
		r, size := utf8.DecodeRuneInString(tmpl[i:])
		if r != start {
			b.WriteString(tmpl[i : i+size])
			i += size
			continue
		}
		i += size
		if i >= len(tmpl) {
			return "", fmt.Errorf("dangling %q at end of template", start)
		}

		next, nsize := utf8.DecodeRuneInString(tmpl[i:])
		if next == start {
			b.WriteRune(start)
			i += nsize
			continue
		}

		index := -1
		if next >= '0' && next <= '9' {
			j := i
			for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(tmpl[i:j])
			if n < 1 || n > len(args) {
				return "", fmt.Errorf("positional argument %d out of range (have %d)", n, len(args))
			}
			index = n - 1
			i = j
			if i >= len(tmpl) {
				return "", fmt.Errorf("missing formatter after positional argument %d", n)
			}
			next, nsize = utf8.DecodeRuneInString(tmpl[i:])
		}

		f, ok := w.formatters[next]
		if !ok {
			return "", fmt.Errorf("unknown formatter %q", next)
		}
		i += nsize

		if index >= 0 {
			sawPos = true
			positional[index] = true
		} else {
			sawRel = true
			if relative >= len(args) {
				return "", fmt.Errorf("not enough arguments (have %d)", len(args))
			}
			index = relative
			relative++
		}
		if sawPos && sawRel {
			return "", fmt.Errorf("cannot mix relative and positional arguments")
		}

		s, err := f(args[index])
		if err != nil {
			return "", fmt.Errorf("formatter %q: %w", next, err)
		}
		b.WriteString(s)
	}

	if sawRel && relative != len(args) {
		return "", fmt.Errorf("%d unused arguments", len(args)-relative)
	}
	if sawPos {
		for n, used := range positional {
			if !used {
				return "", fmt.Errorf("positional argument %d is unused", n+1)
			}
		}
	}
	if !sawRel && !sawPos && len(args) > 0 {
		return "", fmt.Errorf("%d unused arguments", len(args))
	}
	return b.String(), nil
}
