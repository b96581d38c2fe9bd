package symbol

import (
	"github.com/matzehuels/symwriter/pkg/errors"
)

// Table builds a graph of symbols keyed by caller-chosen ids.
//
// Every symbol is allocated by Define, and references added with Reference are
// linked only when Resolve runs. Ids may therefore be referenced before they
// are defined, and cycles are allowed. A Table resolves once; it is not safe
// for concurrent use.
type Table struct {
	order    []string
	symbols  map[string]*Symbol
	links    []link
	resolved bool
}

type link struct {
	from, to string
	alias    string
	options  []ContextOption
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Define allocates a symbol under id. Options passed here are applied
// immediately; references given through WithReferences precede any links
// added with Reference.
func (t *Table) Define(id, name, namespace string, opts ...Option) error {
	if t.resolved {
		return errors.New(errors.ErrCodeInternal, "table already resolved")
	}
	if err := errors.ValidateIdentifier(id); err != nil {
		return err
	}
	if _, ok := t.symbols[id]; ok {
		return errors.New(errors.ErrCodeDuplicateSymbol, "symbol %q defined twice", id)
	}
	t.symbols[id] = New(name, namespace, opts...)
	t.order = append(t.order, id)
	return nil
}

// Reference links the symbol from to the symbol to. An empty alias defaults to
// the target's name. Both ids are checked by Resolve.
func (t *Table) Reference(from, to, alias string, options ...ContextOption) error {
	if t.resolved {
		return errors.New(errors.ErrCodeInternal, "table already resolved")
	}
	t.links = append(t.links, link{from: from, to: to, alias: alias, options: options})
	return nil
}

// Resolve links every pending reference and returns the symbols by id.
// It fails with ErrCodeUnknownSymbol if a link names an undefined id.
func (t *Table) Resolve() (map[string]*Symbol, error) {
	if t.resolved {
		return t.symbols, nil
	}
	for _, l := range t.links {
		if _, ok := t.symbols[l.from]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownSymbol, "reference from unknown symbol %q", l.from)
		}
		if _, ok := t.symbols[l.to]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownSymbol, "symbol %q references unknown symbol %q", l.from, l.to)
		}
	}
	for _, l := range t.links {
		from := t.symbols[l.from]
		from.references = append(from.references, NewReference(t.symbols[l.to], l.alias, l.options...))
	}
	t.resolved = true
	return t.symbols, nil
}

// IDs returns the defined ids in definition order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Lookup returns the symbol defined under id.
func (t *Table) Lookup(id string) (*Symbol, bool) {
	s, ok := t.symbols[id]
	return s, ok
}
