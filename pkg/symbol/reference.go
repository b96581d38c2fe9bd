package symbol

import (
	"slices"
	"strings"
)

// ContextOption qualifies the context in which a reference applies.
// Values other than the predefined ones are valid custom tags.
type ContextOption string

const (
	// Use marks a reference needed when the symbol is being consumed,
	// e.g. the element type of a list.
	Use ContextOption = "use"

	// Declare marks a reference needed when the symbol is being defined,
	// e.g. a base type or an implemented interface.
	Declare ContextOption = "declare"
)

// Reference is an edge from one symbol to another.
type Reference struct {
	target  *Symbol
	alias   string
	options []ContextOption
}

// NewReference creates a reference to target. An empty alias defaults to the
// target's name. Options are deduplicated and stored sorted.
func NewReference(target *Symbol, alias string, options ...ContextOption) Reference {
	if alias == "" && target != nil {
		alias = target.Name()
	}
	opts := slices.Clone(options)
	slices.Sort(opts)
	return Reference{target: target, alias: alias, options: slices.Compact(opts)}
}

// Symbol returns the referenced symbol.
func (r Reference) Symbol() *Symbol { return r.target }

// Alias returns the name the target is bound to at the use site.
func (r Reference) Alias() string { return r.alias }

// Options returns a copy of the reference's options.
func (r Reference) Options() []ContextOption { return slices.Clone(r.options) }

// HasOption reports whether the reference carries option.
func (r Reference) HasOption(option ContextOption) bool {
	return slices.Contains(r.options, option)
}

// HasAnyOption reports whether the reference carries at least one of options.
func (r Reference) HasAnyOption(options ...ContextOption) bool {
	for _, o := range options {
		if r.HasOption(o) {
			return true
		}
	}
	return false
}

// Dependencies returns the target's dependencies.
func (r Reference) Dependencies() []Dependency {
	if r.target == nil {
		return nil
	}
	return r.target.Dependencies()
}

// Symbols returns the target.
func (r Reference) Symbols() []*Symbol {
	if r.target == nil {
		return nil
	}
	return []*Symbol{r.target}
}

// String renders the reference as "target as alias [options]".
func (r Reference) String() string {
	var b strings.Builder
	if r.target != nil {
		b.WriteString(r.target.FullName())
	}
	if r.target == nil || r.alias != r.target.Name() {
		b.WriteString(" as ")
		b.WriteString(r.alias)
	}
	if len(r.options) > 0 {
		parts := make([]string, len(r.options))
		for i, o := range r.options {
			parts[i] = string(o)
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(parts, ","))
		b.WriteString("]")
	}
	return b.String()
}

var (
	_ DependencyContainer = Reference{}
	_ Container           = Reference{}
)
