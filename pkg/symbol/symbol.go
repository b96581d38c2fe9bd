package symbol

import (
	"maps"
	"slices"
)

// DefaultDelimiter separates namespace and name in [Symbol.FullName].
const DefaultDelimiter = "."

// DependencyContainer is implemented by any value that exposes dependencies.
type DependencyContainer interface {
	Dependencies() []Dependency
}

// Container is implemented by any value that exposes symbols.
type Container interface {
	Symbols() []*Symbol
}

// Symbol is a named entity in generated code.
type Symbol struct {
	name         string
	namespace    string
	delimiter    string
	references   []Reference
	dependencies []Dependency
	properties   map[string]string
}

// Option configures a Symbol built by [New].
type Option func(*Symbol)

// WithReferences appends references to the symbol, preserving their order.
func WithReferences(refs ...Reference) Option {
	return func(s *Symbol) { s.references = append(s.references, refs...) }
}

// WithDependencies appends dependencies to the symbol, preserving their order.
func WithDependencies(deps ...Dependency) Option {
	return func(s *Symbol) { s.dependencies = append(s.dependencies, deps...) }
}

// WithDelimiter sets the namespace delimiter used by FullName.
func WithDelimiter(d string) Option {
	return func(s *Symbol) { s.delimiter = d }
}

// WithProperty attaches a free-form property (e.g. "kind" = "struct").
func WithProperty(key, value string) Option {
	return func(s *Symbol) {
		if s.properties == nil {
			s.properties = make(map[string]string)
		}
		s.properties[key] = value
	}
}

// New creates a symbol. The namespace may be empty.
func New(name, namespace string, opts ...Option) *Symbol {
	s := &Symbol{name: name, namespace: namespace, delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the symbol's name.
func (s *Symbol) Name() string { return s.name }

// Namespace returns the symbol's namespace, or "" if it has none.
func (s *Symbol) Namespace() string { return s.namespace }

// FullName returns the namespace and name joined by the delimiter.
func (s *Symbol) FullName() string {
	if s.namespace == "" {
		return s.name
	}
	return s.namespace + s.delimiter + s.name
}

// References returns a copy of the symbol's references in stored order.
func (s *Symbol) References() []Reference { return slices.Clone(s.references) }

// Dependencies returns a copy of the symbol's dependencies in stored order.
func (s *Symbol) Dependencies() []Dependency { return slices.Clone(s.dependencies) }

// Symbols returns the symbol itself, so a single symbol is a Container.
func (s *Symbol) Symbols() []*Symbol { return []*Symbol{s} }

// Property returns a property value and whether it was set.
func (s *Symbol) Property(key string) (string, bool) {
	v, ok := s.properties[key]
	return v, ok
}

// Properties returns a copy of all properties.
func (s *Symbol) Properties() map[string]string { return maps.Clone(s.properties) }

// String returns the full name.
func (s *Symbol) String() string { return s.FullName() }

var (
	_ DependencyContainer = (*Symbol)(nil)
	_ Container           = (*Symbol)(nil)
)
