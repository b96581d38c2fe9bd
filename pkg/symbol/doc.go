// Package symbol models the named entities that code generators emit and
// import.
//
// # Overview
//
// A [Symbol] identifies a target-language entity (a type, function, constant)
// by name and namespace. It carries two ordered lists:
//
//   - [Reference] edges to other symbols that are needed to use or declare it
//   - [Dependency] values naming the external packages it requires
//
// References are tagged with [ContextOption] values such as [Use] and
// [Declare]. A reference with no options applies in every context.
//
// Symbols are immutable once built. Accessors return copies, so a symbol can be
// shared between any number of writers and goroutines.
//
// # Building Graphs
//
// [New] builds a symbol whose references point at symbols that already exist.
// That is enough for most generators, but it cannot express forward references
// or cycles (recursive types). [Table] allocates every symbol before linking
// references, so both are possible:
//
//	t := symbol.NewTable()
//	_ = t.Define("node", "Node", "github.com/acme/tree")
//	_ = t.Define("list", "List", "github.com/acme/tree")
//	_ = t.Reference("node", "list", "", symbol.Use)
//	_ = t.Reference("list", "node", "", symbol.Use)
//	symbols, err := t.Resolve()
//
// # Containers
//
// [DependencyContainer] and [Container] are the small interfaces consumed by
// writers and manifest aggregators. [*Symbol], [Reference], and [Dependency]
// implement them.
package symbol
