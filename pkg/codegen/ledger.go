package codegen

import (
	"slices"

	"github.com/matzehuels/symwriter/pkg/symbol"
)

// Ledger is the ordered record of every dependency a writer has encountered.
// Entries are never removed or merged; duplicates are kept. Aggregation is
// left to consumers such as the manifest package.
type Ledger struct {
	deps []symbol.Dependency
}

// Add appends deps in order.
func (l *Ledger) Add(deps ...symbol.Dependency) {
	l.deps = append(l.deps, deps...)
}

// Snapshot returns an independent copy of the entries recorded so far.
func (l *Ledger) Snapshot() []symbol.Dependency {
	return slices.Clone(l.deps)
}

// Dependencies is Snapshot, so a Ledger is a symbol.DependencyContainer.
func (l *Ledger) Dependencies() []symbol.Dependency { return l.Snapshot() }

// Len returns the number of entries, duplicates included.
func (l *Ledger) Len() int { return len(l.deps) }

var _ symbol.DependencyContainer = (*Ledger)(nil)
