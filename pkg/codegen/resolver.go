package codegen

import (
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// AddUseImports imports every symbol of c under its own name, following only
// references tagged symbol.Use.
//
// Use references are needed when referring to a symbol, not when declaring
// it: for List<Foo> the use references are List and Foo.
func (w *Writer) AddUseImports(c symbol.Container) error {
	for _, s := range c.Symbols() {
		if err := w.AddImport(s, s.Name(), symbol.Use); err != nil {
			return err
		}
	}
	return nil
}

// AddUseImportsRef imports the reference's target under the reference's alias,
// following only references tagged symbol.Use.
func (w *Writer) AddUseImportsRef(ref symbol.Reference) error {
	return w.AddImport(ref.Symbol(), ref.Alias(), symbol.Use)
}

// AddImport imports s under alias.
//
// The symbol's dependencies are always added to the ledger and the symbol is
// always passed to the import container, even if the container ends up
// ignoring it (e.g. because s lives in the file's own namespace): the
// references of s are still needed to use or declare it. References are then
// followed in order, recursively, with the same options. With no options every
// reference is followed; otherwise only references carrying at least one of
// options.
//
// If a reference leads back to a symbol and alias already on the current path,
// AddImport stops and returns a *CyclicReferenceError. Everything recorded up
// to that point stays recorded.
func (w *Writer) AddImport(s *symbol.Symbol, alias string, options ...symbol.ContextOption) error {
	if w.unbounded {
		w.importRecursive(s, alias, options)
		return nil
	}
	return w.importWalk(s, alias, options)
}

func (w *Writer) record(s *symbol.Symbol, alias string, options []symbol.ContextOption) {
	w.logger.Debug("adding import", "namespace", s.Namespace(), "name", s.Name(), "alias", alias, "options", options)
	w.ledger.Add(s.Dependencies()...)
	w.imports.ImportSymbol(s, alias)
}

func follows(ref symbol.Reference, options []symbol.ContextOption) bool {
	if ref.Symbol() == nil {
		return false
	}
	return len(options) == 0 || ref.HasAnyOption(options...)
}

// importRecursive is the unguarded walk used with WithUnboundedTraversal.
func (w *Writer) importRecursive(s *symbol.Symbol, alias string, options []symbol.ContextOption) {
	w.record(s, alias, options)
	for _, ref := range s.References() {
		if follows(ref, options) {
			w.importRecursive(ref.Symbol(), ref.Alias(), options)
		}
	}
}

// visit identifies a node of the walk. The options are fixed for one walk, so
// they are not part of the key.
type visit struct {
	sym   *symbol.Symbol
	alias string
}

type frame struct {
	visit
	refs []symbol.Reference
	next int
}

// importWalk visits the same nodes in the same order as importRecursive, using
// an explicit stack. A node is "gray" while its frame is on the stack;
// re-entering a gray node is a cycle.
func (w *Writer) importWalk(s *symbol.Symbol, alias string, options []symbol.ContextOption) error {
	var stack []*frame
	gray := make(map[visit]bool)

	enter := func(v visit) error {
		if gray[v] {
			return newCyclicReferenceError(stack, v)
		}
		w.record(v.sym, v.alias, options)
		gray[v] = true
		stack = append(stack, &frame{visit: v, refs: v.sym.References()})
		return nil
	}

	if err := enter(visit{s, alias}); err != nil {
		return err
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.refs) {
			delete(gray, top.visit)
			stack = stack[:len(stack)-1]
			continue
		}
		ref := top.refs[top.next]
		top.next++
		if !follows(ref, options) {
			continue
		}
		if err := enter(visit{ref.Symbol(), ref.Alias()}); err != nil {
			w.logger.Debug("cyclic reference", "error", err)
			return err
		}
	}
	return nil
}
