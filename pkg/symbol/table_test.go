package symbol

import (
	"testing"

	"github.com/matzehuels/symwriter/pkg/errors"
)

func TestTableResolve(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Define("user", "User", "models"); err != nil {
		t.Fatalf("Define: %v", err)
	}
	// Forward reference: uuid is defined after the link.
	if err := tbl.Reference("user", "uuid", "", Use); err != nil {
		t.Fatalf("Reference: %v", err)
	}
	if err := tbl.Define("uuid", "UUID", "github.com/google/uuid"); err != nil {
		t.Fatalf("Define: %v", err)
	}

	syms, err := tbl.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	refs := syms["user"].References()
	if len(refs) != 1 {
		t.Fatalf("user references = %d, want 1", len(refs))
	}
	if refs[0].Symbol() != syms["uuid"] {
		t.Error("reference should point at the table's uuid symbol")
	}
	if refs[0].Alias() != "UUID" {
		t.Errorf("Alias() = %q, want UUID", refs[0].Alias())
	}

	if got := tbl.IDs(); len(got) != 2 || got[0] != "user" || got[1] != "uuid" {
		t.Errorf("IDs() = %v, want [user uuid]", got)
	}
}

func TestTableCycle(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Define("node", "Node", "tree")
	_ = tbl.Define("list", "List", "tree")
	_ = tbl.Reference("node", "list", "", Use)
	_ = tbl.Reference("list", "node", "", Use)

	syms, err := tbl.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	node := syms["node"]
	list := node.References()[0].Symbol()
	if list.References()[0].Symbol() != node {
		t.Error("cycle should link back to the same node pointer")
	}
}

func TestTableReferencesFollowOptions(t *testing.T) {
	base := New("Base", "lib")
	tbl := NewTable()
	_ = tbl.Define("t", "T", "app", WithReferences(NewReference(base, "", Declare)))
	_ = tbl.Define("u", "U", "app")
	_ = tbl.Reference("t", "u", "uu")

	syms, err := tbl.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	refs := syms["t"].References()
	if len(refs) != 2 {
		t.Fatalf("references = %d, want 2", len(refs))
	}
	if refs[0].Symbol() != base || refs[1].Alias() != "uu" {
		t.Errorf("references out of order: %v", refs)
	}
}

func TestTableErrors(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		tbl := NewTable()
		_ = tbl.Define("a", "A", "")
		err := tbl.Define("a", "A2", "")
		if !errors.Is(err, errors.ErrCodeDuplicateSymbol) {
			t.Errorf("Define duplicate error = %v, want %s", err, errors.ErrCodeDuplicateSymbol)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		tbl := NewTable()
		err := tbl.Define("bad id", "A", "")
		if !errors.Is(err, errors.ErrCodeInvalidIdentifier) {
			t.Errorf("Define error = %v, want %s", err, errors.ErrCodeInvalidIdentifier)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		tbl := NewTable()
		_ = tbl.Define("a", "A", "")
		_ = tbl.Reference("a", "missing", "")
		_, err := tbl.Resolve()
		if !errors.Is(err, errors.ErrCodeUnknownSymbol) {
			t.Errorf("Resolve error = %v, want %s", err, errors.ErrCodeUnknownSymbol)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		tbl := NewTable()
		_ = tbl.Define("a", "A", "")
		_ = tbl.Reference("missing", "a", "")
		_, err := tbl.Resolve()
		if !errors.Is(err, errors.ErrCodeUnknownSymbol) {
			t.Errorf("Resolve error = %v, want %s", err, errors.ErrCodeUnknownSymbol)
		}
	})

	t.Run("define after resolve", func(t *testing.T) {
		tbl := NewTable()
		if _, err := tbl.Resolve(); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if err := tbl.Define("a", "A", ""); err == nil {
			t.Error("Define after Resolve should fail")
		}
		if err := tbl.Reference("a", "b", ""); err == nil {
			t.Error("Reference after Resolve should fail")
		}
	})
}
