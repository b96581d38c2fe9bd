package codegen

import (
	"strings"

	"github.com/matzehuels/symwriter/pkg/errors"
)

// CyclicReferenceError is returned by AddImport when a reference path leads
// back to a symbol (under the same alias) that is still being imported.
type CyclicReferenceError struct {
	// Path lists the walk from the imported symbol to the repeated one,
	// as "full.Name as alias" entries. The last entry equals an earlier one.
	Path []string
}

func newCyclicReferenceError(stack []*frame, repeat visit) *CyclicReferenceError {
	path := make([]string, 0, len(stack)+1)
	for _, f := range stack {
		path = append(path, describe(f.visit))
	}
	return &CyclicReferenceError{Path: append(path, describe(repeat))}
}

func describe(v visit) string {
	return v.sym.FullName() + " as " + v.alias
}

// Error implements the error interface.
func (e *CyclicReferenceError) Error() string {
	return "cyclic symbol reference: " + strings.Join(e.Path, " -> ")
}

// Unwrap exposes the error code, so errors.Is(err, errors.ErrCodeCyclicReference)
// from the errors package matches.
func (e *CyclicReferenceError) Unwrap() error {
	return errors.New(errors.ErrCodeCyclicReference, "%s", strings.Join(e.Path, " -> "))
}
