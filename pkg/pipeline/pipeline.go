// Package pipeline turns a symbol file into generated source files and
// package manifests.
//
// # Architecture
//
// A run over a [symbolfile.File] has two stages:
//
//  1. Generate: every unit gets its own language writer. Units are generated
//     concurrently, and each unit's output is cached by the hash of the
//     symbol file and the unit's options.
//  2. Aggregate: the dependency ledgers of all units are collected and
//     rendered as go.mod and package.json when the file declares a module.
//
// The same [Runner] also renders the symbol graph ([Runner.Graph]) and
// resolves the imports of a single symbol ([Resolve]).
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Generate(ctx, file, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, u := range result.Units {
//	    os.WriteFile(u.Path, u.Content, 0o644)
//	}
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/symwriter/pkg/symbol"
)

const (
	// DefaultParallelism bounds the number of units generated at once.
	DefaultParallelism = 4

	// DefaultHeader is written above the package clause of Go units.
	DefaultHeader = "Code generated by symwriter. DO NOT EDIT."
)

// Graph output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Manifest file names in Result.Manifests.
const (
	ManifestGoMod       = "go.mod"
	ManifestPackageJSON = "package.json"
)

// ValidFormats is the set of supported graph formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// Options configures a generation run.
type Options struct {
	// Parallelism bounds concurrent unit generation (DefaultParallelism if 0).
	Parallelism int

	// Refresh skips cache reads; fresh output is still written to the cache.
	Refresh bool

	// Unbounded disables cycle detection in import resolution.
	Unbounded bool

	// Header overrides DefaultHeader for Go units. Use NoHeader to omit it.
	Header string
	// NoHeader omits the generated-code header.
	NoHeader bool

	// Generator is the symwriter version, part of every cache key.
	Generator string

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", o.Parallelism)
	}
	if o.Parallelism == 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Header == "" && !o.NoHeader {
		o.Header = DefaultHeader
	}
	if o.NoHeader {
		o.Header = ""
	}
	o.validated = true
	return nil
}

// ValidateFormat checks that a graph format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// UnitResult is the output of one unit.
type UnitResult struct {
	Path     string
	Language string
	Content  []byte
	// Deps is the unit writer's ledger: encounter order, duplicates kept.
	Deps   []symbol.Dependency
	Cached bool
}

// Dependencies implements symbol.DependencyContainer.
func (u UnitResult) Dependencies() []symbol.Dependency { return u.Deps }

// Result contains the outputs of a generation run.
type Result struct {
	// RunID identifies the run in logs and hooks.
	RunID string

	// Units are in symbol file order.
	Units []UnitResult

	// Dependencies collects every unit's ledger, exact duplicates removed.
	Dependencies []symbol.Dependency

	// Manifests holds rendered manifests keyed by file name.
	Manifests map[string][]byte

	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Units     int
	CacheHits int
	Duration  time.Duration
}
