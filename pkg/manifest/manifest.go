// Package manifest aggregates the dependencies recorded by code writers and
// renders them as package manifests (go.mod, package.json).
//
// A writer's ledger keeps every dependency in encounter order, duplicates
// included. This package is where that list is reduced:
//
//	deps := manifest.Merge(manifest.Collect(userWriter, orderWriter))
//	gomod, err := manifest.GoMod("github.com/acme/models", "1.22", deps)
package manifest

import (
	"slices"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/matzehuels/symwriter/pkg/symbol"
)

// Collect concatenates the dependencies of sources, keeping the first
// occurrence of each exact duplicate.
func Collect(sources ...symbol.DependencyContainer) []symbol.Dependency {
	seen := make(map[symbol.Dependency]bool)
	var out []symbol.Dependency
	for _, src := range sources {
		for _, d := range src.Dependencies() {
			if seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

type packageKey struct{ typ, name string }

// Merge keeps one dependency per (Type, PackageName), in first-seen order.
// Versions are compared as semantic versions, ignoring a leading "v", "^", "~"
// or "=": a valid version replaces an invalid or empty one, and of two valid
// versions the higher wins. Of two invalid versions the first is kept.
func Merge(deps []symbol.Dependency) []symbol.Dependency {
	index := make(map[packageKey]int)
	var out []symbol.Dependency
	for _, d := range deps {
		k := packageKey{d.Type, d.PackageName}
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, d)
			continue
		}
		if newer(d.Version, out[i].Version) {
			out[i] = d
		}
	}
	return out
}

// newer reports whether version a should replace b.
func newer(a, b string) bool {
	va, vb := canonical(a), canonical(b)
	switch {
	case !semver.IsValid(va):
		return false
	case !semver.IsValid(vb):
		return true
	}
	return semver.Compare(va, vb) > 0
}

func canonical(v string) string {
	v = strings.TrimLeft(strings.TrimSpace(v), "^~=v")
	return "v" + v
}

// ByType returns the dependencies whose Type is one of types, in order.
func ByType(deps []symbol.Dependency, types ...string) []symbol.Dependency {
	var out []symbol.Dependency
	for _, d := range deps {
		if slices.Contains(types, d.Type) {
			out = append(out, d)
		}
	}
	return out
}

// Types returns the distinct dependency types in deps, sorted.
func Types(deps []symbol.Dependency) []string {
	var types []string
	for _, d := range deps {
		if !slices.Contains(types, d.Type) {
			types = append(types, d.Type)
		}
	}
	slices.Sort(types)
	return types
}
