package manifest

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"

	"github.com/matzehuels/symwriter/pkg/errors"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// GoMod renders a go.mod file requiring every "go" dependency in deps.
// Dependencies are merged first; requirements are sorted by module path.
func GoMod(modulePath, goVersion string, deps []symbol.Dependency) ([]byte, error) {
	if err := module.CheckPath(modulePath); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "module path %q", modulePath)
	}

	f := new(modfile.File)
	if err := f.AddModuleStmt(modulePath); err != nil {
		return nil, fmt.Errorf("add module: %w", err)
	}
	if goVersion != "" {
		if err := f.AddGoStmt(goVersion); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "go version %q", goVersion)
		}
	}

	reqs := Merge(ByType(deps, symbol.DependencyGo))
	slices.SortFunc(reqs, func(a, b symbol.Dependency) int {
		return cmp.Compare(a.PackageName, b.PackageName)
	})
	for _, d := range reqs {
		if d.PackageName == modulePath {
			continue
		}
		if !semver.IsValid(d.Version) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"go dependency %s: version %q is not a semantic version", d.PackageName, d.Version)
		}
		f.AddNewRequire(d.PackageName, d.Version, false)
	}
	f.Cleanup()

	return modfile.Format(f.Syntax), nil
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// PackageJSON renders a package.json with "npm" dependencies under
// "dependencies" and "npm-dev" dependencies under "devDependencies".
func PackageJSON(name, version string, deps []symbol.Dependency) ([]byte, error) {
	if err := errors.ValidateNpmPackageName(name); err != nil {
		return nil, err
	}
	pkg := packageJSON{Name: name, Version: version}
	for _, d := range Merge(deps) {
		switch d.Type {
		case symbol.DependencyNpm:
			pkg.Dependencies = put(pkg.Dependencies, d)
		case symbol.DependencyNpmDev:
			pkg.DevDependencies = put(pkg.DevDependencies, d)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pkg); err != nil {
		return nil, fmt.Errorf("encode package.json: %w", err)
	}
	return buf.Bytes(), nil
}

func put(m map[string]string, d symbol.Dependency) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	v := d.Version
	if v == "" {
		v = "*"
	}
	m[d.PackageName] = v
	return m
}
