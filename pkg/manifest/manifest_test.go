package manifest

import (
	"slices"
	"strings"
	"testing"

	"golang.org/x/mod/modfile"

	"github.com/matzehuels/symwriter/pkg/errors"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

func goDep(name, version string) symbol.Dependency {
	return symbol.NewDependency(symbol.DependencyGo, name, version)
}

func npmDep(name, version string) symbol.Dependency {
	return symbol.NewDependency(symbol.DependencyNpm, name, version)
}

type ledger []symbol.Dependency

func (l ledger) Dependencies() []symbol.Dependency { return l }

func TestCollect(t *testing.T) {
	a := ledger{goDep("x", "v1.0.0"), goDep("y", "v1.0.0"), goDep("x", "v1.0.0")}
	b := ledger{goDep("y", "v1.0.0"), goDep("x", "v1.1.0")}

	got := Collect(a, b, npmDep("z", "1.0.0"))
	want := []symbol.Dependency{goDep("x", "v1.0.0"), goDep("y", "v1.0.0"), goDep("x", "v1.1.0"), npmDep("z", "1.0.0")}
	if !slices.Equal(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		deps []symbol.Dependency
		want []symbol.Dependency
	}{
		{
			name: "higher semver wins",
			deps: []symbol.Dependency{goDep("x", "v1.2.0"), goDep("x", "v1.10.0"), goDep("x", "v1.3.0")},
			want: []symbol.Dependency{goDep("x", "v1.10.0")},
		},
		{
			name: "npm ranges compare by base version",
			deps: []symbol.Dependency{npmDep("rxjs", "^7.8.0"), npmDep("rxjs", "~7.2.0")},
			want: []symbol.Dependency{npmDep("rxjs", "^7.8.0")},
		},
		{
			name: "two non-semver keep first",
			deps: []symbol.Dependency{npmDep("left-pad", "latest"), npmDep("left-pad", "next")},
			want: []symbol.Dependency{npmDep("left-pad", "latest")},
		},
		{
			name: "semver replaces non-semver",
			deps: []symbol.Dependency{npmDep("left-pad", "latest"), npmDep("left-pad", "1.3.0")},
			want: []symbol.Dependency{npmDep("left-pad", "1.3.0")},
		},
		{
			name: "semver replaces empty",
			deps: []symbol.Dependency{goDep("x", ""), goDep("x", "v1.2.0"), goDep("x", "")},
			want: []symbol.Dependency{goDep("x", "v1.2.0")},
		},
		{
			name: "types are kept apart",
			deps: []symbol.Dependency{goDep("x", "v1.0.0"), npmDep("x", "2.0.0")},
			want: []symbol.Dependency{goDep("x", "v1.0.0"), npmDep("x", "2.0.0")},
		},
		{
			name: "first-seen order",
			deps: []symbol.Dependency{goDep("b", "v1.0.0"), goDep("a", "v1.0.0"), goDep("b", "v2.0.0")},
			want: []symbol.Dependency{goDep("b", "v2.0.0"), goDep("a", "v1.0.0")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(tt.deps); !slices.Equal(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestByTypeAndTypes(t *testing.T) {
	deps := []symbol.Dependency{
		npmDep("rxjs", "7.0.0"),
		goDep("x", "v1.0.0"),
		symbol.NewDependency(symbol.DependencyNpmDev, "typescript", "5.0.0"),
	}
	if got := ByType(deps, symbol.DependencyNpm, symbol.DependencyNpmDev); len(got) != 2 || got[0].PackageName != "rxjs" {
		t.Errorf("ByType() = %v", got)
	}
	if got := Types(deps); !slices.Equal(got, []string{"go", "npm", "npm-dev"}) {
		t.Errorf("Types() = %v", got)
	}
}

func TestGoMod(t *testing.T) {
	deps := []symbol.Dependency{
		goDep("github.com/google/uuid", "v1.5.0"),
		npmDep("rxjs", "^7.8.0"),
		goDep("github.com/acme/models", "v0.0.0"),
		goDep("github.com/BurntSushi/toml", "v1.5.0"),
		goDep("github.com/google/uuid", "v1.6.0"),
	}

	data, err := GoMod("github.com/acme/models", "1.22", deps)
	if err != nil {
		t.Fatalf("GoMod() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "module github.com/acme/models\n") {
		t.Errorf("unexpected go.mod:\n%s", data)
	}

	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		t.Fatalf("generated go.mod does not parse: %v\n%s", err, data)
	}
	if f.Go == nil || f.Go.Version != "1.22" {
		t.Errorf("go directive = %+v", f.Go)
	}
	var got []string
	for _, r := range f.Require {
		got = append(got, r.Mod.Path+"@"+r.Mod.Version)
	}
	want := []string{"github.com/BurntSushi/toml@v1.5.0", "github.com/google/uuid@v1.6.0"}
	if !slices.Equal(got, want) {
		t.Errorf("require = %v, want %v", got, want)
	}
}

func TestGoModPrefersRecordedVersion(t *testing.T) {
	deps := []symbol.Dependency{
		goDep("github.com/google/uuid", ""),
		goDep("github.com/google/uuid", "v1.2.0"),
	}

	data, err := GoMod("github.com/acme/models", "", deps)
	if err != nil {
		t.Fatalf("GoMod() error = %v", err)
	}
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Require) != 1 || f.Require[0].Mod.Version != "v1.2.0" {
		t.Errorf("require = %+v\n%s", f.Require, data)
	}
}

func TestGoModErrors(t *testing.T) {
	tests := []struct {
		name       string
		modulePath string
		goVersion  string
		deps       []symbol.Dependency
	}{
		{"empty module path", "", "1.22", nil},
		{"bad go version", "example.com/m", "one", nil},
		{"bad dependency version", "example.com/m", "1.22", []symbol.Dependency{goDep("example.com/x", "latest")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GoMod(tt.modulePath, tt.goVersion, tt.deps)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("GoMod() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestPackageJSON(t *testing.T) {
	deps := []symbol.Dependency{
		npmDep("zod", ">=3.0.0"),
		npmDep("rxjs", "^7.2.0"),
		goDep("github.com/google/uuid", "v1.6.0"),
		symbol.NewDependency(symbol.DependencyNpmDev, "typescript", ""),
		npmDep("rxjs", "^7.8.0"),
	}

	data, err := PackageJSON("@acme/models", "1.0.0", deps)
	if err != nil {
		t.Fatalf("PackageJSON() error = %v", err)
	}
	want := `{
  "name": "@acme/models",
  "version": "1.0.0",
  "dependencies": {
    "rxjs": "^7.8.0",
    "zod": ">=3.0.0"
  },
  "devDependencies": {
    "typescript": "*"
  }
}
`
	if string(data) != want {
		t.Errorf("PackageJSON() =\n%s\nwant\n%s", data, want)
	}
}

func TestPackageJSONRejectsBadName(t *testing.T) {
	if _, err := PackageJSON("Bad Name", "", nil); err == nil {
		t.Error("expected an error for an invalid package name")
	}
}
