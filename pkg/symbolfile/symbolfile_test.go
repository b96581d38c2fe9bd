package symbolfile

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/symwriter/pkg/errors"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

const sampleTOML = `
[module]
path = "github.com/acme/models"
go = "1.22"
name = "@acme/models"

[[symbol]]
id = "uuid"
name = "UUID"
namespace = "github.com/google/uuid"
  [[symbol.dependency]]
  type = "go"
  package = "github.com/google/uuid"
  version = "v1.6.0"

[[symbol]]
id = "node"
name = "Node"
namespace = "github.com/acme/models"
properties = { kind = "struct" }
  [[symbol.reference]]
  target = "list"
  alias = "Children"
  options = ["use"]

[[symbol]]
id = "list"
name = "List"
namespace = "github.com/acme/models"
  [[symbol.reference]]
  target = "node"
  options = ["use"]

[[unit]]
path = "user.go"
language = "go"
package = "models"
namespace = "github.com/acme/models"
  [[unit.block]]
  doc = "User is an account."
  use = ["uuid"]
  template = "type User struct { ID $L }"
  args = ["uuid.UUID"]
`

const sampleYAML = `
module:
  path: github.com/acme/models
  go: "1.22"
symbols:
  - id: uuid
    name: UUID
    namespace: github.com/google/uuid
    dependencies:
      - type: go
        package: github.com/google/uuid
        version: v1.6.0
  - id: node
    name: Node
    namespace: github.com/acme/models
    properties:
      kind: struct
    references:
      - target: list
        alias: Children
        options: [use]
  - id: list
    name: List
    namespace: github.com/acme/models
    references:
      - target: node
        options: [use]
units:
  - path: user.go
    language: go
    package: models
    namespace: github.com/acme/models
    blocks:
      - doc: User is an account.
        use: [uuid]
        template: "type User struct { ID $L }"
        args: [uuid.UUID]
`

func checkSample(t *testing.T, f *File) {
	t.Helper()

	if f.Module.Path != "github.com/acme/models" || f.Module.Go != "1.22" {
		t.Errorf("Module = %+v", f.Module)
	}
	if got := f.IDs(); !slices.Equal(got, []string{"uuid", "node", "list"}) {
		t.Errorf("IDs() = %v", got)
	}

	uuid, ok := f.Symbol("uuid")
	if !ok {
		t.Fatal("symbol uuid missing")
	}
	if uuid.FullName() != "github.com/google/uuid.UUID" {
		t.Errorf("FullName() = %q", uuid.FullName())
	}
	want := []symbol.Dependency{symbol.NewDependency("go", "github.com/google/uuid", "v1.6.0")}
	if !slices.Equal(uuid.Dependencies(), want) {
		t.Errorf("Dependencies() = %v", uuid.Dependencies())
	}

	node, _ := f.Symbol("node")
	list, _ := f.Symbol("list")
	if kind, _ := node.Property("kind"); kind != "struct" {
		t.Errorf("Property(kind) = %q", kind)
	}
	refs := node.References()
	if len(refs) != 1 || refs[0].Symbol() != list || refs[0].Alias() != "Children" || !refs[0].HasOption(symbol.Use) {
		t.Errorf("node references = %v", refs)
	}
	back := list.References()
	if len(back) != 1 || back[0].Symbol() != node || back[0].Alias() != "Node" {
		t.Errorf("list references = %v", back)
	}

	if len(f.Units) != 1 {
		t.Fatalf("Units = %d, want 1", len(f.Units))
	}
	u := f.Units[0]
	if u.Path != "user.go" || u.Language != LanguageGo || u.Package != "models" {
		t.Errorf("unit = %+v", u)
	}
	if len(u.Blocks) != 1 || u.Blocks[0].Template != "type User struct { ID $L }" ||
		!slices.Equal(u.Blocks[0].Use, []string{"uuid"}) || !slices.Equal(u.Blocks[0].Args, []string{"uuid.UUID"}) {
		t.Errorf("blocks = %+v", u.Blocks)
	}
}

func TestParseTOML(t *testing.T) {
	f, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	checkSample(t, f)
	if string(f.Source) != sampleTOML {
		t.Error("Source should hold the raw file")
	}
}

func TestParseYAML(t *testing.T) {
	f, err := Parse([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	checkSample(t, f)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "models.toml")
	yamlPath := filepath.Join(dir, "models.yml")
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{tomlPath, yamlPath} {
		f, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		checkSample(t, f)
	}

	_, err := Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.toml":     FormatTOML,
		"a.yaml":     FormatYAML,
		"dir/a.YML":  FormatYAML,
		"symbols":    FormatTOML,
		"a.toml.bak": FormatTOML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{
			name: "malformed",
			data: `[[symbol]`,
			code: errors.ErrCodeInvalidSymbolFile,
		},
		{
			name: "unknown key",
			data: "[module]\npath = \"x\"\nflavour = \"y\"\n",
			code: errors.ErrCodeInvalidSymbolFile,
		},
		{
			name: "duplicate symbol",
			data: "[[symbol]]\nid = \"a\"\nname = \"A\"\n[[symbol]]\nid = \"a\"\nname = \"B\"\n",
			code: errors.ErrCodeDuplicateSymbol,
		},
		{
			name: "missing name",
			data: "[[symbol]]\nid = \"a\"\n",
			code: errors.ErrCodeInvalidSymbolFile,
		},
		{
			name: "unknown reference target",
			data: "[[symbol]]\nid = \"a\"\nname = \"A\"\n  [[symbol.reference]]\n  target = \"ghost\"\n",
			code: errors.ErrCodeUnknownSymbol,
		},
		{
			name: "dependency without package",
			data: "[[symbol]]\nid = \"a\"\nname = \"A\"\n  [[symbol.dependency]]\n  type = \"go\"\n",
			code: errors.ErrCodeInvalidSymbolFile,
		},
		{
			name: "unsupported language",
			data: "[[unit]]\npath = \"a.rs\"\nlanguage = \"rust\"\n",
			code: errors.ErrCodeInvalidLanguage,
		},
		{
			name: "go unit without package",
			data: "[[unit]]\npath = \"a.go\"\nlanguage = \"go\"\n",
			code: errors.ErrCodeInvalidSymbolFile,
		},
		{
			name: "path traversal",
			data: "[[unit]]\npath = \"../a.ts\"\nlanguage = \"typescript\"\n",
			code: errors.ErrCodeInvalidSymbolFile,
		},
		{
			name: "duplicate unit",
			data: "[[unit]]\npath = \"a.ts\"\nlanguage = \"typescript\"\n[[unit]]\npath = \"a.ts\"\nlanguage = \"typescript\"\n",
			code: errors.ErrCodeInvalidSymbolFile,
		},
		{
			name: "block uses unknown symbol",
			data: "[[unit]]\npath = \"a.ts\"\nlanguage = \"typescript\"\n  [[unit.block]]\n  use = [\"ghost\"]\n",
			code: errors.ErrCodeUnknownSymbol,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatTOML)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Parse() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse(nil, "json")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Parse() error = %v, want UNSUPPORTED", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		f, err := Parse(nil, format)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", format, err)
		}
		if len(f.Symbols()) != 0 || len(f.Units) != 0 {
			t.Errorf("Parse(%s) = %+v, want empty file", format, f)
		}
	}
}

func TestResolve(t *testing.T) {
	f, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	syms, err := f.Resolve("list", "uuid")
	if err != nil || len(syms) != 2 || syms[0].Name() != "List" {
		t.Errorf("Resolve() = %v, %v", syms, err)
	}
	if _, err := f.Resolve("ghost"); !errors.Is(err, errors.ErrCodeUnknownSymbol) {
		t.Errorf("Resolve(ghost) error = %v", err)
	}
}
