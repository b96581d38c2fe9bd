// Package symbolfile loads symbol definitions and generation units from TOML
// or YAML files.
//
// A symbol file declares the symbols available to generated code and the
// files (units) to generate from them:
//
//	[module]
//	path = "github.com/acme/models"
//	go = "1.22"
//
//	[[symbol]]
//	id = "uuid"
//	name = "UUID"
//	namespace = "github.com/google/uuid"
//	  [[symbol.dependency]]
//	  type = "go"
//	  package = "github.com/google/uuid"
//	  version = "v1.6.0"
//
//	[[unit]]
//	path = "user.go"
//	language = "go"
//	package = "models"
//	namespace = "github.com/acme/models"
//	  [[unit.block]]
//	  doc = "User is a registered account."
//	  use = ["uuid"]
//	  template = "type User struct { ID $L }"
//	  args = ["uuid.UUID"]
//
// Symbols may reference each other in any order, cycles included; references
// are linked once the whole file is read (see [symbol.Table]).
package symbolfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/symwriter/pkg/errors"
	"github.com/matzehuels/symwriter/pkg/symbol"
)

// Format is the encoding of a symbol file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Target languages of a unit.
const (
	LanguageGo         = "go"
	LanguageTypeScript = "typescript"
)

// Module describes the package the units belong to.
type Module struct {
	Path    string `toml:"path" yaml:"path"`       // go.mod module path
	Go      string `toml:"go" yaml:"go"`           // go directive
	Name    string `toml:"name" yaml:"name"`       // package.json name
	Version string `toml:"version" yaml:"version"` // package.json version
}

// Unit is one generated file.
type Unit struct {
	Path      string  `toml:"path" yaml:"path"`
	Language  string  `toml:"language" yaml:"language"`
	Package   string  `toml:"package" yaml:"package"`
	Namespace string  `toml:"namespace" yaml:"namespace"`
	Header    string  `toml:"header" yaml:"header"`
	Blocks    []Block `toml:"block" yaml:"blocks"`
}

// Block is a piece of a unit: optional docs, the imports it needs and a
// template with its arguments.
type Block struct {
	Doc      string   `toml:"doc" yaml:"doc"`
	Declare  []string `toml:"declare" yaml:"declare"`
	Use      []string `toml:"use" yaml:"use"`
	Template string   `toml:"template" yaml:"template"`
	Args     []string `toml:"args" yaml:"args"`
}

type rawFile struct {
	Module  Module      `toml:"module" yaml:"module"`
	Symbols []rawSymbol `toml:"symbol" yaml:"symbols"`
	Units   []Unit      `toml:"unit" yaml:"units"`
}

type rawSymbol struct {
	ID           string            `toml:"id" yaml:"id"`
	Name         string            `toml:"name" yaml:"name"`
	Namespace    string            `toml:"namespace" yaml:"namespace"`
	Delimiter    string            `toml:"delimiter" yaml:"delimiter"`
	Properties   map[string]string `toml:"properties" yaml:"properties"`
	Dependencies []rawDependency   `toml:"dependency" yaml:"dependencies"`
	References   []rawReference    `toml:"reference" yaml:"references"`
}

type rawDependency struct {
	Type    string `toml:"type" yaml:"type"`
	Package string `toml:"package" yaml:"package"`
	Version string `toml:"version" yaml:"version"`
}

type rawReference struct {
	Target  string   `toml:"target" yaml:"target"`
	Alias   string   `toml:"alias" yaml:"alias"`
	Options []string `toml:"options" yaml:"options"`
}

// File is a parsed and validated symbol file.
type File struct {
	Module Module
	Units  []Unit

	// Source is the raw file content, used to key cached output.
	Source []byte

	symbols map[string]*symbol.Symbol
	ids     []string
}

// Symbol returns the symbol defined under id.
func (f *File) Symbol(id string) (*symbol.Symbol, bool) {
	s, ok := f.symbols[id]
	return s, ok
}

// IDs returns the symbol ids in definition order.
func (f *File) IDs() []string { return append([]string(nil), f.ids...) }

// Symbols returns every symbol in definition order.
func (f *File) Symbols() []*symbol.Symbol {
	out := make([]*symbol.Symbol, len(f.ids))
	for i, id := range f.ids {
		out[i] = f.symbols[id]
	}
	return out
}

// Resolve looks up ids, failing on the first unknown one.
func (f *File) Resolve(ids ...string) ([]*symbol.Symbol, error) {
	out := make([]*symbol.Symbol, 0, len(ids))
	for _, id := range ids {
		s, ok := f.symbols[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownSymbol, "unknown symbol %q", id)
		}
		out = append(out, s)
	}
	return out, nil
}

// FormatFromPath picks the format from the file extension; anything other
// than .yaml or .yml is TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Load reads and parses the symbol file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "symbol file %s", path)
		}
		return nil, err
	}
	f, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes and validates a symbol file.
func Parse(data []byte, format Format) (*File, error) {
	var raw rawFile
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSymbolFile, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidSymbolFile, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidSymbolFile, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported symbol file format %q", format)
	}

	symbols, ids, err := buildSymbols(raw.Symbols)
	if err != nil {
		return nil, err
	}
	f := &File{
		Module:  raw.Module,
		Units:   raw.Units,
		Source:  data,
		symbols: symbols,
		ids:     ids,
	}
	if err := f.validateUnits(); err != nil {
		return nil, err
	}
	return f, nil
}

func buildSymbols(raws []rawSymbol) (map[string]*symbol.Symbol, []string, error) {
	table := symbol.NewTable()
	for _, rs := range raws {
		if err := errors.ValidateIdentifier(rs.Name); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidSymbolFile, err, "symbol %q: name", rs.ID)
		}
		if err := errors.ValidateNamespace(rs.Namespace); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidSymbolFile, err, "symbol %q: namespace", rs.ID)
		}

		var opts []symbol.Option
		if rs.Delimiter != "" {
			opts = append(opts, symbol.WithDelimiter(rs.Delimiter))
		}
		for k, v := range rs.Properties {
			opts = append(opts, symbol.WithProperty(k, v))
		}
		for _, d := range rs.Dependencies {
			if d.Type == "" || d.Package == "" {
				return nil, nil, errors.New(errors.ErrCodeInvalidSymbolFile,
					"symbol %q: dependency needs a type and a package", rs.ID)
			}
			opts = append(opts, symbol.WithDependencies(symbol.NewDependency(d.Type, d.Package, d.Version)))
		}

		if err := table.Define(rs.ID, rs.Name, rs.Namespace, opts...); err != nil {
			return nil, nil, err
		}
		for _, ref := range rs.References {
			options := make([]symbol.ContextOption, len(ref.Options))
			for i, o := range ref.Options {
				options[i] = symbol.ContextOption(o)
			}
			if err := table.Reference(rs.ID, ref.Target, ref.Alias, options...); err != nil {
				return nil, nil, err
			}
		}
	}

	symbols, err := table.Resolve()
	if err != nil {
		return nil, nil, err
	}
	return symbols, table.IDs(), nil
}

func (f *File) validateUnits() error {
	seen := make(map[string]bool)
	for i, u := range f.Units {
		if err := errors.ValidatePath(u.Path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSymbolFile, err, "unit %d", i)
		}
		if seen[u.Path] {
			return errors.New(errors.ErrCodeInvalidSymbolFile, "unit %s defined twice", u.Path)
		}
		seen[u.Path] = true

		switch u.Language {
		case LanguageGo:
			if err := errors.ValidateIdentifier(u.Package); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidSymbolFile, err, "unit %s: go units need a package", u.Path)
			}
		case LanguageTypeScript:
		default:
			return errors.New(errors.ErrCodeInvalidLanguage, "unit %s: unsupported language %q", u.Path, u.Language)
		}

		for _, b := range u.Blocks {
			if _, err := f.Resolve(b.Declare...); err != nil {
				return errors.Wrap(errors.ErrCodeUnknownSymbol, err, "unit %s", u.Path)
			}
			if _, err := f.Resolve(b.Use...); err != nil {
				return errors.Wrap(errors.ErrCodeUnknownSymbol, err, "unit %s", u.Path)
			}
		}
	}
	return nil
}
