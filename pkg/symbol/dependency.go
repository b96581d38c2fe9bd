package symbol

import "fmt"

// Common dependency types. Any other string is allowed.
const (
	DependencyGo     = "go"
	DependencyNpm    = "npm"
	DependencyNpmDev = "npm-dev"
)

// Dependency is an external package requirement attached to a symbol.
// Two dependencies are the same if they compare equal with ==.
type Dependency struct {
	Type        string // Ecosystem or kind, e.g. "go", "npm", "npm-dev"
	PackageName string // Module path or package name
	Version     string // Version or version constraint
}

// NewDependency creates a dependency value.
func NewDependency(typ, packageName, version string) Dependency {
	return Dependency{Type: typ, PackageName: packageName, Version: version}
}

// Dependencies returns the dependency itself.
func (d Dependency) Dependencies() []Dependency { return []Dependency{d} }

// String renders the dependency as "type:package@version".
func (d Dependency) String() string {
	if d.Version == "" {
		return fmt.Sprintf("%s:%s", d.Type, d.PackageName)
	}
	return fmt.Sprintf("%s:%s@%s", d.Type, d.PackageName, d.Version)
}

var _ DependencyContainer = Dependency{}
