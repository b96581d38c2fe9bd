package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateIdentifier validates a symbol id or symbol name from a symbol file.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No whitespace or control characters
//   - Maximum length of 256 characters
//
// Language-specific identifier rules are left to the target language writers.
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidIdentifier, "identifier too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidIdentifier, "identifier %q contains whitespace or control characters", name)
		}
	}

	return nil
}

// ValidateNamespace validates a symbol namespace (an import path, module name,
// or package name depending on the target language). An empty namespace is
// valid and means "no namespace".
func ValidateNamespace(ns string) error {
	if ns == "" {
		return nil
	}

	const maxNamespaceLength = 500
	if len(ns) > maxNamespaceLength {
		return New(ErrCodeInvalidInput, "namespace too long (max %d characters)", maxNamespaceLength)
	}

	for _, r := range ns {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "namespace %q contains whitespace or control characters", ns)
		}
	}

	if strings.Contains(ns, "\\") {
		return New(ErrCodeInvalidInput, "namespace %q cannot contain backslashes", ns)
	}

	return nil
}

// ValidatePath validates a generated file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// npmPackageNameRegex matches valid npm package names.
var npmPackageNameRegex = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// ValidateNpmPackageName validates an npm package name.
func ValidateNpmPackageName(name string) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}

	if strings.ToLower(name) != name {
		return New(ErrCodeInvalidInput, "npm package names must be lowercase: %q", name)
	}

	if !npmPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid npm package name: %q", name)
	}

	return nil
}

// goModulePathRegex matches valid Go module paths.
var goModulePathRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/~-]*$`)

// ValidateGoModulePath validates a Go module path.
func ValidateGoModulePath(path string) error {
	if err := ValidateIdentifier(path); err != nil {
		return err
	}

	if strings.Contains(path, "..") || strings.Contains(path, "//") {
		return New(ErrCodeInvalidInput, "invalid Go module path: %q", path)
	}

	if !goModulePathRegex.MatchString(path) {
		return New(ErrCodeInvalidInput, "invalid Go module path: %q", path)
	}

	return nil
}
