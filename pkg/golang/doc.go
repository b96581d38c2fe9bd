// Package golang generates Go source files with a [codegen.Writer].
//
// [Imports] maps symbol namespaces to import paths, [DocWriter] writes line
// comments, and [Writer] ties them together and renders the package clause
// and import block around the generated body:
//
//	w := golang.New("models", "github.com/acme/models")
//	if err := w.AddUseImports(uuidSymbol); err != nil {
//	    return err
//	}
//	w.WriteMarkdownDocs("User is a registered account.")
//	w.OpenBlock("type User struct {")
//	w.Write("ID uuid.UUID")
//	w.CloseBlock("}")
//	src, err := w.Format()
package golang
