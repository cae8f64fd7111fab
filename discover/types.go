// Package discover finds declarations annotated with existgen directives.
package discover

import (
	"go/ast"
	"go/token"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/resolve"
)

// AnnotatedDecl is a declaration carrying one or more directives.
type AnnotatedDecl struct {
	// Decl is the host summary handed to the resolver.
	Decl resolve.DeclSummary
	// Directives are the directive comments, in source order.
	Directives []xast.Directive
	// Spec is the type spec for type declarations, nil otherwise.
	Spec *ast.TypeSpec
	// Generic is set for declarations with type parameters.
	Generic bool
	// Pos is the position of the declared name.
	Pos token.Position
}

// FileResult holds the annotated declarations of one source file.
type FileResult struct {
	// Path is the file path as given.
	Path string
	// Package is the package clause name.
	Package string
	File    *ast.File
	Fset    *token.FileSet
	Decls   []AnnotatedDecl
}

// Annotated reports whether the file has any directives.
func (f *FileResult) Annotated() bool { return len(f.Decls) > 0 }

// DiscoverOptions configures the discovery process.
type DiscoverOptions struct {
	// Paths lists files and directories to scan. Directories are walked
	// recursively.
	Paths []string
	// Walk controls which files a directory walk visits.
	Walk xast.ParseOptions
	// KeepUnannotated keeps files without directives in the result.
	KeepUnannotated bool
}

// DiscoverResult contains the results of a discovery operation.
type DiscoverResult struct {
	// Files lists scanned files in visit order.
	Files []*FileResult
	// Errors contains non-fatal errors such as unparsable files.
	Errors []error
}

// NewDiscoverResult creates an initialized DiscoverResult.
func NewDiscoverResult() *DiscoverResult {
	return &DiscoverResult{
		Files:  make([]*FileResult, 0),
		Errors: make([]error, 0),
	}
}

// Merge combines another DiscoverResult into this one.
func (r *DiscoverResult) Merge(other *DiscoverResult) {
	r.Files = append(r.Files, other.Files...)
	r.Errors = append(r.Errors, other.Errors...)
}

// AddFile adds a file to the result.
func (r *DiscoverResult) AddFile(f *FileResult) {
	r.Files = append(r.Files, f)
}

// AddError adds an error to the result.
func (r *DiscoverResult) AddError(err error) {
	r.Errors = append(r.Errors, err)
}

// DeclCount returns the number of annotated declarations found.
func (r *DiscoverResult) DeclCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Decls)
	}
	return n
}
