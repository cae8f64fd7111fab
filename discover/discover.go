package discover

import (
	"go/ast"
	"go/token"
	"os"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/resolve"
)

// Discover finds annotated declarations in the specified files and
// directories.
func Discover(opts DiscoverOptions) (*DiscoverResult, error) {
	result := NewDiscoverResult()

	for _, p := range opts.Paths {
		info, err := os.Stat(p)
		if err != nil {
			result.AddError(err)
			continue
		}

		if !info.IsDir() {
			fileResult, err := DiscoverFile(p)
			if err != nil {
				result.AddError(err)
				continue
			}
			result.add(fileResult, opts.KeepUnannotated)
			continue
		}

		err = xast.WalkGoFiles(p, opts.Walk, func(path string) error {
			fileResult, err := DiscoverFile(path)
			if err != nil {
				result.AddError(err)
				return nil // Continue walking
			}
			result.add(fileResult, opts.KeepUnannotated)
			return nil
		})
		if err != nil {
			result.AddError(err)
		}
	}

	return result, nil
}

func (r *DiscoverResult) add(f *FileResult, keepUnannotated bool) {
	if f.Annotated() || keepUnannotated {
		r.AddFile(f)
	}
}

// DiscoverFile finds annotated declarations in a single Go file.
func DiscoverFile(path string) (*FileResult, error) {
	file, fset, err := xast.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return DiscoverAST(fset, file, path), nil
}

// DiscoverSource finds annotated declarations in src, read from path.
func DiscoverSource(path string, src []byte) (*FileResult, error) {
	file, fset, err := xast.ParseSource(path, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return DiscoverAST(fset, file, path), nil
}

// DiscoverAST finds annotated declarations in a parsed file.
//
// A type directive may sit on the type spec or, for an ungrouped
// declaration, on the enclosing type keyword. Directives on other
// declarations are kept so the resolver can reject them.
func DiscoverAST(fset *token.FileSet, file *ast.File, path string) *FileResult {
	result := &FileResult{
		Path:    path,
		Package: file.Name.Name,
		File:    file,
		Fset:    fset,
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			result.addDecl(AnnotatedDecl{
				Decl:       resolve.DeclSummary{DeclKind: resolve.DeclFunc, TypeName: d.Name.Name},
				Directives: xast.Directives(fset, d.Doc),
				Pos:        fset.Position(d.Name.Pos()),
			})

		case *ast.GenDecl:
			result.addGenDecl(fset, d)
		}
	}
	return result
}

func (f *FileResult) addGenDecl(fset *token.FileSet, gd *ast.GenDecl) {
	// The keyword's doc belongs to the spec only when it stands alone.
	var outer []xast.Directive
	if !gd.Lparen.IsValid() {
		outer = xast.Directives(fset, gd.Doc)
	}

	for _, spec := range gd.Specs {
		directives := append(append([]xast.Directive(nil), outer...), specDirectives(fset, spec)...)

		switch s := spec.(type) {
		case *ast.TypeSpec:
			f.addDecl(AnnotatedDecl{
				Decl:       xast.Declaration(s),
				Directives: directives,
				Spec:       s,
				Generic:    s.TypeParams != nil && len(s.TypeParams.List) > 0,
				Pos:        fset.Position(s.Name.Pos()),
			})

		case *ast.ValueSpec:
			kind := resolve.DeclVar
			if gd.Tok == token.CONST {
				kind = resolve.DeclConst
			}
			name := ""
			if len(s.Names) > 0 {
				name = s.Names[0].Name
			}
			f.addDecl(AnnotatedDecl{
				Decl:       resolve.DeclSummary{DeclKind: kind, TypeName: name},
				Directives: directives,
				Pos:        fset.Position(s.Pos()),
			})
		}
	}
}

func specDirectives(fset *token.FileSet, spec ast.Spec) []xast.Directive {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return xast.Directives(fset, s.Doc)
	case *ast.ValueSpec:
		return xast.Directives(fset, s.Doc)
	default:
		return nil
	}
}

func (f *FileResult) addDecl(d AnnotatedDecl) {
	if len(d.Directives) > 0 {
		f.Decls = append(f.Decls, d)
	}
}
