package ast

import (
	"go/ast"
	"path"
	"strings"
)

// ExtractImports extracts all imports from an AST file and returns a map
// of alias/name to import path. For imports without an explicit alias,
// the last component of the path is used as the key.
func ExtractImports(file *ast.File) map[string]string {
	imports := make(map[string]string)

	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		var alias string
		if imp.Name != nil {
			alias = imp.Name.Name
		} else {
			alias = path.Base(importPath)
		}

		imports[alias] = importPath
	}

	return imports
}

// Embeds reports whether iface embeds the type name declared in the
// package at importPath, either through a qualifier of file's imports or
// unqualified when the file itself belongs to that package.
func Embeds(file *ast.File, iface *ast.InterfaceType, importPath, name string) bool {
	imports := ExtractImports(file)
	for _, e := range EmbeddedInterfaces(iface) {
		if e.Name != name {
			continue
		}
		if e.Package == "" {
			if file.Name != nil && file.Name.Name == path.Base(importPath) {
				return true
			}
			continue
		}
		if imports[e.Package] == importPath {
			return true
		}
	}
	return false
}
