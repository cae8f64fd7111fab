package ast

import (
	"go/ast"

	"github.com/lex00/existential-go/resolve"
)

// ExtractTypeName extracts the type name and package name from a type expression.
// For pointer types, slice types, array types, channel types and generic
// instantiations, it unwraps to find the underlying type. Map types return
// empty strings.
// Returns (typeName, packageName).
func ExtractTypeName(expr ast.Expr) (string, string) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, ""

	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return t.Sel.Name, x.Name
		}
		return "", ""

	case *ast.StarExpr:
		return ExtractTypeName(t.X)

	case *ast.ArrayType:
		return ExtractTypeName(t.Elt)

	case *ast.ChanType:
		return ExtractTypeName(t.Value)

	case *ast.IndexExpr:
		// Generic instantiation: Seq[int]
		return ExtractTypeName(t.X)

	case *ast.IndexListExpr:
		return ExtractTypeName(t.X)

	default:
		return "", ""
	}
}

// Embedded is an interface embedded in another interface.
type Embedded struct {
	Name    string // unqualified name
	Package string // qualifier, empty for local types
}

// EmbeddedInterfaces returns the named types embedded in iface, in source
// order. Type-set terms such as ~int or A | B are skipped.
func EmbeddedInterfaces(iface *ast.InterfaceType) []Embedded {
	if iface == nil || iface.Methods == nil {
		return nil
	}
	var out []Embedded
	for _, field := range iface.Methods.List {
		if len(field.Names) > 0 {
			continue
		}
		switch field.Type.(type) {
		case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		default:
			continue
		}
		name, pkg := ExtractTypeName(field.Type)
		if name != "" {
			out = append(out, Embedded{Name: name, Package: pkg})
		}
	}
	return out
}

// TypeSpecKind classifies a type declaration.
func TypeSpecKind(spec *ast.TypeSpec) resolve.DeclKind {
	if spec.Assign.IsValid() {
		return resolve.DeclAlias
	}
	switch spec.Type.(type) {
	case *ast.InterfaceType:
		return resolve.DeclInterface
	case *ast.StructType:
		return resolve.DeclStruct
	default:
		return resolve.DeclType
	}
}

// Declaration summarizes a type declaration for resolution.
func Declaration(spec *ast.TypeSpec) resolve.DeclSummary {
	d := resolve.DeclSummary{
		DeclKind: TypeSpecKind(spec),
		TypeName: spec.Name.Name,
	}
	if iface, ok := spec.Type.(*ast.InterfaceType); ok && d.DeclKind == resolve.DeclInterface {
		for _, e := range EmbeddedInterfaces(iface) {
			d.Embeds = append(d.Embeds, e.Name)
		}
	}
	return d
}
