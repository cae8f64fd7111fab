// Package expand generates existential wrapper declarations for resolved
// configurations.
package expand

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strings"

	"github.com/lex00/existential-go/capability"
	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/resolve"
)

// DefaultRuntimePackage is the import path of the runtime support package.
const DefaultRuntimePackage = "github.com/lex00/existential-go/existential"

// Option configures a Builder.
type Option func(*Builder)

// WithRuntimePackage sets the import path generated code uses for the
// runtime support package.
func WithRuntimePackage(path string) Option {
	return func(b *Builder) { b.runtime = path }
}

// Builder turns configurations into descriptors. A Builder holds no
// mutable state and is safe for concurrent use.
type Builder struct {
	runtime string
}

// NewBuilder returns a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{runtime: DefaultRuntimePackage}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RuntimePackage returns the runtime import path.
func (b *Builder) RuntimePackage() string { return b.runtime }

// Build computes the wrapper declaration for cfg. The same configuration
// always yields an identical descriptor.
func (b *Builder) Build(cfg resolve.Configuration) (Descriptor, error) {
	s := newShape(cfg)

	d := Descriptor{
		Name:        s.name,
		Ident:       s.ident,
		Doc:         s.doc(),
		TypeParams:  s.params,
		Inherits:    s.inherits(),
		WrappedType: s.wrapped,
		Members:     s.members(),
	}
	d.Source = s.source(d)

	imports, err := b.imports(d.Source)
	if err != nil {
		return Descriptor{}, errors.At(cfg.Pos, errors.Wrapf(errors.ErrConstruction, "%s: %v", s.ident, err))
	}
	d.Imports = imports
	return d, nil
}

// imports parses src and returns the import paths of the packages it
// refers to. A parse failure means the builder produced invalid Go.
func (b *Builder) imports(src string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", "package p\n\n"+src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	known := map[string]string{
		"json":        "encoding/json",
		"reflect":     "reflect",
		"iter":        "iter",
		"slices":      "slices",
		"existential": b.runtime,
	}
	seen := make(map[string]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			if path, ok := known[id.Name]; ok {
				seen[path] = true
			}
		}
		return true
	})

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// shape holds the derived names of one configuration.
type shape struct {
	cfg resolve.Configuration

	name    string
	ident   string
	iface   string
	params  []TypeParam
	ref     string // ident with type arguments
	wrapped string
	strong  bool
}

func newShape(cfg resolve.Configuration) shape {
	v := cfg.Variant
	s := shape{
		cfg:   cfg,
		iface: cfg.Name,
		name:  synthesizeName(cfg.Bundle, v, cfg.Name),
	}
	s.ident = cfg.Access.Ident(s.name)
	s.strong = cfg.Bundle.Coding != capability.Encodable

	if v.Has(capability.Collection) {
		s.params = append(s.params, TypeParam{Name: "C", Bound: s.collectionBound()})
	}
	if bound := codingBound(cfg.Bundle.Coding, s.iface); bound != "" {
		s.params = append(s.params, TypeParam{Name: "TC", Bound: bound})
	}
	s.ref = s.ident + typeArgs(s.params)

	switch {
	case v.Has(capability.Collection) && v.Has(capability.Optional):
		s.wrapped = "*C"
	case v.Has(capability.Collection):
		s.wrapped = "C"
	default:
		s.wrapped = s.iface
	}
	return s
}

func synthesizeName(bundle capability.Bundle, v capability.Variant, iface string) string {
	var b strings.Builder
	b.WriteString(bundle.Equality.Name())
	b.WriteString(bundle.Coding.Name())
	if v.Has(capability.Mutable) {
		b.WriteString("Mutable")
	}
	if v.Has(capability.Optional) {
		b.WriteString("Optional")
	}
	if v.Has(capability.Collection) {
		b.WriteString("CollectionOf")
	}
	b.WriteString(iface)
	return b.String()
}

func (s shape) collectionBound() string {
	if s.strong {
		return "~[]" + s.iface
	}
	return "existential.Sequence[" + s.iface + "]"
}

func codingBound(c capability.Coding, iface string) string {
	switch c {
	case capability.Decodable:
		return "existential.TypeDecoding[" + iface + "]"
	case capability.Encodable:
		return "existential.TypeEncoding[" + iface + "]"
	case capability.Codable:
		return "existential.TypeCoding[" + iface + "]"
	default:
		return ""
	}
}

func (s shape) has(t capability.Variant) bool { return s.cfg.Variant.Has(t) }

func (s shape) equality() capability.Equality { return s.cfg.Bundle.Equality }

func (s shape) coding() capability.Coding { return s.cfg.Bundle.Coding }

func (s shape) inherits() []string {
	var out []string
	if s.equality() != capability.EqualityNone {
		if s.has(capability.Collection) {
			out = append(out, "existential.EquatableSequenceSupport")
		} else {
			out = append(out, "existential.EquatableSupport")
		}
	}
	if s.equality() == capability.Hashable {
		out = append(out, "existential.Hashable")
	}
	if c := s.coding(); c != capability.CodingNone {
		out = append(out, "existential."+c.Name())
	}
	if s.has(capability.Optional) && s.coding().Decodes() {
		out = append(out, "existential.OptionalDecodingSupport")
	}
	if s.has(capability.Optional) && s.coding().Encodes() {
		out = append(out, "existential.OptionalEncodingSupport")
	}
	for _, ic := range s.cfg.Implicit {
		out = append(out, "existential."+ic.Name())
	}
	return out
}

func (s shape) doc() []string {
	var lines []string
	switch {
	case s.has(capability.Collection):
		lines = append(lines, fmt.Sprintf("%s wraps a collection of values of any concrete types implementing %s.", s.ident, s.iface))
	default:
		lines = append(lines, fmt.Sprintf("%s wraps a value of any concrete type implementing %s.", s.ident, s.iface))
	}
	switch {
	case s.has(capability.Collection) && s.has(capability.Optional):
		lines = append(lines, "A nil *C is the absent collection.")
	case s.has(capability.Optional):
		lines = append(lines, fmt.Sprintf("A nil %s is the absent value.", s.iface))
	}
	if s.has(capability.Mutable) {
		lines = append(lines, "The wrapped value can be replaced with SetWrappedValue.")
	}
	if s.equality() != capability.EqualityNone && s.has(capability.Collection) {
		lines = append(lines, "",
			"C must be an ordered collection: equality and hashing compare",
			"elements in iteration order.")
	}
	return lines
}

// witnessArgs instantiates the type parameters for compile-time checks.
func (s shape) witnessArgs() string {
	if len(s.params) == 0 {
		return ""
	}
	args := make([]string, len(s.params))
	for i, p := range s.params {
		switch p.Name {
		case "C":
			if s.strong {
				args[i] = "[]" + s.iface
			} else {
				args[i] = "existential.Slice[" + s.iface + "]"
			}
		default:
			args[i] = p.Bound
		}
	}
	return "[" + strings.Join(args, ", ") + "]"
}

func (s shape) source(d Descriptor) string {
	var b strings.Builder
	for _, line := range d.Doc {
		if line == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// " + line + "\n")
	}
	fmt.Fprintf(&b, "type %s%s struct {\n", s.ident, typeParamList(s.params))
	if storage, ok := d.Member(MemberStorage); ok {
		b.WriteString(storage.Source)
	}
	b.WriteString("}\n")

	for _, m := range d.Members {
		if m.Kind == MemberStorage {
			continue
		}
		b.WriteString("\n")
		b.WriteString(m.Source)
	}

	b.WriteString("\nvar (\n")
	witness := "(*" + s.ident + s.witnessArgs() + ")(nil)"
	for _, inherit := range d.Inherits {
		fmt.Fprintf(&b, "\t_ %s = %s\n", inherit, witness)
	}
	b.WriteString(")\n")
	return b.String()
}

// siblingIdent names the plain wrapper of the same bundle, used to decode
// and encode collection elements.
func (s shape) siblingIdent() string {
	return s.cfg.Access.Ident(s.cfg.Bundle.Prefix() + s.iface)
}

func (s shape) siblingConstructor() string {
	return s.cfg.Access.Ident("New" + s.cfg.Bundle.Prefix() + s.iface)
}

// collectionExpr is the wrapped collection, dereferenced when optional.
func (s shape) collectionExpr() string {
	if s.has(capability.Optional) {
		return "*w.wrappedValue"
	}
	return "w.wrappedValue"
}

// rangeClause iterates the wrapped collection binding each element to
// element.
func (s shape) rangeClause() string {
	if s.strong {
		return "_, element := range " + s.collectionExpr()
	}
	if s.has(capability.Optional) {
		return "element := range (*w.wrappedValue).All()"
	}
	return "element := range w.wrappedValue.All()"
}

// absentGuard returns early when an optional wrapper holds no value.
func (s shape) absentGuard(body string) string {
	if !s.has(capability.Optional) {
		return ""
	}
	return "\tif w.wrappedValue == nil {\n" + body + "\t}\n"
}
