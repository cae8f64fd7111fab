package resolve

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lex00/existential-go/capability"
	"github.com/lex00/existential-go/errors"
)

// DeclKind classifies the declaration a directive is attached to.
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclInterface
	DeclStruct
	DeclType
	DeclAlias
	DeclFunc
	DeclVar
	DeclConst
)

func (k DeclKind) String() string {
	switch k {
	case DeclInterface:
		return "interface"
	case DeclStruct:
		return "struct"
	case DeclType:
		return "type"
	case DeclAlias:
		return "type alias"
	case DeclFunc:
		return "func"
	case DeclVar:
		return "var"
	case DeclConst:
		return "const"
	default:
		return "unknown"
	}
}

// Declaration is the host's view of an annotated declaration.
type Declaration interface {
	Kind() DeclKind
	Name() string
	// InheritedTypes returns the unqualified names of embedded interfaces,
	// in source order.
	InheritedTypes() []string
}

// Argument is one key=value pair of a directive.
type Argument struct {
	Label string
	Value string
}

// Annotation is the host's view of a directive.
type Annotation interface {
	Pos() token.Position
	Arguments() []Argument
}

// DeclSummary is a plain Declaration.
type DeclSummary struct {
	DeclKind DeclKind
	TypeName string
	Embeds   []string
}

func (d DeclSummary) Kind() DeclKind           { return d.DeclKind }
func (d DeclSummary) Name() string             { return d.TypeName }
func (d DeclSummary) InheritedTypes() []string { return d.Embeds }

// Site is a plain Annotation.
type Site struct {
	Position token.Position
	Args     []Argument
}

func (s Site) Pos() token.Position   { return s.Position }
func (s Site) Arguments() []Argument { return s.Args }

// AccessLevel controls the visibility of generated identifiers.
type AccessLevel int

const (
	// AccessDefault keeps synthesized names as they are.
	AccessDefault AccessLevel = iota
	AccessExported
	AccessUnexported
)

var accessTokens = map[string]AccessLevel{
	"exported":   AccessExported,
	"public":     AccessExported,
	"unexported": AccessUnexported,
	"private":    AccessUnexported,
	"internal":   AccessUnexported,
}

// ParseAccessLevel maps a directive token to an AccessLevel.
func ParseAccessLevel(s string) (AccessLevel, error) {
	if level, ok := accessTokens[s]; ok {
		return level, nil
	}
	return AccessDefault, errors.WithHint(
		errors.Wrapf(errors.ErrInvalidArgument, "unknown access level %q", s),
		"use access=exported or access=unexported")
}

func (a AccessLevel) String() string {
	switch a {
	case AccessExported:
		return "exported"
	case AccessUnexported:
		return "unexported"
	default:
		return "default"
	}
}

// Ident applies the access level to a synthesized name.
func (a AccessLevel) Ident(name string) string {
	if a != AccessUnexported || name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// Configuration is one fully resolved expansion request.
type Configuration struct {
	Bundle   capability.Bundle
	Variant  capability.Variant
	Name     string
	Access   AccessLevel
	Implicit []capability.ImplicitCapability
	Pos      token.Position
}

// Has reports whether the configuration carries the implicit capability c.
func (c Configuration) Has(ic capability.ImplicitCapability) bool {
	for _, have := range c.Implicit {
		if have == ic {
			return true
		}
	}
	return false
}

func (c Configuration) String() string {
	var b strings.Builder
	b.WriteString(c.Bundle.Directive())
	b.WriteString(" ")
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(c.Variant.String())
	return b.String()
}
