package expand

import "strings"

// MemberKind classifies a generated member.
type MemberKind int

const (
	MemberInitializer MemberKind = iota
	MemberLabeledInitializer
	MemberStorage
	MemberGetter
	MemberSetter
	MemberProjection
	MemberEquatableValue
	MemberEqual
	MemberHash
	MemberDecode
	MemberEncode
	MemberDecodesNull
	MemberIsZero
	MemberSendable
)

var memberKindNames = [...]string{
	MemberInitializer:        "initializer",
	MemberLabeledInitializer: "labeled-initializer",
	MemberStorage:            "storage",
	MemberGetter:             "getter",
	MemberSetter:             "setter",
	MemberProjection:         "projection",
	MemberEquatableValue:     "equatable-value",
	MemberEqual:              "equal",
	MemberHash:               "hash",
	MemberDecode:             "decode",
	MemberEncode:             "encode",
	MemberDecodesNull:        "decodes-null",
	MemberIsZero:             "is-zero",
	MemberSendable:           "sendable",
}

func (k MemberKind) String() string {
	if k < 0 || int(k) >= len(memberKindNames) {
		return "unknown"
	}
	return memberKindNames[k]
}

// Member is one generated function, method or field.
type Member struct {
	Kind   MemberKind
	Name   string
	Source string
}

// TypeParam is a type parameter of a generated wrapper and its constraint.
type TypeParam struct {
	Name  string
	Bound string
}

// Descriptor is a generated wrapper type.
type Descriptor struct {
	// Name is the synthesized name; Ident is Name after the access level
	// is applied and is what appears in Source.
	Name  string
	Ident string

	Doc         []string
	TypeParams  []TypeParam
	Inherits    []string
	WrappedType string
	Members     []Member

	// Imports lists the import paths Source refers to, sorted.
	Imports []string
	Source  string
}

// Constraints returns the type parameter constraints in declaration order,
// collection first.
func (d Descriptor) Constraints() []string {
	out := make([]string, len(d.TypeParams))
	for i, p := range d.TypeParams {
		out[i] = p.Name + " " + p.Bound
	}
	return out
}

// Member returns the first member of the given kind.
func (d Descriptor) Member(kind MemberKind) (Member, bool) {
	for _, m := range d.Members {
		if m.Kind == kind {
			return m, true
		}
	}
	return Member{}, false
}

// TypeRef returns Ident instantiated with its own type parameters,
// e.g. "HashableCollectionOfDrinkable[C]".
func (d Descriptor) TypeRef() string {
	return d.Ident + typeArgs(d.TypeParams)
}

func typeArgs(params []TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func typeParamList(params []TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	decls := make([]string, len(params))
	for i, p := range params {
		decls[i] = p.Name + " " + p.Bound
	}
	return "[" + strings.Join(decls, ", ") + "]"
}
