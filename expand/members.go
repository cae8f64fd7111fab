package expand

import (
	"fmt"
	"strings"

	"github.com/lex00/existential-go/capability"
)

func (s shape) members() []Member {
	members := []Member{
		s.initializer(),
		s.labeledInitializer(),
		s.storage(),
		s.getter(),
	}
	if s.has(capability.Mutable) {
		members = append(members, s.setter())
	}
	members = append(members, s.projection())

	if s.equality() != capability.EqualityNone {
		members = append(members, s.equatableValue(), s.equal())
	}
	if s.equality() == capability.Hashable {
		members = append(members, s.hash())
	}
	if s.coding().Decodes() {
		members = append(members, s.decode())
	}
	if s.coding().Encodes() {
		members = append(members, s.encode())
	}
	if s.has(capability.Optional) && s.coding().Decodes() {
		members = append(members, s.decodesNull())
	}
	if s.has(capability.Optional) && s.coding().Encodes() {
		members = append(members, s.isZero())
	}
	if s.cfg.Has(capability.Sendable) {
		members = append(members, s.sendable())
	}
	return members
}

func (s shape) initializer() Member {
	name := s.cfg.Access.Ident("New" + s.name)
	var b strings.Builder
	fmt.Fprintf(&b, "// %s returns a %s wrapping wrappedValue.\n", name, s.ident)
	fmt.Fprintf(&b, "func %s%s(wrappedValue %s) %s {\n", name, typeParamList(s.params), s.wrapped, s.ref)
	fmt.Fprintf(&b, "\treturn %s{wrappedValue: wrappedValue}\n", s.ref)
	b.WriteString("}\n")
	return Member{Kind: MemberInitializer, Name: name, Source: b.String()}
}

func (s shape) labeledInitializer() Member {
	var b strings.Builder
	fmt.Fprintf(&b, "// Wrap returns a %s wrapping wrappedValue.\n", s.ident)
	fmt.Fprintf(&b, "func (%s) Wrap(wrappedValue %s) %s {\n", s.ref, s.wrapped, s.ref)
	fmt.Fprintf(&b, "\treturn %s{wrappedValue: wrappedValue}\n", s.ref)
	b.WriteString("}\n")
	return Member{Kind: MemberLabeledInitializer, Name: "Wrap", Source: b.String()}
}

func (s shape) storage() Member {
	return Member{
		Kind:   MemberStorage,
		Name:   "wrappedValue",
		Source: fmt.Sprintf("\twrappedValue %s\n", s.wrapped),
	}
}

func (s shape) getter() Member {
	var b strings.Builder
	b.WriteString("// WrappedValue returns the wrapped value.\n")
	fmt.Fprintf(&b, "func (w %s) WrappedValue() %s {\n", s.ref, s.wrapped)
	b.WriteString("\treturn w.wrappedValue\n")
	b.WriteString("}\n")
	return Member{Kind: MemberGetter, Name: "WrappedValue", Source: b.String()}
}

func (s shape) setter() Member {
	var b strings.Builder
	b.WriteString("// SetWrappedValue replaces the wrapped value.\n")
	fmt.Fprintf(&b, "func (w *%s) SetWrappedValue(wrappedValue %s) {\n", s.ref, s.wrapped)
	b.WriteString("\tw.wrappedValue = wrappedValue\n")
	b.WriteString("}\n")
	return Member{Kind: MemberSetter, Name: "SetWrappedValue", Source: b.String()}
}

func (s shape) projection() Member {
	var b strings.Builder
	b.WriteString("// ProjectedValue returns the wrapper itself.\n")
	fmt.Fprintf(&b, "func (w %s) ProjectedValue() %s {\n", s.ref, s.ref)
	b.WriteString("\treturn w\n")
	b.WriteString("}\n")
	return Member{Kind: MemberProjection, Name: "ProjectedValue", Source: b.String()}
}

func (s shape) equatableValue() Member {
	var b strings.Builder
	if !s.has(capability.Collection) {
		b.WriteString("// EquatableValue returns the wrapped value for comparison.\n")
		fmt.Fprintf(&b, "func (w %s) EquatableValue() any {\n", s.ref)
		b.WriteString("\treturn w.wrappedValue\n")
		b.WriteString("}\n")
		return Member{Kind: MemberEquatableValue, Name: "EquatableValue", Source: b.String()}
	}

	b.WriteString("// EquatableSequence yields the wrapped elements for comparison.\n")
	fmt.Fprintf(&b, "func (w %s) EquatableSequence() iter.Seq[any] {\n", s.ref)
	b.WriteString(s.absentGuard("\t\treturn nil\n"))
	if s.strong {
		fmt.Fprintf(&b, "\treturn existential.Erase(slices.Values(%s))\n", s.collectionExpr())
	} else if s.has(capability.Optional) {
		b.WriteString("\treturn existential.Erase((*w.wrappedValue).All())\n")
	} else {
		b.WriteString("\treturn existential.Erase(w.wrappedValue.All())\n")
	}
	b.WriteString("}\n")
	return Member{Kind: MemberEquatableValue, Name: "EquatableSequence", Source: b.String()}
}

func (s shape) equal() Member {
	compare := "existential.Equal"
	if s.has(capability.Collection) {
		compare = "existential.SequenceEqual"
	}
	var b strings.Builder
	b.WriteString("// Equal reports whether w and other wrap equal values.\n")
	fmt.Fprintf(&b, "func (w %s) Equal(other %s) bool {\n", s.ref, s.ref)
	fmt.Fprintf(&b, "\treturn %s(w, other)\n", compare)
	b.WriteString("}\n")
	return Member{Kind: MemberEqual, Name: "Equal", Source: b.String()}
}

func (s shape) hash() Member {
	var b strings.Builder
	b.WriteString("// Hash feeds the dynamic type and value of the wrapped value into h.\n")
	fmt.Fprintf(&b, "func (w %s) Hash(h *existential.Hasher) {\n", s.ref)

	if s.has(capability.Collection) {
		b.WriteString(s.absentGuard("\t\th.CombineType(reflect.TypeFor[*C]())\n\t\treturn\n"))
		b.WriteString("\th.CombineType(reflect.TypeFor[C]())\n")
		fmt.Fprintf(&b, "\tfor %s {\n", s.rangeClause())
		b.WriteString("\t\th.CombineType(reflect.TypeOf(element))\n")
		b.WriteString("\t\th.Combine(element)\n")
		b.WriteString("\t}\n")
	} else {
		b.WriteString(s.absentGuard(fmt.Sprintf("\t\th.CombineType(reflect.TypeFor[*%s]())\n\t\treturn\n", s.iface)))
		b.WriteString("\th.CombineType(reflect.TypeOf(w.wrappedValue))\n")
		b.WriteString("\th.Combine(w.wrappedValue)\n")
	}
	b.WriteString("}\n")
	return Member{Kind: MemberHash, Name: "Hash", Source: b.String()}
}

func (s shape) decode() Member {
	var b strings.Builder
	b.WriteString("// UnmarshalJSON decodes the concrete type recorded by TC and then the value.\n")
	fmt.Fprintf(&b, "func (w *%s) UnmarshalJSON(data []byte) error {\n", s.ref)
	if s.has(capability.Optional) {
		b.WriteString("\tif existential.IsNull(data) {\n")
		b.WriteString("\t\tw.wrappedValue = nil\n")
		b.WriteString("\t\treturn nil\n")
		b.WriteString("\t}\n")
	}

	if s.has(capability.Collection) {
		b.WriteString("\tvar elements []json.RawMessage\n")
		b.WriteString("\tif err := json.Unmarshal(data, &elements); err != nil {\n")
		b.WriteString("\t\treturn err\n")
		b.WriteString("\t}\n")
		fmt.Fprintf(&b, "\tvalues := make([]%s, 0, len(elements))\n", s.iface)
		b.WriteString("\tfor _, element := range elements {\n")
		fmt.Fprintf(&b, "\t\tvar sibling %s[TC]\n", s.siblingIdent())
		b.WriteString("\t\tif err := sibling.UnmarshalJSON(element); err != nil {\n")
		b.WriteString("\t\t\treturn err\n")
		b.WriteString("\t\t}\n")
		b.WriteString("\t\tvalues = append(values, sibling.WrappedValue())\n")
		b.WriteString("\t}\n")
		if s.has(capability.Optional) {
			b.WriteString("\tcollection := C(values)\n")
			b.WriteString("\tw.wrappedValue = &collection\n")
		} else {
			b.WriteString("\tw.wrappedValue = C(values)\n")
		}
		b.WriteString("\treturn nil\n")
		b.WriteString("}\n")
		return Member{Kind: MemberDecode, Name: "UnmarshalJSON", Source: b.String()}
	}

	b.WriteString("\tvar coding TC\n")
	b.WriteString("\ttyp, err := coding.DecodeType(data)\n")
	b.WriteString("\tif err != nil {\n")
	b.WriteString("\t\treturn err\n")
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\tvalue, err := existential.Construct[%s](typ, data)\n", s.iface)
	b.WriteString("\tif err != nil {\n")
	b.WriteString("\t\treturn err\n")
	b.WriteString("\t}\n")
	b.WriteString("\tw.wrappedValue = value\n")
	b.WriteString("\treturn nil\n")
	b.WriteString("}\n")
	return Member{Kind: MemberDecode, Name: "UnmarshalJSON", Source: b.String()}
}

func (s shape) encode() Member {
	var b strings.Builder
	b.WriteString("// MarshalJSON encodes the wrapped value and records its concrete type through TC.\n")
	fmt.Fprintf(&b, "func (w %s) MarshalJSON() ([]byte, error) {\n", s.ref)
	b.WriteString(s.absentGuard("\t\treturn []byte(\"null\"), nil\n"))

	if s.has(capability.Collection) {
		fmt.Fprintf(&b, "\tsiblings := []%s[TC]{}\n", s.siblingIdent())
		fmt.Fprintf(&b, "\tfor %s {\n", s.rangeClause())
		fmt.Fprintf(&b, "\t\tsiblings = append(siblings, %s[TC](element))\n", s.siblingConstructor())
		b.WriteString("\t}\n")
		b.WriteString("\treturn json.Marshal(siblings)\n")
		b.WriteString("}\n")
		return Member{Kind: MemberEncode, Name: "MarshalJSON", Source: b.String()}
	}

	b.WriteString("\tdata, err := json.Marshal(w.wrappedValue)\n")
	b.WriteString("\tif err != nil {\n")
	b.WriteString("\t\treturn nil, err\n")
	b.WriteString("\t}\n")
	b.WriteString("\tvar coding TC\n")
	b.WriteString("\treturn coding.EncodeType(reflect.TypeOf(w.wrappedValue), data)\n")
	b.WriteString("}\n")
	return Member{Kind: MemberEncode, Name: "MarshalJSON", Source: b.String()}
}

func (s shape) decodesNull() Member {
	var b strings.Builder
	b.WriteString("// DecodesNull marks that JSON null decodes to the absent value.\n")
	fmt.Fprintf(&b, "func (%s) DecodesNull() {}\n", s.ref)
	return Member{Kind: MemberDecodesNull, Name: "DecodesNull", Source: b.String()}
}

func (s shape) isZero() Member {
	var b strings.Builder
	b.WriteString("// IsZero reports whether the wrapped value is absent.\n")
	fmt.Fprintf(&b, "func (w %s) IsZero() bool {\n", s.ref)
	b.WriteString("\treturn w.wrappedValue == nil\n")
	b.WriteString("}\n")
	return Member{Kind: MemberIsZero, Name: "IsZero", Source: b.String()}
}

func (s shape) sendable() Member {
	var b strings.Builder
	fmt.Fprintf(&b, "// Sendable marks %s as safe to share between goroutines.\n", s.ident)
	fmt.Fprintf(&b, "func (%s) Sendable() {}\n", s.ref)
	return Member{Kind: MemberSendable, Name: "Sendable", Source: b.String()}
}
