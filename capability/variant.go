package capability

import "strings"

// Variant is a set of structural traits of a generated wrapper.
type Variant uint8

const (
	Mutable Variant = 1 << iota
	Optional
	Collection
)

// Variants returns the eight structural variants in generation order.
// Generated files list wrappers in this order.
func Variants() []Variant {
	return []Variant{
		0,
		Mutable,
		Optional,
		Collection,
		Mutable | Optional,
		Mutable | Collection,
		Optional | Collection,
		Mutable | Optional | Collection,
	}
}

// Has reports whether every trait in t is present in v.
func (v Variant) Has(t Variant) bool { return v&t == t }

func (v Variant) String() string {
	var traits []string
	if v.Has(Mutable) {
		traits = append(traits, "mutable")
	}
	if v.Has(Optional) {
		traits = append(traits, "optional")
	}
	if v.Has(Collection) {
		traits = append(traits, "collection")
	}
	return "{" + strings.Join(traits, ", ") + "}"
}

// ImplicitCapability is a capability carried over from the source
// interface rather than requested by the directive.
type ImplicitCapability int

const (
	// Sendable is detected when the interface embeds an interface named
	// Sendable.
	Sendable ImplicitCapability = iota
)

// Name returns the embedded interface name that triggers c.
func (c ImplicitCapability) Name() string {
	switch c {
	case Sendable:
		return "Sendable"
	default:
		return ""
	}
}

func (c ImplicitCapability) String() string { return c.Name() }

// ImplicitCapabilities returns every implicit capability in detection order.
func ImplicitCapabilities() []ImplicitCapability {
	return []ImplicitCapability{Sendable}
}
