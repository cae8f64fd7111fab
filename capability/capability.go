// Package capability enumerates the conformance bundles and structural
// variants an existential wrapper can be generated for.
package capability

import (
	"strings"

	"github.com/lex00/existential-go/errors"
)

// Equality is the comparison capability a bundle requests.
type Equality int

const (
	EqualityNone Equality = iota
	Equatable
	Hashable
)

// Name returns the name prefix contributed to generated types.
func (e Equality) Name() string {
	switch e {
	case Equatable:
		return "Equatable"
	case Hashable:
		return "Hashable"
	default:
		return ""
	}
}

func (e Equality) String() string {
	if e == EqualityNone {
		return "none"
	}
	return e.Name()
}

// Coding is the JSON coding capability a bundle requests.
type Coding int

const (
	CodingNone Coding = iota
	Decodable
	Encodable
	Codable
)

// Name returns the name prefix contributed to generated types.
func (c Coding) Name() string {
	switch c {
	case Decodable:
		return "Decodable"
	case Encodable:
		return "Encodable"
	case Codable:
		return "Codable"
	default:
		return ""
	}
}

func (c Coding) String() string {
	if c == CodingNone {
		return "none"
	}
	return c.Name()
}

// Decodes reports whether the coding kind reads JSON.
func (c Coding) Decodes() bool { return c == Decodable || c == Codable }

// Encodes reports whether the coding kind writes JSON.
func (c Coding) Encodes() bool { return c == Encodable || c == Codable }

// Bundle pairs an equality capability with a coding capability.
type Bundle struct {
	Equality Equality
	Coding   Coding
}

// The named bundles, in declaration order.
var (
	EquatableBundle          = Bundle{Equatable, CodingNone}
	HashableBundle           = Bundle{Hashable, CodingNone}
	DecodableBundle          = Bundle{EqualityNone, Decodable}
	EncodableBundle          = Bundle{EqualityNone, Encodable}
	CodableBundle            = Bundle{EqualityNone, Codable}
	EquatableDecodableBundle = Bundle{Equatable, Decodable}
	EquatableEncodableBundle = Bundle{Equatable, Encodable}
	EquatableCodableBundle   = Bundle{Equatable, Codable}
	HashableDecodableBundle  = Bundle{Hashable, Decodable}
	HashableEncodableBundle  = Bundle{Hashable, Encodable}
	HashableCodableBundle    = Bundle{Hashable, Codable}
)

// Bundles returns every named bundle in declaration order.
func Bundles() []Bundle {
	return []Bundle{
		EquatableBundle,
		HashableBundle,
		DecodableBundle,
		EncodableBundle,
		CodableBundle,
		EquatableDecodableBundle,
		EquatableEncodableBundle,
		EquatableCodableBundle,
		HashableDecodableBundle,
		HashableEncodableBundle,
		HashableCodableBundle,
	}
}

// Valid reports whether b is one of the named bundles.
func (b Bundle) Valid() bool {
	if b.Equality < EqualityNone || b.Equality > Hashable {
		return false
	}
	if b.Coding < CodingNone || b.Coding > Codable {
		return false
	}
	return b.Equality != EqualityNone || b.Coding != CodingNone
}

// Prefix is the bundle's contribution to generated type names,
// e.g. "HashableCodable".
func (b Bundle) Prefix() string {
	return b.Equality.Name() + b.Coding.Name()
}

// EntryPoint is the bundle's long name, e.g. "HashableCodableExistential".
func (b Bundle) EntryPoint() string {
	return b.Prefix() + "Existential"
}

// Directive is the kebab-case token used in //existential: directives,
// e.g. "hashable-codable".
func (b Bundle) Directive() string {
	var parts []string
	if n := b.Equality.Name(); n != "" {
		parts = append(parts, strings.ToLower(n))
	}
	if n := b.Coding.Name(); n != "" {
		parts = append(parts, strings.ToLower(n))
	}
	return strings.Join(parts, "-")
}

func (b Bundle) String() string { return b.Directive() }

// ParseBundle accepts a directive token or an entry point name.
func ParseBundle(s string) (Bundle, error) {
	for _, b := range Bundles() {
		if s == b.Directive() || s == b.EntryPoint() {
			return b, nil
		}
	}
	return Bundle{}, errors.WithHintf(
		errors.Wrapf(errors.ErrUnknownBundle, "%q", s),
		"valid bundles: %s", strings.Join(directives(), ", "))
}

func directives() []string {
	bundles := Bundles()
	out := make([]string, len(bundles))
	for i, b := range bundles {
		out[i] = b.Directive()
	}
	return out
}
